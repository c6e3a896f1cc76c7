package notify

import (
	"context"

	"github.com/dvdk01/urlwatch/internal/schema"
	log "github.com/sirupsen/logrus"
)

// LogNotifier is the fallback when no delivery channel is configured: alerts
// land in the log stream and nothing leaves the host.
type LogNotifier struct {
	logger *log.Logger
}

func NewLog(logger *log.Logger) *LogNotifier {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Send(_ context.Context, ev schema.Event) error {
	n.logger.WithFields(log.Fields{
		"kind":   ev.Kind,
		"detail": ev.Detail,
	}).Warn("alert")
	return nil
}
