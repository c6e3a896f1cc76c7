package notify

import (
	"context"

	"github.com/dvdk01/urlwatch/internal/schema"
)

// Notifier delivers a classified event through an out-of-band channel.
// Delivery failures are reported to the caller but are never fatal to
// monitoring.
type Notifier interface {
	Send(ctx context.Context, ev schema.Event) error
}
