package monitor

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dvdk01/urlwatch/internal/evaluator"
	"github.com/dvdk01/urlwatch/internal/notify"
	"github.com/dvdk01/urlwatch/internal/schema"
	log "github.com/sirupsen/logrus"
)

// FailurePolicy decides what happens after a non-OK event.
type FailurePolicy string

const (
	ReportAndContinue FailurePolicy = "continue"
	Terminate         FailurePolicy = "terminate"
)

// Prober issues a single probe against the target URL.
type Prober interface {
	Probe(ctx context.Context, url string) schema.ProbeResult
}

const defaultNotifyTimeout = 10 * time.Second

// Loop runs one probe, classify, report cycle per interval. It owns all
// per-run state; nothing here is safe for concurrent use and nothing needs
// to be, probes never overlap.
type Loop struct {
	target        schema.Target
	policy        FailurePolicy
	prober        Prober
	evaluator     *evaluator.Evaluator
	notifier      notify.Notifier
	events        chan<- schema.Event
	out           io.Writer
	notifyTimeout time.Duration
}

// New wires a loop. events may be nil when no presentation collaborator is
// attached; when non-nil the loop owns the channel and closes it on return.
// out receives the operator-facing report lines.
func New(target schema.Target, policy FailurePolicy, prober Prober, notifier notify.Notifier, events chan<- schema.Event, out io.Writer) *Loop {
	return &Loop{
		target:        target,
		policy:        policy,
		prober:        prober,
		evaluator:     evaluator.New(target.LatencyThreshold),
		notifier:      notifier,
		events:        events,
		out:           out,
		notifyTimeout: defaultNotifyTimeout,
	}
}

// Run blocks until cancellation or, under the terminate policy, the first
// non-OK event. The first probe fires immediately, later ones once per
// interval. A slow probe simply delays the next tick; there is no overlap.
func (l *Loop) Run(ctx context.Context) error {
	state := schema.MonitorState{Running: true}

	defer func() {
		if l.events != nil {
			close(l.events)
		}
	}()

	ticker := time.NewTicker(l.target.Interval)
	defer ticker.Stop()

	if l.tick(ctx, &state); !state.Running {
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			state.Running = false
			return nil
		case <-ticker.C:
			if l.tick(ctx, &state); !state.Running {
				return nil
			}
		}
	}
}

func (l *Loop) tick(ctx context.Context, state *schema.MonitorState) {
	if ctx.Err() != nil {
		state.Running = false
		return
	}

	result := l.prober.Probe(ctx, l.target.URL)
	baseline := state.LastDigest
	ev := l.evaluator.Classify(&result, state)

	if baseline == "" && state.LastDigest != "" {
		log.WithField("digest", state.LastDigest.Short()).Info("initial content digest")
	}

	l.publish(ev)

	if ev.Kind == schema.KindOK {
		log.WithFields(log.Fields{
			"status":  result.StatusCode,
			"latency": result.Latency.Round(time.Millisecond),
		}).Debug("heartbeat")
		return
	}

	l.report(ev)
	l.deliver(ctx, ev, state.ConsecutiveFailures)

	if l.policy == Terminate {
		state.Running = false
	}
}

// report writes one operator-facing line: [ISO-8601 timestamp] KIND: detail.
func (l *Loop) report(ev schema.Event) {
	fmt.Fprintf(l.out, "[%s] %s: %s\n", ev.Timestamp.Format(time.RFC3339), ev.Kind, ev.Detail)
}

// deliver hands the event to the notifier under its own timeout so a stalled
// channel cannot hold up the next tick. Failures are logged and swallowed.
func (l *Loop) deliver(ctx context.Context, ev schema.Event, failures int) {
	if l.notifier == nil {
		return
	}

	nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), l.notifyTimeout)
	defer cancel()

	if err := l.notifier.Send(nctx, ev); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"kind":                 ev.Kind,
			"consecutive_failures": failures,
		}).Warn("notifier delivery failed")
	}
}

// publish offers the event to the presentation channel without ever blocking
// the loop on a slow consumer.
func (l *Loop) publish(ev schema.Event) {
	if l.events == nil {
		return
	}
	select {
	case l.events <- ev:
	default:
		log.WithField("kind", ev.Kind).Debug("event dropped, consumer not keeping up")
	}
}
