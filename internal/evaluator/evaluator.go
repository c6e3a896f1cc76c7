package evaluator

import (
	"fmt"
	"time"

	"github.com/dvdk01/urlwatch/internal/digest"
	"github.com/dvdk01/urlwatch/internal/schema"
)

// Evaluator classifies probe results against the latency threshold and the
// drift baseline carried in MonitorState.
type Evaluator struct {
	threshold time.Duration
}

func New(threshold time.Duration) *Evaluator {
	return &Evaluator{threshold: threshold}
}

// Classify maps a probe result to an event, first match wins:
// unreachable, then latency over threshold, then content drift, then OK.
//
// State side effects: any non-OK event increments ConsecutiveFailures, OK
// resets it. LastDigest is refreshed from every reachable probe regardless of
// classification, so a latency event still advances the drift baseline; an
// unreachable probe never touches it.
func (e *Evaluator) Classify(result *schema.ProbeResult, state *schema.MonitorState) schema.Event {
	ev := schema.Event{
		Timestamp: result.Timestamp,
		Latency:   result.Latency,
	}

	var sum digest.Digest
	if result.Reachable {
		sum = digest.Sum(result.Body)
	}

	switch {
	case !result.Reachable:
		ev.Kind = schema.KindUnreachable
		ev.Detail = unreachableDetail(result)

	case result.Latency > e.threshold:
		ev.Kind = schema.KindLatencyExceeded
		ev.Detail = fmt.Sprintf("response took %v, threshold %v", result.Latency.Round(time.Millisecond), e.threshold)

	case state.LastDigest != "" && sum != state.LastDigest:
		ev.Kind = schema.KindContentChanged
		ev.Detail = fmt.Sprintf("content digest changed to %s", sum.Short())

	default:
		ev.Kind = schema.KindOK
		ev.Detail = fmt.Sprintf("status %d in %v", result.StatusCode, result.Latency.Round(time.Millisecond))
	}

	if ev.Kind == schema.KindOK {
		state.ConsecutiveFailures = 0
	} else {
		state.ConsecutiveFailures++
	}

	if result.Reachable {
		state.LastDigest = sum
	}

	return ev
}

func unreachableDetail(result *schema.ProbeResult) string {
	if result.Err != nil {
		return result.Err.Error()
	}
	return fmt.Sprintf("status %d", result.StatusCode)
}
