package schema

import (
	"time"

	"github.com/dvdk01/urlwatch/internal/digest"
)

// EventKind classifies the outcome of one probe cycle.
type EventKind string

const (
	KindOK              EventKind = "OK"
	KindUnreachable     EventKind = "UNREACHABLE"
	KindLatencyExceeded EventKind = "LATENCY_EXCEEDED"
	KindContentChanged  EventKind = "CONTENT_CHANGED"
)

// Target describes the URL under watch. Immutable for the process lifetime.
type Target struct {
	URL              string
	Interval         time.Duration
	LatencyThreshold time.Duration
}

// ProbeResult is the outcome of a single HTTP probe. Transport and status
// errors are carried in Err rather than raised; a result is produced every
// cycle regardless of outcome.
type ProbeResult struct {
	Timestamp  time.Time
	Reachable  bool
	Latency    time.Duration
	StatusCode int
	Body       []byte
	Err        error
}

// MonitorState is the per-loop state carried across cycles. LastDigest is only
// ever set from a reachable probe, so an outage never clobbers the drift
// baseline.
type MonitorState struct {
	LastDigest          digest.Digest
	ConsecutiveFailures int
	Running             bool
}

// Event is the classified outcome of one cycle, consumed by reporting and by
// the notifier.
type Event struct {
	Kind      EventKind
	Timestamp time.Time
	Latency   time.Duration
	Detail    string
}

// RunStats accumulates statistics across events for the shutdown summary.
// Latency figures cover reachable probes only.
type RunStats struct {
	TotalProbes  int
	Counts       map[EventKind]int
	ReachedCount int
	MinLatency   time.Duration
	MaxLatency   time.Duration
	TotalLatency time.Duration
}

func NewRunStats() *RunStats {
	return &RunStats{
		Counts:     make(map[EventKind]int),
		MinLatency: time.Duration(^uint64(0) >> 1), // math.MaxInt64 alternative (to avoid dependency on math package)
	}
}

func (s *RunStats) Observe(ev Event) {
	s.TotalProbes++
	s.Counts[ev.Kind]++

	if ev.Kind == KindUnreachable {
		return
	}

	s.ReachedCount++
	if ev.Latency < s.MinLatency {
		s.MinLatency = ev.Latency
	}
	if ev.Latency > s.MaxLatency {
		s.MaxLatency = ev.Latency
	}
	s.TotalLatency += ev.Latency
}

func (s *RunStats) AvgLatency() time.Duration {
	if s.ReachedCount == 0 {
		return 0
	}
	return s.TotalLatency / time.Duration(s.ReachedCount)
}

func (s *RunStats) OKPercentage() int {
	if s.TotalProbes == 0 {
		return 0
	}
	return int(100 * float32(s.Counts[KindOK]) / float32(s.TotalProbes))
}
