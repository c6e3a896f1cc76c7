package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRunStats_Observe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		events           []Event
		wantTotal        int
		wantReached      int
		wantMin, wantMax time.Duration
	}{
		// Test case for a run of reachable events
		// Verifies totals and that min/max latency track the extremes
		{
			name: "reachable events",
			events: []Event{
				{Kind: KindOK, Latency: 50 * time.Millisecond},
				{Kind: KindLatencyExceeded, Latency: 900 * time.Millisecond},
				{Kind: KindContentChanged, Latency: 70 * time.Millisecond},
			},
			wantTotal:   3,
			wantReached: 3,
			wantMin:     50 * time.Millisecond,
			wantMax:     900 * time.Millisecond,
		},
		// Test case for unreachable events mixed in
		// Verifies unreachable probes count toward totals but never toward
		// latency figures
		{
			name: "unreachable excluded from latency",
			events: []Event{
				{Kind: KindOK, Latency: 100 * time.Millisecond},
				{Kind: KindUnreachable, Latency: 0},
			},
			wantTotal:   2,
			wantReached: 1,
			wantMin:     100 * time.Millisecond,
			wantMax:     100 * time.Millisecond,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			stats := NewRunStats()
			for _, ev := range tt.events {
				stats.Observe(ev)
			}

			assert.Equal(t, tt.wantTotal, stats.TotalProbes)
			assert.Equal(t, tt.wantReached, stats.ReachedCount)
			assert.Equal(t, tt.wantMin, stats.MinLatency)
			assert.Equal(t, tt.wantMax, stats.MaxLatency)
		})
	}
}

func TestRunStats_AvgLatency(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		events   []Event
		expected time.Duration
	}{
		// Test case for no events
		// Verifies zero is returned instead of dividing by zero
		{
			name:     "no events",
			events:   nil,
			expected: 0,
		},
		// Test case for only unreachable events
		// Verifies the average stays zero when nothing was reachable
		{
			name: "only unreachable",
			events: []Event{
				{Kind: KindUnreachable},
				{Kind: KindUnreachable},
			},
			expected: 0,
		},
		// Test case for multiple reachable events
		// Verifies the average is computed over reachable probes only
		{
			name: "mixed events",
			events: []Event{
				{Kind: KindOK, Latency: time.Second},
				{Kind: KindUnreachable},
				{Kind: KindOK, Latency: 3 * time.Second},
			},
			expected: 2 * time.Second,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			stats := NewRunStats()
			for _, ev := range tt.events {
				stats.Observe(ev)
			}
			assert.Equal(t, tt.expected, stats.AvgLatency())
		})
	}
}

func TestRunStats_OKPercentage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		events   []Event
		expected int
	}{
		// Test case for no probes
		// Verifies zero is returned when nothing ran
		{
			name:     "zero probes",
			events:   nil,
			expected: 0,
		},
		// Test case for all OK
		// Verifies 100% when every probe classified OK
		{
			name: "all ok",
			events: []Event{
				{Kind: KindOK}, {Kind: KindOK},
			},
			expected: 100,
		},
		// Test case for partial success
		// Verifies truncation toward zero on a fractional percentage
		{
			name: "partial",
			events: []Event{
				{Kind: KindOK}, {Kind: KindOK}, {Kind: KindUnreachable},
			},
			expected: 66,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			stats := NewRunStats()
			for _, ev := range tt.events {
				stats.Observe(ev)
			}
			assert.Equal(t, tt.expected, stats.OKPercentage())
		})
	}
}
