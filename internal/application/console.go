package application

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dvdk01/urlwatch/internal/schema"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// consoleApplication subscribes to loop events and renders a run summary once
// the events channel closes.
type consoleApplication struct {
	url    string
	events <-chan schema.Event
	out    io.Writer
	stats  *schema.RunStats
}

func NewConsole(url string, events <-chan schema.Event, out io.Writer) *consoleApplication {
	return &consoleApplication{
		url:    url,
		events: events,
		out:    out,
		stats:  schema.NewRunStats(),
	}
}

// Start drains events until the loop closes the channel, then renders the
// summary. Termination rides on the channel close rather than the context so
// the summary also appears after an operator interrupt.
func (ca *consoleApplication) Start(_ context.Context) error {
	for ev := range ca.events {
		ca.stats.Observe(ev)
	}
	ca.Render(ca.stats)
	return nil
}

func (ca *consoleApplication) Render(stats *schema.RunStats) {
	if stats.TotalProbes == 0 {
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(ca.out)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{
		"URL", "Probes", "OK",
		"Unreachable", "Slow", "Changed",
		"Min Latency", "Max Latency", "Avg Latency",
	})

	okPct := stats.OKPercentage()
	okCell := colorizeOK(okPct, fmt.Sprintf("%d/%d %d%%", stats.Counts[schema.KindOK], stats.TotalProbes, okPct))

	minLatency := stats.MinLatency
	if stats.ReachedCount == 0 {
		minLatency = 0
	}

	t.AppendRow(table.Row{
		ca.url,
		stats.TotalProbes,
		okCell,
		stats.Counts[schema.KindUnreachable],
		stats.Counts[schema.KindLatencyExceeded],
		stats.Counts[schema.KindContentChanged],
		minLatency.Round(time.Millisecond),
		stats.MaxLatency.Round(time.Millisecond),
		stats.AvgLatency().Round(time.Millisecond),
	})

	t.Render()
}

func colorizeOK(okPct int, str string) string {
	switch {
	case okPct >= 90:
		return text.FgGreen.Sprint(str)
	case okPct >= 50:
		return text.FgYellow.Sprint(str)
	default:
		return text.FgRed.Sprint(str)
	}
}
