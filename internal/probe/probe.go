package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dvdk01/urlwatch/internal/schema"
)

// HTTPProber issues single GET probes against a target URL. The client is
// injected so tests can swap in a mock transport.
type HTTPProber struct {
	client  *http.Client
	timeout time.Duration
}

func New(client *http.Client, timeout time.Duration) *HTTPProber {
	return &HTTPProber{
		client:  client,
		timeout: timeout,
	}
}

// Probe performs one GET with a bounded timeout. Latency is measured from
// request start to full body receipt, since the drift digest needs the
// complete content anyway. Failures of any kind come back inside the result,
// never as a returned error.
func (p *HTTPProber) Probe(ctx context.Context, url string) schema.ProbeResult {
	reqCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()

	result := schema.ProbeResult{Timestamp: time.Now()}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		result.Err = err
		return result
	}

	start := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		result.Latency = time.Since(start)
		result.Err = err
		return result
	}
	defer resp.Body.Close() //nolint

	body, err := io.ReadAll(resp.Body)
	result.Latency = time.Since(start)
	result.StatusCode = resp.StatusCode

	if err != nil {
		result.Err = fmt.Errorf("reading body: %w", err)
		return result
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		result.Err = fmt.Errorf("unexpected status %s", resp.Status)
		return result
	}

	result.Reachable = true
	result.Body = body
	return result
}
