package client

import (
	"context"
	"net/http"
	"sync"
	"time"
)

const defaultHealthTimeout = 5 * time.Second

// HealthChecker probes backend liveness with a bounded wait. The rest of the
// console gates on its outcome before rendering against a dead backend.
// Retry is user-triggered: call Check again.
type HealthChecker struct {
	baseURL string
	timeout time.Duration
	httpc   *http.Client

	mu        sync.Mutex
	available *bool
	lastCheck time.Time
}

type HealthOption func(*HealthChecker)

func WithTimeout(d time.Duration) HealthOption {
	return func(h *HealthChecker) { h.timeout = d }
}

func WithHealthHTTPClient(c *http.Client) HealthOption {
	return func(h *HealthChecker) { h.httpc = c }
}

func NewHealthChecker(baseURL string, opts ...HealthOption) *HealthChecker {
	h := &HealthChecker{
		baseURL: baseURL,
		timeout: defaultHealthTimeout,
		httpc:   &http.Client{},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Check probes GET /api/health once. The request is aborted when the timeout
// elapses, so an endpoint that never responds resolves to unavailable rather
// than hanging.
func (h *HealthChecker) Check(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	ok := false
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.baseURL+"/api/health", nil)
	if err == nil {
		resp, err := h.httpc.Do(req)
		if err == nil {
			resp.Body.Close()
			ok = resp.StatusCode >= 200 && resp.StatusCode <= 299
		}
	}

	h.mu.Lock()
	h.available = &ok
	h.lastCheck = time.Now()
	h.mu.Unlock()
	return ok
}

// Availability returns the cached outcome; known is false before the first
// probe or after Reset.
func (h *HealthChecker) Availability() (available, known bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.available == nil {
		return false, false
	}
	return *h.available, true
}

func (h *HealthChecker) LastCheck() time.Time {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lastCheck
}

// Reset clears the cached status, forcing the next Availability consumer to
// re-probe.
func (h *HealthChecker) Reset() {
	h.mu.Lock()
	h.available = nil
	h.lastCheck = time.Time{}
	h.mu.Unlock()
}
