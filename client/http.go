package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/caprim-labs/stellar-gateway/errors"
)

const (
	defaultTimeout      = 30 * time.Second
	defaultMaxRetries   = 3
	defaultBackoff      = time.Second
	defaultFailureLimit = 5
	defaultResetTimeout = 60 * time.Second
)

// httpCore is the transport under Client. It retries transient failures with
// exponential backoff and trips a circuit breaker when the gateway stays
// unreachable.
type httpCore struct {
	client       *http.Client
	maxRetries   int
	retryBackoff time.Duration
	breaker      *circuitBreaker
}

func newHTTPCore() *httpCore {
	return &httpCore{
		client:       &http.Client{Timeout: defaultTimeout},
		maxRetries:   defaultMaxRetries,
		retryBackoff: defaultBackoff,
		breaker: &circuitBreaker{
			failureLimit: defaultFailureLimit,
			resetTimeout: defaultResetTimeout,
		},
	}
}

func (c *httpCore) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.NewClientError(errors.NETWORK_ERROR, "failed to create GET request", err)
	}
	return c.do(req)
}

func (c *httpCore) send(ctx context.Context, method, url string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, errors.NewClientError(errors.NETWORK_ERROR, fmt.Sprintf("failed to create %s request", method), err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

// do runs the request with retries. 5xx responses and transport errors
// retry; 4xx responses return immediately for the caller to interpret.
func (c *httpCore) do(req *http.Request) (*http.Response, error) {
	if !c.breaker.allowRequest() {
		return nil, errors.NewClientError(errors.NETWORK_ERROR, "circuit breaker is open", nil)
	}

	// Buffer the body so retries can replay it.
	var bodyBytes []byte
	if req.Body != nil {
		var err error
		bodyBytes, err = io.ReadAll(req.Body)
		if err != nil {
			return nil, errors.NewClientError(errors.NETWORK_ERROR, "failed to read request body", err)
		}
		req.Body.Close()
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		select {
		case <-req.Context().Done():
			return nil, errors.NewClientError(errors.NETWORK_ERROR, "request cancelled", req.Context().Err())
		default:
		}

		if bodyBytes != nil {
			req.Body = io.NopCloser(bytes.NewReader(bodyBytes))
			req.ContentLength = int64(len(bodyBytes))
		}

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = err
			if attempt < c.maxRetries {
				c.backoff(attempt)
				continue
			}
			c.breaker.recordFailure()
			return nil, errors.NewClientError(errors.NETWORK_ERROR,
				fmt.Sprintf("request failed after %d attempts", attempt+1), err)
		}

		if resp.StatusCode >= 500 {
			resp.Body.Close()
			lastErr = fmt.Errorf("server error: %s", resp.Status)
			if attempt < c.maxRetries {
				c.backoff(attempt)
				continue
			}
			c.breaker.recordFailure()
			return nil, errors.NewClientError(errors.NETWORK_ERROR,
				fmt.Sprintf("server error after %d attempts: %s", attempt+1, resp.Status), lastErr)
		}

		c.breaker.recordSuccess()
		return resp, nil
	}

	return nil, errors.NewClientError(errors.NETWORK_ERROR, "unexpected retry exhaustion", lastErr)
}

func (c *httpCore) backoff(attempt int) {
	time.Sleep(c.retryBackoff * (1 << uint(attempt)))
}

// circuitBreaker counts consecutive failures and rejects requests once the
// limit is hit, until resetTimeout has elapsed since the last failure.
type circuitBreaker struct {
	mu           sync.RWMutex
	failures     int
	lastFailTime time.Time
	failureLimit int
	resetTimeout time.Duration
	open         bool
}

func (cb *circuitBreaker) allowRequest() bool {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	if !cb.open {
		return true
	}
	return time.Since(cb.lastFailTime) > cb.resetTimeout
}

func (cb *circuitBreaker) recordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.failures = 0
	cb.open = false
}

func (cb *circuitBreaker) recordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.failures++
	cb.lastFailTime = time.Now()
	if cb.failures >= cb.failureLimit {
		cb.open = true
	}
}
