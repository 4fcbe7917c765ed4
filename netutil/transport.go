// Package netutil provides the HTTP plumbing for model registry traffic:
// a retrying transport, a download size guard, and URL normalization.
package netutil

import (
	"crypto/tls"
	"net/http"
	"strconv"
	"time"
)

// RetryPolicy controls how the transport retries transient failures.
type RetryPolicy struct {
	// MaxAttempts is the total number of tries, including the first.
	MaxAttempts int

	// BaseDelay is the delay before the first retry. Each further retry
	// doubles it, capped at MaxDelay.
	BaseDelay time.Duration

	// MaxDelay caps the per-retry delay, including Retry-After values.
	MaxDelay time.Duration
}

// DefaultRetryPolicy is used when no policy is given.
var DefaultRetryPolicy = RetryPolicy{
	MaxAttempts: 4,
	BaseDelay:   time.Second,
	MaxDelay:    30 * time.Second,
}

// RetryTransport retries registry requests on network errors and transient
// status codes, honoring Retry-After when the server sends one.
type RetryTransport struct {
	Base    http.RoundTripper
	Policy  RetryPolicy
	OnRetry func(attempt int, delay time.Duration, status int)
}

// NewDownloadClient builds the HTTP client used for model pulls: retrying
// transport over TLS 1.2+.
func NewDownloadClient(policy RetryPolicy) *http.Client {
	base := http.DefaultTransport.(*http.Transport).Clone()
	base.TLSClientConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	return &http.Client{
		Transport: &RetryTransport{Base: base, Policy: policy},
	}
}

// RoundTrip implements http.RoundTripper.
func (t *RetryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	policy := t.Policy
	if policy.MaxAttempts == 0 {
		policy = DefaultRetryPolicy
	}

	var resp *http.Response
	var err error
	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		attemptReq := req.Clone(req.Context())
		if req.GetBody != nil {
			body, bodyErr := req.GetBody()
			if bodyErr != nil {
				return nil, bodyErr
			}
			attemptReq.Body = body
		}

		resp, err = base.RoundTrip(attemptReq)
		if err == nil && !retryableStatus(resp.StatusCode) {
			return resp, nil
		}
		if attempt == policy.MaxAttempts {
			break
		}

		delay := policy.backoff(attempt)
		status := 0
		if err == nil {
			status = resp.StatusCode
			delay = retryAfter(resp, delay, policy.MaxDelay)
			_ = resp.Body.Close()
		}
		if t.OnRetry != nil {
			t.OnRetry(attempt, delay, status)
		}

		select {
		case <-req.Context().Done():
			return nil, req.Context().Err()
		case <-time.After(delay):
		}
	}

	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (p RetryPolicy) backoff(attempt int) time.Duration {
	delay := p.BaseDelay << (attempt - 1)
	if delay > p.MaxDelay {
		return p.MaxDelay
	}
	return delay
}

// retryAfter parses a Retry-After header as either seconds or an HTTP date.
func retryAfter(resp *http.Response, fallback, maxDelay time.Duration) time.Duration {
	header := resp.Header.Get("Retry-After")
	if header == "" {
		return fallback
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return clampDelay(time.Duration(seconds)*time.Second, fallback, maxDelay)
	}
	if at, err := http.ParseTime(header); err == nil {
		return clampDelay(time.Until(at), fallback, maxDelay)
	}
	return fallback
}

func clampDelay(d, fallback, maxDelay time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	if d > maxDelay {
		return maxDelay
	}
	return d
}

func retryableStatus(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}
