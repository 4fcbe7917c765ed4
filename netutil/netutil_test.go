package netutil_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prunekit/prunekit-host-sdk/netutil"
)

func TestRetryTransport_RetriesTransientStatuses(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("model-bytes"))
	}))
	defer srv.Close()

	client := &http.Client{Transport: &netutil.RetryTransport{
		Policy: netutil.RetryPolicy{MaxAttempts: 4, BaseDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond},
	}}

	resp, err := client.Get(srv.URL)
	require.NoError(t, err)
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "model-bytes", string(body))
	assert.Equal(t, int32(3), hits.Load())
}

func TestRetryTransport_DoesNotRetryClientErrors(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := &http.Client{Transport: &netutil.RetryTransport{
		Policy: netutil.RetryPolicy{MaxAttempts: 4, BaseDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond},
	}}

	resp, err := client.Get(srv.URL)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, int32(1), hits.Load())
}

func TestRetryTransport_HonorsRetryAfterSeconds(t *testing.T) {
	t.Parallel()

	var delays []time.Duration
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := &http.Client{Transport: &netutil.RetryTransport{
		Policy: netutil.RetryPolicy{MaxAttempts: 2, BaseDelay: time.Millisecond, MaxDelay: time.Second},
		OnRetry: func(attempt int, delay time.Duration, status int) {
			delays = append(delays, delay)
		},
	}}

	resp, err := client.Get(srv.URL)
	require.NoError(t, err)
	_ = resp.Body.Close()

	require.Len(t, delays, 1)
	assert.Equal(t, time.Second, delays[0])
}

func TestRetryTransport_GivesUpAfterMaxAttempts(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := &http.Client{Transport: &netutil.RetryTransport{
		Policy: netutil.RetryPolicy{MaxAttempts: 3, BaseDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond},
	}}

	resp, err := client.Get(srv.URL)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, int32(3), hits.Load())
}

func TestLimitSize_AllowsStreamsWithinLimit(t *testing.T) {
	t.Parallel()

	r := netutil.LimitSize(strings.NewReader("0123456789"), 10)

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "0123456789", string(data))
	assert.Equal(t, int64(10), r.BytesRead())
}

func TestLimitSize_FailsOversizedStreams(t *testing.T) {
	t.Parallel()

	r := netutil.LimitSize(strings.NewReader(strings.Repeat("x", 100)), 10)

	_, err := io.ReadAll(r)
	require.Error(t, err)
	assert.True(t, netutil.IsSizeLimitError(err))
}

func TestNormalizeRegistryURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"default https port dropped", "HTTPS://Zoo.Prunekit.Org:443/models/", "https://zoo.prunekit.org/models"},
		{"credentials stripped", "https://u:p@zoo.prunekit.org/models", "https://zoo.prunekit.org/models"},
		{"custom port kept", "https://zoo.prunekit.org:8443/models", "https://zoo.prunekit.org:8443/models"},
		{"query sorted", "https://zoo.prunekit.org/m?b=2&a=1", "https://zoo.prunekit.org/m?a=1&b=2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, netutil.NormalizeRegistryURL(tt.in))
		})
	}
}

func TestFormatSize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "512 B", netutil.FormatSize(512))
	assert.Equal(t, "1.5 KiB", netutil.FormatSize(1536))
	assert.Equal(t, "2.0 MiB", netutil.FormatSize(2*1024*1024))
	assert.Equal(t, "3.0 GiB", netutil.FormatSize(3*1024*1024*1024))
}
