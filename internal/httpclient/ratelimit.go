package httpclient

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/imroc/req/v3"

	"github.com/axrune/subscan/internal/ratelimit"
)

const (
	// retryAfterFallback is used when Retry-After header is absent or unparseable.
	retryAfterFallback = 5 * time.Second
	// retryAfterCap is the maximum sleep duration honoured from a Retry-After header.
	retryAfterCap = 60 * time.Second
	// transportRetryInterval is the wait between retries on transient connection errors.
	transportRetryInterval = 1 * time.Second
	// maxRetries bounds retries on HTTP 429 and transient transport errors.
	maxRetries = 3
)

// AttachRateLimit hooks limiter onto client's request pipeline: every
// outbound request waits on limiter.Wait before being sent, and up to
// maxRetries retries are attempted on HTTP 429 (honouring Retry-After) or
// transient transport errors other than context cancellation.
func AttachRateLimit(client *req.Client, limiter *ratelimit.Limiter) {
	client.OnBeforeRequest(func(_ *req.Client, r *req.Request) error {
		return limiter.Wait(r.Context())
	})

	client.SetCommonRetryCount(maxRetries)
	client.AddCommonRetryCondition(func(resp *req.Response, _ error) bool {
		return resp != nil && resp.Response != nil && resp.StatusCode == http.StatusTooManyRequests
	})
	client.AddCommonRetryCondition(func(_ *req.Response, err error) bool {
		if err == nil {
			return false
		}
		return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
	})
	client.SetCommonRetryInterval(func(resp *req.Response, _ int) time.Duration {
		if resp == nil || resp.Response == nil {
			return transportRetryInterval
		}
		return parseRetryAfter(resp.Header.Get("Retry-After"))
	})
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return retryAfterFallback
	}
	if secs, err := strconv.Atoi(header); err == nil {
		return min(time.Duration(secs)*time.Second, retryAfterCap)
	}
	if t, err := http.ParseTime(header); err == nil {
		return min(max(time.Until(t), 0), retryAfterCap)
	}
	return retryAfterFallback
}
