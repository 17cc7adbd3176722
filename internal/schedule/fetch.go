package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	DefaultTimeout   = 20 * time.Second
	DefaultRetries   = 2
	DefaultUserAgent = "ivsb/1.0"

	retryWait    = 500 * time.Millisecond
	retryMaxWait = 4 * time.Second
)

// FetchOptions configures a Fetcher. A zero Timeout or UserAgent takes the
// default; Retries is used as given.
type FetchOptions struct {
	Timeout   time.Duration
	Retries   int
	UserAgent string
}

// Fetcher downloads schedule pages.
type Fetcher struct {
	client *resty.Client
}

// NewFetcher creates a Fetcher. Each request is bounded by opts.Timeout and
// retried on transport errors and 5xx responses with exponential backoff.
func NewFetcher(opts FetchOptions) *Fetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Retries < 0 {
		opts.Retries = 0
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}

	client := resty.New()
	client.SetHeader("user-agent", opts.UserAgent)
	client.SetTimeout(opts.Timeout)
	client.SetRetryCount(opts.Retries)
	client.SetRetryWaitTime(retryWait)
	client.SetRetryMaxWaitTime(retryMaxWait)
	client.AddRetryCondition(func(res *resty.Response, err error) bool {
		return err != nil || res.StatusCode() >= 500
	})

	return &Fetcher{client: client}
}

// Fetch returns the body of url. Responses with a status of 400 or above are
// errors.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	res, err := f.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("failed to fetch %s: HTTP %d", url, res.StatusCode())
	}
	return res.Body(), nil
}
