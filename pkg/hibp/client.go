// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package hibp

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog/log"
)

const (
	DefaultURL       = "https://api.pwnedpasswords.com/range"
	DefaultTimeout   = 5 * time.Second
	DefaultUserAgent = "pwdcheck/1.0"
)

var ErrUnexpectedStatus = errors.New("unexpected response status")

// Client queries the Pwned Passwords range API. Only the first 5 characters
// of the SHA-1 hash ever leave the process. It holds no mutable state and can
// be shared between goroutines.
type Client struct {
	baseURL   string
	userAgent string
	http      *retryablehttp.Client
}

type Option func(*Client)

// WithBaseURL points the client to another range endpoint, e.g. a mirror or a test server.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithHTTPClient replaces the underlying transport client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http.HTTPClient = hc
	}
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:   DefaultURL,
		userAgent: DefaultUserAgent,
		http:      initHttpClient(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func initHttpClient() *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.Logger = nil

	// A failed lookup is reported as inconclusive, never retried.
	client.RetryMax = 0
	// Hand non-2xx responses back to us instead of turning them into a generic error.
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler

	client.HTTPClient = &http.Client{
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:          10,
			IdleConnTimeout:       10 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
			ForceAttemptHTTP2:     true,
		},
	}

	return client
}

// Check looks the password up in the leak database. An empty password is
// never sent anywhere and is reported as NotFound. The lookup is bounded by
// timeout; a non-positive timeout means DefaultTimeout.
func (c *Client) Check(ctx context.Context, password string, timeout time.Duration) Result {
	if password == "" {
		return notFound()
	}

	prefix, suffix := HashRange(password)
	return c.lookup(ctx, prefix, suffix, timeout)
}

// CheckHash is Check for a password already hashed with SHA-1 (hex, any case).
func (c *Client) CheckHash(ctx context.Context, hash string, timeout time.Duration) Result {
	prefix, suffix, err := SplitHash(hash)
	if err != nil {
		return failed(err)
	}

	return c.lookup(ctx, prefix, suffix, timeout)
}

func (c *Client) lookup(ctx context.Context, prefix string, suffix string, timeout time.Duration) Result {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	timer := time.Now()
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/%s", c.baseURL, prefix), nil)
	if err != nil {
		return failed(err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	log.Debug().Str("range", prefix).Msg("querying pwned passwords range")
	res, err := c.http.Do(req)
	if err != nil {
		log.Debug().Err(err).Str("range", prefix).Msg("range request failed")
		return failed(err)
	}

	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			log.Warn().Err(err).Msgf("error closing body for range %s", prefix)
		}
	}(res.Body)

	if res.StatusCode != http.StatusOK {
		log.Debug().Str("range", prefix).Int("status", res.StatusCode).Msg("range request rejected")
		return failed(fmt.Errorf("%w: [%d] %s", ErrUnexpectedStatus, res.StatusCode, res.Status))
	}

	result := ParseRange(res.Body, suffix)
	log.Debug().
		Str("range", prefix).
		Str("status", result.Status.String()).
		Int64("millis", time.Since(timer).Milliseconds()).
		Msg("range request complete")

	return result
}
