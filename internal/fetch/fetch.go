// Package fetch downloads PDF documents over HTTP.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-resty/resty/v2"
)

const (
	// DefaultTimeout bounds a single download when no timeout is configured.
	DefaultTimeout = 30 * time.Second

	userAgent = "pdfquery/1.0"
	pdfMIME   = "application/pdf"
)

// ErrNotPDF is returned when a downloaded body is not a PDF document.
var ErrNotPDF = errors.New("response body is not a PDF")

// StatusError reports a non-2xx response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
}

// Client fetches documents with a per-request timeout. Requests are not retried.
type Client struct {
	http *resty.Client
}

// NewClient creates a fetch client. A non-positive timeout uses DefaultTimeout.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		http: resty.New().
			SetTimeout(timeout).
			SetHeader("User-Agent", userAgent).
			SetHeader("Accept", pdfMIME+", */*"),
	}
}

// Fetch downloads url and returns the body if it is a PDF.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	if resp.IsError() || resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode()}
	}

	body := resp.Body()
	if detected := mimetype.Detect(body); !detected.Is(pdfMIME) {
		return nil, fmt.Errorf("fetch %s: %w (detected %s)", url, ErrNotPDF, detected.String())
	}
	return body, nil
}
