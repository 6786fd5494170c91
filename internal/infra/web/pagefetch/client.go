package pagefetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html/charset"

	"github.com/yanqian/vat-directory/internal/domain/metadata"
	apperrors "github.com/yanqian/vat-directory/pkg/errors"
)

const (
	defaultTimeout  = 10 * time.Second
	defaultMaxBytes = 5 << 20
	defaultUA       = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"
)

// Options configures the page client.
type Options struct {
	Timeout   time.Duration
	MaxBytes  int64
	UserAgent string
}

// Client downloads HTML pages with browser-like request headers.
type Client struct {
	httpClient *http.Client
	maxBytes   int64
	userAgent  string
}

// NewClient builds a page client. Redirects are followed by the default policy.
func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = defaultMaxBytes
	}
	if strings.TrimSpace(opts.UserAgent) == "" {
		opts.UserAgent = defaultUA
	}
	return &Client{
		httpClient: &http.Client{Timeout: opts.Timeout},
		maxBytes:   opts.MaxBytes,
		userAgent:  opts.UserAgent,
	}
}

// Fetch issues a single GET for target and returns the decoded body.
func (c *Client) Fetch(ctx context.Context, target string) (metadata.Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return metadata.Page{}, fmt.Errorf("build page request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return metadata.Page{}, fmt.Errorf("page request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return metadata.Page{}, &apperrors.UpstreamError{Service: "page", Status: resp.StatusCode, Body: strings.TrimSpace(string(payload))}
	}

	contentType := resp.Header.Get("Content-Type")
	reader, err := charset.NewReader(io.LimitReader(resp.Body, c.maxBytes), contentType)
	if err != nil {
		return metadata.Page{}, fmt.Errorf("decode page charset: %w", err)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return metadata.Page{}, fmt.Errorf("read page body: %w", err)
	}

	return metadata.Page{
		Body:        body,
		ContentType: contentType,
		FinalURL:    resp.Request.URL.String(),
	}, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set("Referer", "https://www.google.com/")
}

var _ metadata.PageFetcher = (*Client)(nil)
