package metadata

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/vat-directory/pkg/errors"
)

func TestService_ExtractSuccess(t *testing.T) {
	fetcher := &stubFetcher{
		fn: func(ctx context.Context, target string) (Page, error) {
			require.Equal(t, "https://example.com/", target)
			return Page{Body: []byte(`<head><meta property="og:title" content="Acme VAT"></head>`)}, nil
		},
	}
	svc := NewService(fetcher, newTestLogger())

	got, err := svc.Extract(context.Background(), "https://example.com")
	require.NoError(t, err)
	require.Equal(t, "Acme VAT", got.Title)
	require.Equal(t, "https://example.com/favicon.ico", got.Favicon)
	require.Equal(t, "https://example.com/", got.URL)
	require.Equal(t, 1, fetcher.calls)
}

func TestService_ExtractInvalidInputSkipsFetch(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		message string
	}{
		{name: "missing", raw: "", message: "URL is required"},
		{name: "blank", raw: "   ", message: "URL is required"},
		{name: "malformed", raw: "not-a-url", message: "Invalid URL format"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			fetcher := &stubFetcher{}
			svc := NewService(fetcher, newTestLogger())
			_, err := svc.Extract(context.Background(), tt.raw)
			require.True(t, apperrors.IsCode(err, "invalid_input"))

			var appErr *apperrors.AppError
			require.ErrorAs(t, err, &appErr)
			require.Equal(t, tt.message, appErr.Message)
			require.Zero(t, fetcher.calls)
		})
	}
}

func TestService_ExtractFetchFailures(t *testing.T) {
	tests := []struct {
		name        string
		fetchErr    error
		wantCode    string
		wantMessage string
	}{
		{
			name:        "upstream forbidden",
			fetchErr:    &apperrors.UpstreamError{Service: "page", Status: http.StatusForbidden},
			wantCode:    "upstream_error",
			wantMessage: "Failed to fetch URL (403)",
		},
		{
			name:        "transport failure",
			fetchErr:    &url.Error{Op: "Get", URL: "https://example.com/", Err: errors.New("no such host")},
			wantCode:    "fetch_unavailable",
			wantMessage: "Failed to fetch URL",
		},
		{
			name:        "read failure",
			fetchErr:    errors.New("read page body: unexpected EOF"),
			wantCode:    "metadata_failed",
			wantMessage: "Failed to fetch metadata",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			fetcher := &stubFetcher{
				fn: func(ctx context.Context, target string) (Page, error) {
					return Page{}, tt.fetchErr
				},
			}
			svc := NewService(fetcher, newTestLogger())
			_, err := svc.Extract(context.Background(), "https://example.com")
			require.True(t, apperrors.IsCode(err, tt.wantCode), "got %v", err)

			var appErr *apperrors.AppError
			require.ErrorAs(t, err, &appErr)
			require.Equal(t, tt.wantMessage, appErr.Message)
		})
	}
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubFetcher struct {
	calls int
	fn    func(ctx context.Context, target string) (Page, error)
}

func (s *stubFetcher) Fetch(ctx context.Context, target string) (Page, error) {
	s.calls++
	if s.fn != nil {
		return s.fn(ctx, target)
	}
	return Page{}, nil
}
