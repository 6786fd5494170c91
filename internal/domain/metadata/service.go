package metadata

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	apperrors "github.com/yanqian/vat-directory/pkg/errors"
)

// Service extracts link preview metadata for arbitrary pages.
type Service interface {
	Extract(ctx context.Context, rawURL string) (Result, error)
}

type PageFetcher interface {
	Fetch(ctx context.Context, target string) (Page, error)
}

type service struct {
	fetcher PageFetcher
	logger  *slog.Logger
}

// NewService wires up the metadata domain.
func NewService(fetcher PageFetcher, logger *slog.Logger) Service {
	return &service{fetcher: fetcher, logger: logger.With("component", "metadata.service")}
}

func (s *service) Extract(ctx context.Context, rawURL string) (Result, error) {
	if strings.TrimSpace(rawURL) == "" {
		return Result{}, apperrors.Wrap("invalid_input", "URL is required", nil)
	}
	target, err := parseTarget(rawURL)
	if err != nil {
		return Result{}, apperrors.Wrap("invalid_input", "Invalid URL format", err)
	}

	page, err := s.fetcher.Fetch(ctx, target.String())
	if err != nil {
		if status, ok := apperrors.UpstreamStatus(err); ok {
			return Result{}, apperrors.Wrap("upstream_error", fmt.Sprintf("Failed to fetch URL (%d)", status), err)
		}
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			return Result{}, apperrors.Wrap("fetch_unavailable", "Failed to fetch URL", err)
		}
		return Result{}, apperrors.Wrap("metadata_failed", "Failed to fetch metadata", err)
	}

	result, err := extract(page.Body, target)
	if err != nil {
		return Result{}, apperrors.Wrap("metadata_failed", "Failed to fetch metadata", err)
	}
	if page.FinalURL != "" && page.FinalURL != result.URL {
		s.logger.Debug("target redirected", "url", result.URL, "final_url", page.FinalURL)
	}
	return result, nil
}
