package overview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/yanqian/vat-directory/internal/infra/llm/chatgpt"
	apperrors "github.com/yanqian/vat-directory/pkg/errors"
	"github.com/yanqian/vat-directory/pkg/metrics"
)

// Service generates short markdown overviews of scraped pages.
type Service interface {
	Generate(ctx context.Context, req Request) (Response, error)
}

type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error)
}

type TokenCounter interface {
	Count(text string) int
}

type service struct {
	cfg     Config
	client  ChatClient
	counter TokenCounter
	logger  *slog.Logger
}

// NewService is a wire provider for the overview domain.
func NewService(cfg Config, client ChatClient, counter TokenCounter, logger *slog.Logger) Service {
	return &service{cfg: cfg, client: client, counter: counter, logger: logger.With("component", "overview.service")}
}

func (s *service) Generate(ctx context.Context, req Request) (Response, error) {
	source := strings.TrimSpace(req.URL)
	results, ok := normalizeSearchResults(req.SearchResults)
	if source == "" || !ok {
		return Response{}, apperrors.Wrap("invalid_input", "URL and search results are required", nil)
	}
	if raw, isRaw := results.(Raw); isRaw {
		s.logger.Debug("search results kept as raw text", "length", len(raw.Text))
	}

	prompt := buildPrompt(source, results, s.cfg.MaxWords)
	resp, err := s.client.CreateChatCompletion(ctx, chatgpt.ChatCompletionRequest{
		Model:       s.cfg.Model,
		Messages:    []chatgpt.Message{{Role: "user", Content: prompt}},
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return Response{}, classifyError(err)
	}

	content, found := resp.FirstContent()
	if !found {
		s.logger.Warn("completion returned no content", "url", source, "choices", len(resp.Choices))
	}

	return Response{
		Overview:   content,
		TokenUsage: s.usage(resp.Usage, prompt),
	}, nil
}

func (s *service) usage(upstream *chatgpt.Usage, prompt string) *metrics.TokenUsage {
	if upstream != nil {
		usage := metrics.TokenUsage{
			PromptTokens:     upstream.PromptTokens,
			CompletionTokens: upstream.CompletionTokens,
			TotalTokens:      upstream.TotalTokens,
		}
		if !usage.IsZero() {
			return &usage
		}
	}
	if s.counter == nil {
		return nil
	}
	promptTokens := s.counter.Count(prompt)
	if promptTokens == 0 {
		return nil
	}
	return &metrics.TokenUsage{PromptTokens: promptTokens, TotalTokens: promptTokens, Estimated: true}
}

func classifyError(err error) error {
	if errors.Is(err, chatgpt.ErrMissingAPIKey) {
		return apperrors.Wrap("config_error", "LLM API key is not configured", err)
	}
	if _, ok := apperrors.UpstreamStatus(err); ok {
		return apperrors.Wrap("upstream_error", fmt.Sprintf("LLM error: %s", apperrors.UpstreamBody(err)), err)
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return apperrors.Wrap("llm_unavailable", "LLM service unreachable", err)
	}
	return apperrors.Wrap("generate_failed", fmt.Sprintf("Failed to generate overview: %s", err.Error()), err)
}
