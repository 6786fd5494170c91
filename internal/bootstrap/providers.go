package bootstrap

import (
	"log/slog"

	"github.com/google/wire"

	"github.com/yanqian/vat-directory/internal/domain/access"
	"github.com/yanqian/vat-directory/internal/domain/blog"
	"github.com/yanqian/vat-directory/internal/domain/metadata"
	"github.com/yanqian/vat-directory/internal/domain/overview"
	"github.com/yanqian/vat-directory/internal/infra/blogsource"
	"github.com/yanqian/vat-directory/internal/infra/config"
	"github.com/yanqian/vat-directory/internal/infra/llm/chatgpt"
	"github.com/yanqian/vat-directory/internal/infra/llm/tokens"
	"github.com/yanqian/vat-directory/internal/infra/web/pagefetch"
)

// ServiceSet builds the domain services shared by the API server and the CLI.
var ServiceSet = wire.NewSet(
	ProvidePageClient,
	ProvideChatClient,
	ProvideTokenCounter,
	ProvideOverviewConfig,
	ProvideBlogSource,
	ProvideAccessConfig,
	metadata.NewService,
	overview.NewService,
	blog.NewService,
	access.NewService,
	wire.Bind(new(metadata.PageFetcher), new(*pagefetch.Client)),
	wire.Bind(new(overview.ChatClient), new(*chatgpt.Client)),
	wire.Bind(new(overview.TokenCounter), new(*tokens.Counter)),
)

func ProvidePageClient(cfg *config.Config) *pagefetch.Client {
	return pagefetch.NewClient(pagefetch.Options{
		Timeout:   cfg.Metadata.FetchTimeout,
		MaxBytes:  cfg.Metadata.MaxBodyBytes,
		UserAgent: cfg.Metadata.UserAgent,
	})
}

func ProvideChatClient(cfg *config.Config) *chatgpt.Client {
	return chatgpt.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL, cfg.LLM.Timeout)
}

func ProvideTokenCounter(cfg *config.Config, logger *slog.Logger) *tokens.Counter {
	return tokens.NewCounter(cfg.LLM.TokenEncoding, logger)
}

func ProvideAccessConfig(cfg *config.Config) access.Config {
	return access.Config{
		Secret: cfg.Access.Secret,
		Issuer: cfg.Access.Issuer,
	}
}

func ProvideOverviewConfig(cfg *config.Config) overview.Config {
	return overview.Config{
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxWords:    cfg.Overview.MaxWords,
	}
}

// ProvideBlogSource picks the post store. A misconfigured bucket fails startup
// rather than silently serving an empty blog.
func ProvideBlogSource(cfg *config.Config, logger *slog.Logger) (blog.Source, error) {
	if cfg.Blog.Source == config.BlogSourceS3 {
		src, err := blogsource.NewS3Source(blogsource.S3Options{
			Endpoint:  cfg.Blog.S3.Endpoint,
			AccessKey: cfg.Blog.S3.AccessKey,
			SecretKey: cfg.Blog.S3.SecretKey,
			Bucket:    cfg.Blog.S3.Bucket,
			Region:    cfg.Blog.S3.Region,
			Prefix:    cfg.Blog.S3.Prefix,
		}, logger)
		if err != nil {
			return nil, err
		}
		logger.Info("blog s3 source enabled", "bucket", cfg.Blog.S3.Bucket)
		return src, nil
	}
	return blogsource.NewDirSource(cfg.Blog.Dir), nil
}
