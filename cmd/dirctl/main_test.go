package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yanqian/vat-directory/internal/domain/access"
	"github.com/yanqian/vat-directory/internal/domain/blog"
	"github.com/yanqian/vat-directory/internal/domain/metadata"
	"github.com/yanqian/vat-directory/internal/domain/overview"
	apperrors "github.com/yanqian/vat-directory/pkg/errors"
)

func TestCLI_ShowsHelpWhenAsked(t *testing.T) {
	t.Parallel()
	m := newTestMain(t, nil)
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--help"}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "dirctl")
	assert.Contains(t, stdout.String(), "metadata")
	assert.Contains(t, stdout.String(), "posts")
}

func TestCLI_NoArgumentsIsAnError(t *testing.T) {
	t.Parallel()
	m := newTestMain(t, nil)
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), nil, &stdout, &stderr)

	require.Error(t, err)
	assert.Contains(t, stdout.String(), "dirctl")
}

func TestCLI_Metadata(t *testing.T) {
	t.Parallel()
	services := &Services{
		Metadata: stubMetadata(func(ctx context.Context, raw string) (metadata.Result, error) {
			require.Equal(t, "https://acme.example", raw)
			return metadata.Result{Title: "Acme", Favicon: "https://acme.example/favicon.ico", URL: "https://acme.example/"}, nil
		}),
	}
	m := newTestMain(t, services)
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"metadata", "https://acme.example"}, &stdout, &stderr)
	require.NoError(t, err)

	var got metadata.Result
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
	require.Equal(t, "Acme", got.Title)
}

func TestCLI_MetadataServiceError(t *testing.T) {
	t.Parallel()
	services := &Services{
		Metadata: stubMetadata(func(ctx context.Context, raw string) (metadata.Result, error) {
			return metadata.Result{}, apperrors.Wrap("invalid_input", "Invalid URL format", nil)
		}),
	}
	m := newTestMain(t, services)
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"metadata", "not-a-url"}, &stdout, &stderr)
	require.ErrorContains(t, err, "Invalid URL format")
	require.Empty(t, stdout.String())
}

func TestCLI_OverviewReadsStdin(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		stdin string
		want  string
	}{
		{name: "json object", stdin: `{"results":[{"title":"Acme"}]}` + "\n", want: `{"results":[{"title":"Acme"}]}`},
		{name: "plain text", stdin: "Acme offers VAT returns\n", want: `"Acme offers VAT returns"`},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			services := &Services{
				Overview: stubOverview(func(ctx context.Context, req overview.Request) (overview.Response, error) {
					require.Equal(t, "https://acme.example", req.URL)
					require.JSONEq(t, tt.want, string(req.SearchResults))
					return overview.Response{Overview: "## Acme"}, nil
				}),
			}
			m := newTestMain(t, services)
			m.Stdin = strings.NewReader(tt.stdin)
			var stdout, stderr bytes.Buffer

			err := m.Run(context.Background(), []string{"overview", "https://acme.example"}, &stdout, &stderr)
			require.NoError(t, err)
			require.JSONEq(t, `{"overview":"## Acme"}`, stdout.String())
		})
	}
}

func TestCLI_OverviewReadsFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "results.json")
	require.NoError(t, os.WriteFile(path, []byte(`[1,2]`), 0o600))

	services := &Services{
		Overview: stubOverview(func(ctx context.Context, req overview.Request) (overview.Response, error) {
			require.JSONEq(t, `[1,2]`, string(req.SearchResults))
			return overview.Response{Overview: "ok"}, nil
		}),
	}
	m := newTestMain(t, services)
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"overview", "https://acme.example", "--results", path}, &stdout, &stderr)
	require.NoError(t, err)
}

func TestCLI_Posts(t *testing.T) {
	t.Parallel()
	services := &Services{
		Blog: &stubBlog{
			posts: []blog.PostMeta{{Slug: "vat-basics", Title: "VAT basics"}},
			post:  blog.Post{PostMeta: blog.PostMeta{Slug: "vat-basics", Title: "VAT basics"}, Content: "# VAT"},
		},
	}
	m := newTestMain(t, services)

	var stdout, stderr bytes.Buffer
	require.NoError(t, m.Run(context.Background(), []string{"posts", "list"}, &stdout, &stderr))
	var posts []blog.PostMeta
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &posts))
	require.Len(t, posts, 1)

	stdout.Reset()
	require.NoError(t, m.Run(context.Background(), []string{"posts", "show", "vat-basics"}, &stdout, &stderr))
	require.Contains(t, stdout.String(), `"content": "# VAT"`)

	err := m.Run(context.Background(), []string{"posts", "show", "missing"}, &stdout, &stderr)
	require.True(t, apperrors.IsCode(err, "not_found"))
}

func TestCLI_TokenIssue(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		secret   string
		args     []string
		wantCode string
		wantTTL  time.Duration
	}{
		{
			name:    "default ttl",
			secret:  "cli-secret",
			args:    []string{"token", "issue", "--subject", "partner-a"},
			wantTTL: 24 * time.Hour,
		},
		{
			name:    "explicit ttl",
			secret:  "cli-secret",
			args:    []string{"token", "issue", "--subject", "partner-b", "--ttl", "90m"},
			wantTTL: 90 * time.Minute,
		},
		{
			name:     "no secret configured",
			args:     []string{"token", "issue", "--subject", "partner-a"},
			wantCode: "config_error",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			guard := access.NewService(access.Config{Secret: tt.secret, Issuer: "vat-directory"}, slog.New(slog.NewTextHandler(io.Discard, nil)))
			m := newTestMain(t, &Services{Access: guard})
			var stdout, stderr bytes.Buffer

			before := time.Now()
			err := m.Run(context.Background(), tt.args, &stdout, &stderr)
			if tt.wantCode != "" {
				require.True(t, apperrors.IsCode(err, tt.wantCode), "got %v", err)
				require.Empty(t, stdout.String())
				return
			}
			require.NoError(t, err)

			var got struct {
				Token     string    `json:"token"`
				ExpiresAt time.Time `json:"expiresAt"`
			}
			require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
			claims, err := guard.ValidateToken(context.Background(), got.Token)
			require.NoError(t, err)
			require.Equal(t, tt.args[3], claims.Subject)
			require.True(t, got.ExpiresAt.Equal(claims.ExpiresAt))
			require.WithinDuration(t, before.Add(tt.wantTTL), got.ExpiresAt, 5*time.Second)
		})
	}
}

func TestCLI_TokenIssueRequiresSubject(t *testing.T) {
	t.Parallel()
	m := newTestMain(t, nil)
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"token", "issue"}, &stdout, &stderr)
	require.ErrorContains(t, err, "--subject")
}

func TestCLI_ServiceInitFailure(t *testing.T) {
	t.Parallel()
	m := &Main{
		Stdin: strings.NewReader(""),
		NewServices: func(io.Writer) (*Services, error) {
			return nil, errors.New("invalid config: http.address cannot be empty")
		},
	}
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"posts", "list"}, &stdout, &stderr)
	require.ErrorContains(t, err, "failed to initialize services")
}

func TestSearchResultsPayload(t *testing.T) {
	t.Parallel()
	require.Nil(t, searchResultsPayload([]byte("  \n")))
	require.Equal(t, `{"a":1}`, string(searchResultsPayload([]byte(" {\"a\":1} "))))
	require.Equal(t, `"not json"`, string(searchResultsPayload([]byte("not json"))))
}

func newTestMain(t *testing.T, services *Services) *Main {
	t.Helper()
	return &Main{
		Stdin: strings.NewReader(""),
		NewServices: func(io.Writer) (*Services, error) {
			if services == nil {
				t.Fatal("services should not be built")
			}
			return services, nil
		},
	}
}

type stubMetadata func(ctx context.Context, raw string) (metadata.Result, error)

func (f stubMetadata) Extract(ctx context.Context, raw string) (metadata.Result, error) {
	return f(ctx, raw)
}

type stubOverview func(ctx context.Context, req overview.Request) (overview.Response, error)

func (f stubOverview) Generate(ctx context.Context, req overview.Request) (overview.Response, error) {
	return f(ctx, req)
}

type stubBlog struct {
	posts []blog.PostMeta
	post  blog.Post
}

func (s *stubBlog) List(ctx context.Context) ([]blog.PostMeta, error) {
	return s.posts, nil
}

func (s *stubBlog) Get(ctx context.Context, slug string) (blog.Post, error) {
	if slug != s.post.Slug {
		return blog.Post{}, apperrors.Wrap("not_found", "post not found", nil)
	}
	return s.post, nil
}
