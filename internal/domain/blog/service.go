package blog

import (
	"context"
	"log/slog"
	"path"
	"regexp"
	"sort"
	"strings"

	apperrors "github.com/yanqian/vat-directory/pkg/errors"
)

// Extensions are tried in order when resolving a slug.
var Extensions = []string{".mdx", ".md"}

var slugPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// Service lists and loads markdown blog posts.
type Service interface {
	List(ctx context.Context) ([]PostMeta, error)
	Get(ctx context.Context, slug string) (Post, error)
}

// Source provides raw post files by name.
type Source interface {
	List(ctx context.Context) ([]string, error)
	Read(ctx context.Context, name string) ([]byte, bool, error)
}

type service struct {
	source Source
	logger *slog.Logger
}

// NewService wires up the blog domain.
func NewService(source Source, logger *slog.Logger) Service {
	return &service{source: source, logger: logger.With("component", "blog.service")}
}

func (s *service) List(ctx context.Context) ([]PostMeta, error) {
	names, err := s.source.List(ctx)
	if err != nil {
		return nil, apperrors.Wrap("blog_error", "failed to list posts", err)
	}

	bySlug := make(map[string]string, len(names))
	for _, name := range names {
		slug, rank, ok := slugFromName(name)
		if !ok {
			continue
		}
		if existing, seen := bySlug[slug]; seen {
			_, existingRank, _ := slugFromName(existing)
			if existingRank <= rank {
				continue
			}
		}
		bySlug[slug] = name
	}

	slugs := make([]string, 0, len(bySlug))
	for slug := range bySlug {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)

	posts := make([]PostMeta, 0, len(slugs))
	for _, slug := range slugs {
		raw, found, err := s.source.Read(ctx, bySlug[slug])
		if err != nil {
			return nil, apperrors.Wrap("blog_error", "failed to read post", err)
		}
		if !found {
			continue
		}
		data, _ := s.frontmatter(slug, raw)
		posts = append(posts, toMeta(slug, data))
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Date > posts[j].Date
	})
	return posts, nil
}

func (s *service) Get(ctx context.Context, slug string) (Post, error) {
	slug = strings.TrimSpace(slug)
	if !validSlug(slug) {
		return Post{}, apperrors.Wrap("not_found", "post not found", nil)
	}
	for _, ext := range Extensions {
		raw, found, err := s.source.Read(ctx, slug+ext)
		if err != nil {
			return Post{}, apperrors.Wrap("blog_error", "failed to read post", err)
		}
		if !found {
			continue
		}
		data, body := s.frontmatter(slug, raw)
		return Post{PostMeta: toMeta(slug, data), Content: body}, nil
	}
	return Post{}, apperrors.Wrap("not_found", "post not found", nil)
}

func (s *service) frontmatter(slug string, raw []byte) (map[string]any, string) {
	data, body, err := splitFrontmatter(raw)
	if err != nil {
		s.logger.Warn("invalid frontmatter, using defaults", "slug", slug, "error", err)
	}
	return data, body
}

func toMeta(slug string, data map[string]any) PostMeta {
	title := stringValue(data["title"])
	if title == "" {
		title = slug
	}
	return PostMeta{
		Slug:        slug,
		Title:       title,
		Description: stringValue(data["description"]),
		Date:        stringValue(data["date"]),
	}
}

// slugFromName returns the slug for a post file and the preference rank of its extension.
func slugFromName(name string) (string, int, bool) {
	if strings.ContainsAny(name, `/\`) {
		return "", 0, false
	}
	ext := path.Ext(name)
	for rank, candidate := range Extensions {
		if ext == candidate {
			slug := strings.TrimSuffix(name, ext)
			return slug, rank, validSlug(slug)
		}
	}
	return "", 0, false
}

func validSlug(slug string) bool {
	return slugPattern.MatchString(slug) && !strings.Contains(slug, "..")
}
