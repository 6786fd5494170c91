package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/yanqian/vat-directory/internal/domain/overview"
)

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Metadata MetadataCmd `cmd:"" help:"Extract link preview metadata for a URL"`
	Overview OverviewCmd `cmd:"" help:"Generate a markdown overview of a site from search results"`
	Posts    PostsCmd    `cmd:"" help:"Browse the blog catalogue"`
	Token    TokenCmd    `cmd:"" help:"Manage bearer tokens for the generate endpoint"`
}

// Dependencies are bound into every command's Run method.
type Dependencies struct {
	Ctx      context.Context
	Stdin    io.Reader
	Stdout   io.Writer
	Services *Services
}

type MetadataCmd struct {
	URL string `arg:"" help:"Page to inspect"`
}

func (c *MetadataCmd) Run(deps *Dependencies) error {
	result, err := deps.Services.Metadata.Extract(deps.Ctx, c.URL)
	if err != nil {
		return err
	}
	return writeJSON(deps.Stdout, result)
}

type OverviewCmd struct {
	URL     string `arg:"" help:"Site the search results describe"`
	Results string `short:"r" default:"-" help:"File holding the search results, - reads stdin"`
}

func (c *OverviewCmd) Run(deps *Dependencies) error {
	raw, err := c.readResults(deps.Stdin)
	if err != nil {
		return err
	}
	resp, err := deps.Services.Overview.Generate(deps.Ctx, overview.Request{
		URL:           c.URL,
		SearchResults: searchResultsPayload(raw),
	})
	if err != nil {
		return err
	}
	return writeJSON(deps.Stdout, resp)
}

func (c *OverviewCmd) readResults(stdin io.Reader) ([]byte, error) {
	if c.Results == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read search results from stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(c.Results)
	if err != nil {
		return nil, fmt.Errorf("read search results: %w", err)
	}
	return data, nil
}

// searchResultsPayload passes JSON input through as structured results and
// sends anything else as a string, matching what the HTTP endpoint accepts.
func searchResultsPayload(raw []byte) json.RawMessage {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return nil
	}
	if json.Valid([]byte(trimmed)) {
		return json.RawMessage(trimmed)
	}
	quoted, _ := json.Marshal(trimmed)
	return quoted
}

type PostsCmd struct {
	List ListPostsCmd `cmd:"" help:"List posts, newest first"`
	Show ShowPostCmd  `cmd:"" help:"Print one post with its markdown body"`
}

type ListPostsCmd struct{}

func (c *ListPostsCmd) Run(deps *Dependencies) error {
	posts, err := deps.Services.Blog.List(deps.Ctx)
	if err != nil {
		return err
	}
	return writeJSON(deps.Stdout, posts)
}

type ShowPostCmd struct {
	Slug string `arg:"" help:"Post slug, the file name without extension"`
}

func (c *ShowPostCmd) Run(deps *Dependencies) error {
	post, err := deps.Services.Blog.Get(deps.Ctx, c.Slug)
	if err != nil {
		return err
	}
	return writeJSON(deps.Stdout, post)
}

type TokenCmd struct {
	Issue IssueTokenCmd `cmd:"" help:"Sign a bearer token for a caller"`
}

type IssueTokenCmd struct {
	Subject string        `required:"" help:"Caller the token is issued to"`
	TTL     time.Duration `name:"ttl" default:"24h" help:"How long the token stays valid"`
}

type issuedToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (c *IssueTokenCmd) Run(deps *Dependencies) error {
	token, err := deps.Services.Access.IssueToken(deps.Ctx, c.Subject, c.TTL)
	if err != nil {
		return err
	}
	claims, err := deps.Services.Access.ValidateToken(deps.Ctx, token)
	if err != nil {
		return err
	}
	return writeJSON(deps.Stdout, issuedToken{Token: token, ExpiresAt: claims.ExpiresAt})
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
