package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/AmmarNaser/ui-engineering-notes/internal/apperr"
	"github.com/AmmarNaser/ui-engineering-notes/internal/models"
)

const (
	defaultGitHubAPIURL = "https://api.github.com"
	defaultGitHubRawURL = "https://raw.githubusercontent.com"
	maxDocumentBytes    = 10 << 20 // 10 MB
)

// GitHubOptions locates the content directory inside a GitHub repository.
type GitHubOptions struct {
	Owner    string
	Repo     string
	Branch   string
	BasePath string // directory holding logs/ and snippets/, relative to the repo root
	Token    string
	APIURL   string
	RawURL   string
	Timeout  time.Duration
}

// GitHub implements Provider on top of the GitHub contents API for listings
// and raw.githubusercontent.com for document bodies.
type GitHub struct {
	opts   GitHubOptions
	client *http.Client
}

// githubEntry is one element of a contents API directory listing.
type githubEntry struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Type string `json:"type"`
}

// NewGitHub creates a GitHub provider. A nil client gets a default one
// honouring opts.Timeout.
func NewGitHub(opts GitHubOptions, client *http.Client) (*GitHub, error) {
	if opts.Owner == "" || opts.Repo == "" {
		return nil, fmt.Errorf("storage: github owner and repo are required")
	}
	if opts.Branch == "" {
		opts.Branch = "main"
	}
	if opts.APIURL == "" {
		opts.APIURL = defaultGitHubAPIURL
	}
	if opts.RawURL == "" {
		opts.RawURL = defaultGitHubRawURL
	}
	opts.APIURL = strings.TrimRight(opts.APIURL, "/")
	opts.RawURL = strings.TrimRight(opts.RawURL, "/")
	opts.BasePath = strings.Trim(opts.BasePath, "/")
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	return &GitHub{opts: opts, client: client}, nil
}

func (g *GitHub) dirPath(category models.Category) string {
	return path.Join(g.opts.BasePath, category.Dir())
}

// List fetches the category directory listing and keeps .md files.
func (g *GitHub) List(ctx context.Context, category models.Category) ([]string, error) {
	dir := g.dirPath(category)
	endpoint := fmt.Sprintf("%s/repos/%s/%s/contents/%s?ref=%s",
		g.opts.APIURL,
		url.PathEscape(g.opts.Owner),
		url.PathEscape(g.opts.Repo),
		escapePath(dir),
		url.QueryEscape(g.opts.Branch))

	body, err := g.get(ctx, endpoint, "application/vnd.github+json")
	if err != nil {
		return nil, fmt.Errorf("storage: list %s: %w", dir, err)
	}
	defer body.Close()

	var entries []githubEntry
	if err := json.NewDecoder(body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("storage: decode listing %s: %w", dir, err)
	}
	slugs := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type != "file" {
			continue
		}
		if slug, ok := slugFromName(e.Name); ok {
			slugs = append(slugs, slug)
		}
	}
	return slugs, nil
}

// Read fetches the raw text of one document.
func (g *GitHub) Read(ctx context.Context, category models.Category, slug string) ([]byte, error) {
	if err := ValidateSlug(slug); err != nil {
		return nil, err
	}
	p := path.Join(g.dirPath(category), slug+Extension)
	endpoint := fmt.Sprintf("%s/%s/%s/%s/%s",
		g.opts.RawURL,
		url.PathEscape(g.opts.Owner),
		url.PathEscape(g.opts.Repo),
		url.PathEscape(g.opts.Branch),
		escapePath(p))

	body, err := g.get(ctx, endpoint, "")
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", p, err)
	}
	defer body.Close()

	data, err := io.ReadAll(io.LimitReader(body, maxDocumentBytes+1))
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", p, err)
	}
	if len(data) > maxDocumentBytes {
		return nil, fmt.Errorf("storage: read %s: %w: document exceeds %d bytes",
			p, apperr.ErrStoreUnavailable, maxDocumentBytes)
	}
	return data, nil
}

// get issues a GET and returns the body of a 2xx response. The caller closes it.
func (g *GitHub) get(ctx context.Context, endpoint, accept string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	if g.opts.Token != "" {
		req.Header.Set("Authorization", "Bearer "+g.opts.Token)
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrStoreUnavailable, err)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp.Body, nil
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	_ = resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, apperr.ErrNotFound
	}
	return nil, fmt.Errorf("%w: unexpected status %d", apperr.ErrStoreUnavailable, resp.StatusCode)
}

func escapePath(p string) string {
	parts := strings.Split(p, "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}
