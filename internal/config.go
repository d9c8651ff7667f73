package internal

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alecthomas/chroma/v2/styles"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/AmmarNaser/ui-engineering-notes/internal/listing"
	"github.com/AmmarNaser/ui-engineering-notes/internal/render"
	"github.com/AmmarNaser/ui-engineering-notes/internal/storage"
)

// Content sources.
const (
	SourceFS     = "fs"
	SourceGitHub = "github"
)

// Config represents the application configuration.
type Config struct {
	App     ApplicationConfig `yaml:"app"`
	Content ContentConfig     `yaml:"content"`
	Listing ListingConfig     `yaml:"listing"`
	Render  RenderConfig      `yaml:"render"`
	Watch   WatchConfig       `yaml:"watch"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Content.Validate(); err != nil {
		return err
	}
	if err := c.Listing.Validate(); err != nil {
		return err
	}
	if err := c.Render.Validate(); err != nil {
		return err
	}
	if err := c.Watch.Validate(); err != nil {
		return err
	}
	if c.Watch.Enabled && c.Content.Source != SourceFS {
		return fmt.Errorf("watch: only supported with content source %q", SourceFS)
	}
	return nil
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// ContentConfig selects and configures the content store backend.
type ContentConfig struct {
	Source string              `yaml:"source"`
	FS     FSContentConfig     `yaml:"fs"`
	GitHub GitHubContentConfig `yaml:"github"`
}

// Validate validates the content configuration. Only the selected backend
// is checked.
func (c *ContentConfig) Validate() error {
	if c.Source == "" {
		c.Source = SourceFS
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Source, validation.Required, validation.In(SourceFS, SourceGitHub)),
	); err != nil {
		return fmt.Errorf("content: %w", err)
	}
	if c.Source == SourceGitHub {
		return c.GitHub.Validate()
	}
	return c.FS.Validate()
}

// FSContentConfig holds the local content root. It contains logs/ and
// snippets/.
type FSContentConfig struct {
	Root string `yaml:"root"`
}

// Validate validates the local content configuration.
func (c *FSContentConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Root, validation.Required),
	); err != nil {
		return fmt.Errorf("content.fs: %w", err)
	}
	return nil
}

// GitHubContentConfig points at a repository holding the content tree.
type GitHubContentConfig struct {
	Owner    string        `yaml:"owner"`
	Repo     string        `yaml:"repo"`
	Branch   string        `yaml:"branch"`
	BasePath string        `yaml:"base_path"`
	Token    string        `yaml:"token"`
	APIURL   string        `yaml:"api_url"`
	RawURL   string        `yaml:"raw_url"`
	Timeout  time.Duration `yaml:"timeout"`
}

// Validate validates the GitHub configuration.
func (c *GitHubContentConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Owner, validation.Required),
		validation.Field(&c.Repo, validation.Required),
		validation.Field(&c.Timeout, validation.Min(time.Duration(0))),
	); err != nil {
		return fmt.Errorf("content.github: %w", err)
	}
	return nil
}

// Options converts the configuration into storage backend options.
func (c *GitHubContentConfig) Options() storage.GitHubOptions {
	return storage.GitHubOptions{
		Owner:    c.Owner,
		Repo:     c.Repo,
		Branch:   c.Branch,
		BasePath: c.BasePath,
		Token:    c.Token,
		APIURL:   c.APIURL,
		RawURL:   c.RawURL,
		Timeout:  c.Timeout,
	}
}

// ListingConfig tunes the listing assembler.
type ListingConfig struct {
	// Concurrency bounds the number of documents read in parallel per listing.
	Concurrency int `yaml:"concurrency"`
}

// Validate validates the listing configuration.
func (c *ListingConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Concurrency, validation.Required, validation.Min(1), validation.Max(64)),
	); err != nil {
		return fmt.Errorf("listing: %w", err)
	}
	return nil
}

// RenderConfig configures HTML rendering.
type RenderConfig struct {
	HighlightStyle string `yaml:"highlight_style"`
}

// Validate validates the render configuration.
func (c *RenderConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.HighlightStyle, validation.By(knownStyle)),
	); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

func knownStyle(value interface{}) error {
	name, _ := value.(string)
	if name == "" {
		return nil
	}
	if styles.Get(name) == styles.Fallback {
		return errors.New("unknown chroma style")
	}
	return nil
}

// WatchConfig controls live reload in development.
type WatchConfig struct {
	Enabled bool `yaml:"enabled"`
	// Throttle is the minimum interval between listing.updated events per
	// category.
	Throttle time.Duration `yaml:"throttle"`
}

// Validate validates the watch configuration.
func (c *WatchConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Throttle, validation.Min(time.Duration(0))),
	); err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	return nil
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Content: ContentConfig{
			Source: SourceFS,
			FS: FSContentConfig{
				Root: "./content",
			},
			GitHub: GitHubContentConfig{
				Branch:  "main",
				Timeout: 10 * time.Second,
			},
		},
		Listing: ListingConfig{
			Concurrency: listing.DefaultConcurrency,
		},
		Render: RenderConfig{
			HighlightStyle: render.DefaultStyle,
		},
		Watch: WatchConfig{
			Throttle: 2 * time.Second,
		},
	}
}
