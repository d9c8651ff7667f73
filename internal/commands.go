package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/AmmarNaser/ui-engineering-notes/internal/apperr"
	"github.com/AmmarNaser/ui-engineering-notes/internal/mcpserver"
	"github.com/AmmarNaser/ui-engineering-notes/internal/models"
	"github.com/AmmarNaser/ui-engineering-notes/internal/render"
)

// List writes one "date<TAB>slug<TAB>title" line per document of category,
// newest first.
func List(ctx context.Context, out io.Writer, category models.Category, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	svc, err := app.service(app.logger())
	if err != nil {
		return err
	}
	for _, e := range svc.Listing(ctx, category).Entries {
		if _, err := fmt.Fprintf(out, "%s\t%s\t%s\n", e.Date, e.Slug, e.Title); err != nil {
			return err
		}
	}
	return nil
}

// ShowOptions controls terminal rendering for Show.
type ShowOptions struct {
	Width int
	Style string
	Raw   bool
}

// Show writes one document to out, rendered for the terminal unless
// show.Raw is set.
func Show(ctx context.Context, out io.Writer, category models.Category, slug string, show ShowOptions, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	svc, err := app.service(app.logger())
	if err != nil {
		return err
	}
	doc, err := svc.Raw(ctx, category, slug)
	if errors.Is(err, apperr.ErrNotFound) {
		return fmt.Errorf("%s %q: %w", category, slug, apperr.ErrNotFound)
	}
	if err != nil {
		return err
	}
	if show.Raw {
		_, err = out.Write(doc.Content)
		return err
	}
	text, err := render.RenderTerminal(doc.Content, show.Width, show.Style)
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, text)
	return err
}

// ServeMCP runs the MCP server on stdin/stdout until the client disconnects.
func ServeMCP(_ context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	logger := app.logger()
	svc, err := app.service(logger)
	if err != nil {
		return err
	}
	logger.Info("MCP server starting", slog.String("version", app.version))
	return mcpserver.New(svc, app.version).ServeStdio()
}
