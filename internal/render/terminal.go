package render

import (
	"fmt"

	"github.com/charmbracelet/glamour"

	notesparser "github.com/AmmarNaser/ui-engineering-notes/internal/parser"
)

// RenderTerminal formats a Markdown document for a terminal of the given
// width. style is a glamour standard style name ("dark", "light", "notty");
// empty picks one from the terminal.
func RenderTerminal(markdown []byte, width int, style string) (string, error) {
	if width <= 0 {
		width = 80
	}
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	tr, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("render: terminal renderer: %w", err)
	}
	_, body := notesparser.SplitFrontmatter(markdown)
	out, err := tr.Render(string(body))
	if err != nil {
		return "", fmt.Errorf("render: terminal: %w", err)
	}
	return out, nil
}
