// Package parser derives display metadata (titles, dates) from free-form
// Markdown documents.
package parser

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/AmmarNaser/ui-engineering-notes/internal/models"
)

// maxSentenceRunes bounds a title taken from body text.
const maxSentenceRunes = 60

var (
	dateHeadingRe     = regexp.MustCompile(`^#\s*\d{4}-\d{2}-\d{2}\s*$`)
	generatedAtRe     = regexp.MustCompile(`(?i)^_*generated at\b`)
	h3Re              = regexp.MustCompile(`^###\s+(.+)$`)
	h2Re              = regexp.MustCompile(`^##\s+(.+)$`)
	h1Re              = regexp.MustCompile(`^#\s+(.+)$`)
	reservedLabelRe   = regexp.MustCompile(`(?i)^(concept|when to use it|example|summary|explanation):?$`)
	engineeringNoteRe = regexp.MustCompile(`(?i)^(?:.*\s)?engineering note:\s*(.+)$`)
)

// titleMatcher inspects a single line and reports a title when it applies.
type titleMatcher struct {
	name  string
	match func(line string) (string, bool)
}

// titleMatchers run in priority order. Each one scans the whole document
// before the next is tried.
var titleMatchers = []titleMatcher{
	{name: "h3", match: matchH3},
	{name: "h2", match: matchH2},
	{name: "h1", match: matchH1},
	{name: "sentence", match: matchFirstSentence},
}

// ExtractTitle derives a display title for a document. It never fails; when
// nothing fits it returns FallbackTitle(category).
func ExtractTitle(text string, category models.Category) string {
	fm, body := SplitFrontmatter([]byte(text))
	if t := strings.TrimSpace(fm.Title); t != "" {
		return t
	}
	lines := candidateLines(string(body))
	for _, m := range titleMatchers {
		for _, line := range lines {
			if title, ok := m.match(line); ok {
				return title
			}
		}
	}
	return FallbackTitle(category)
}

// FallbackTitle is the title of a document nothing could be derived from.
func FallbackTitle(category models.Category) string {
	return "Untitled " + category.Label()
}

// candidateLines returns trimmed lines, minus date headings and
// "generated at" markers.
func candidateLines(body string) []string {
	raw := strings.Split(body, "\n")
	out := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if isDateHeading(line) || generatedAtRe.MatchString(line) {
			continue
		}
		out = append(out, line)
	}
	return out
}

func isDateHeading(line string) bool {
	return dateHeadingRe.MatchString(line)
}

func matchH3(line string) (string, bool) {
	return headingText(h3Re, line)
}

func matchH2(line string) (string, bool) {
	text, ok := headingText(h2Re, line)
	if !ok || reservedLabelRe.MatchString(text) {
		return "", false
	}
	return text, true
}

func matchH1(line string) (string, bool) {
	m := h1Re.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	if note := engineeringNoteRe.FindStringSubmatch(m[1]); note != nil {
		if topic := strings.TrimSpace(note[1]); topic != "" {
			return topic, true
		}
	}
	return headingText(h1Re, line)
}

func matchFirstSentence(line string) (string, bool) {
	if line == "" || strings.HasPrefix(line, "_") || strings.HasPrefix(line, "//") {
		return "", false
	}
	sentence := line
	if i := strings.IndexAny(sentence, ".!?"); i >= 0 {
		sentence = sentence[:i]
	}
	sentence = strings.TrimSpace(sentence)
	if sentence == "" {
		return "", false
	}
	if utf8.RuneCountInString(sentence) > maxSentenceRunes {
		sentence = string([]rune(sentence)[:maxSentenceRunes]) + "..."
	}
	return sentence, true
}

// headingText applies re and returns the captured text with code-span
// backticks removed.
func headingText(re *regexp.Regexp, line string) (string, bool) {
	m := re.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	text := strings.TrimSpace(strings.ReplaceAll(m[1], "`", ""))
	if text == "" {
		return "", false
	}
	return text, true
}
