package parser

import (
	"bytes"
	"strings"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

var yamlFormat = frontmatter.NewFormat("---", "---", yaml.Unmarshal)

// Frontmatter holds the optional YAML header of a document.
type Frontmatter struct {
	Title string `yaml:"title"`
}

// SplitFrontmatter separates a leading YAML block from the Markdown body.
// A leading "---" pair only counts as a header when it decodes to a
// non-empty mapping; otherwise it is a pair of thematic breaks and the
// document is returned whole, as it is when the block does not parse.
func SplitFrontmatter(data []byte) (Frontmatter, []byte) {
	var fields map[string]any
	body, err := frontmatter.Parse(bytes.NewReader(data), &fields, yamlFormat)
	if err != nil || len(fields) == 0 {
		return Frontmatter{}, data
	}
	var fm Frontmatter
	if title, ok := fields["title"].(string); ok {
		fm.Title = strings.TrimSpace(title)
	}
	return fm, body
}
