// Package models defines the domain types for the notes site.
package models

import (
	"fmt"
	"strings"
)

// Category partitions the content store.
type Category string

const (
	CategoryLog     Category = "log"
	CategorySnippet Category = "snippet"
)

// Categories returns every category in display order.
func Categories() []Category {
	return []Category{CategoryLog, CategorySnippet}
}

// ParseCategory accepts the singular or plural name of a category.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "log", "logs":
		return CategoryLog, nil
	case "snippet", "snippets":
		return CategorySnippet, nil
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Dir is the content directory name, which doubles as the URL segment.
func (c Category) Dir() string {
	return string(c) + "s"
}

// Label is the capitalised singular name ("Log", "Snippet").
func (c Category) Label() string {
	switch c {
	case CategoryLog:
		return "Log"
	case CategorySnippet:
		return "Snippet"
	}
	return "Document"
}

// Document is one Markdown file read from the content store.
type Document struct {
	Slug     string   `json:"slug"`
	Category Category `json:"category"`
	Content  []byte   `json:"-"`
}

// ListingEntry is a single row of an index page.
type ListingEntry struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
	Date  string `json:"date"`
}
