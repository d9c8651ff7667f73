// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes the notes to LLM clients via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/AmmarNaser/ui-engineering-notes/internal/apperr"
	"github.com/AmmarNaser/ui-engineering-notes/internal/models"
	"github.com/AmmarNaser/ui-engineering-notes/internal/noteservice"
)

// ContentFormatURI is the resource URI of ContentFormat.
const ContentFormatURI = "notes://content-format"

// Server wraps the MCP server with the notes tools.
type Server struct {
	mcp *server.MCPServer
	svc *noteservice.Service
}

// New creates a new MCP server with all tools registered.
func New(svc *noteservice.Service, version string) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"UI Engineering Notes",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_documents",
		mcp.WithDescription("List the documents of a category, newest first, with their titles and display dates."),
		mcp.WithString("category", mcp.Required(),
			mcp.Description("Category to list"),
			mcp.Enum("log", "snippet"),
		),
	), s.listDocuments)

	s.mcp.AddTool(mcp.NewTool("read_document",
		mcp.WithDescription("Read the raw Markdown of one document."),
		mcp.WithString("category", mcp.Required(),
			mcp.Description("Category of the document"),
			mcp.Enum("log", "snippet"),
		),
		mcp.WithString("slug", mcp.Required(), mcp.Description("Document slug, e.g. 2024-03-05 or use-fetch")),
	), s.readDocument)

	s.mcp.AddTool(mcp.NewTool("get_content_format",
		mcp.WithDescription("Describes how documents are stored, named and titled."),
	), s.getContentFormat)

	s.mcp.AddResource(
		mcp.NewResource(ContentFormatURI, "Content Format",
			mcp.WithResourceDescription("Layout of the content store and title rules."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readContentFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) listDocuments(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	category, errResult := requireCategory(req)
	if errResult != nil {
		return errResult, nil
	}
	page := s.svc.Listing(ctx, category)
	out, err := json.MarshalIndent(page.Entries, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	category, errResult := requireCategory(req)
	if errResult != nil {
		return errResult, nil
	}
	slug, err := req.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	doc, err := s.svc.Raw(ctx, category, slug)
	if errors.Is(err, apperr.ErrNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s/%s", category.Dir(), slug)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(doc.Content)), nil
}

func (s *Server) getContentFormat(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(ContentFormat), nil
}

func (s *Server) readContentFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      ContentFormatURI,
			MIMEType: "text/markdown",
			Text:     ContentFormat,
		},
	}, nil
}

func requireCategory(req mcp.CallToolRequest) (models.Category, *mcp.CallToolResult) {
	raw, err := req.RequireString("category")
	if err != nil {
		return "", mcp.NewToolResultError(err.Error())
	}
	category, err := models.ParseCategory(raw)
	if err != nil {
		return "", mcp.NewToolResultError(err.Error())
	}
	return category, nil
}
