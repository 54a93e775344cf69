// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes the Folio pagination engine for LLM integration via stdio
// transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/folio/internal/cardservice"
	"github.com/starford/folio/internal/models"
)

// Server wraps the MCP server with Folio tools.
type Server struct {
	mcp *server.MCPServer
	svc *cardservice.Service
}

// New creates a new MCP server with all Folio tools registered.
func New(svc *cardservice.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Folio",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("paginate_document",
		mcp.WithDescription("Compute optimal page breaks for a marked-up document and "+
			"return it with explicit --- break markers inserted. Content MUST follow the "+
			"Folio markup format; read it first via the get_markup_contract tool or the "+
			"folio://markup-format resource."),
		mcp.WithString("content", mcp.Required(), mcp.Description("The document to paginate")),
		mcp.WithNumber("font_size", mcp.Description("Base font size in px (optional; defaults apply)")),
		mcp.WithNumber("line_height", mcp.Description("Line-height multiplier (optional)")),
	), s.paginateDocument)

	s.mcp.AddTool(mcp.NewTool("split_cards",
		mcp.WithDescription("Split a document that already contains --- break markers into "+
			"card records with ids, trimmed text, and offsets into the original buffer."),
		mcp.WithString("content", mcp.Required(), mcp.Description("The marked document to split")),
	), s.splitCards)

	s.mcp.AddTool(mcp.NewTool("estimate_height",
		mcp.WithDescription("Estimate the rendered pixel height of a marked-up document "+
			"at the current layout defaults."),
		mcp.WithString("content", mcp.Required(), mcp.Description("The document to measure")),
	), s.estimateHeight)

	s.mcp.AddTool(mcp.NewTool("register_image",
		mcp.WithDescription("Register intrinsic pixel dimensions for an image id so "+
			"[IMG:id] tokens paginate with the real aspect ratio instead of the 16:9 fallback."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Image id (letters, digits, _ and -)")),
		mcp.WithNumber("width", mcp.Required(), mcp.Description("Intrinsic width in pixels")),
		mcp.WithNumber("height", mcp.Required(), mcp.Description("Intrinsic height in pixels")),
	), s.registerImage)

	s.mcp.AddTool(mcp.NewTool("get_markup_contract",
		mcp.WithDescription("Returns the canonical Folio markup format. Call this before "+
			"composing documents to paginate."),
	), s.getMarkupContract)

	// Resource: markup format contract.
	s.mcp.AddResource(
		mcp.NewResource("folio://markup-format", "Markup Format Contract",
			mcp.WithResourceDescription("Canonical markup format paginated documents must follow."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readMarkupFormatResource,
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

// typographyFromArgs builds an override from optional font_size/line_height
// arguments, keeping the remaining defaults.
func (s *Server) typographyFromArgs(req mcp.CallToolRequest) *models.Typography {
	fontSize := req.GetFloat("font_size", 0)
	lineHeight := req.GetFloat("line_height", 0)
	if fontSize <= 0 && lineHeight <= 0 {
		return nil
	}
	t := s.svc.Defaults().Typography
	if fontSize > 0 {
		t.FontSize = fontSize
	}
	if lineHeight > 0 {
		t.LineHeight = lineHeight
	}
	return &t
}

func (s *Server) paginateDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res := s.svc.Paginate(ctx, content, s.typographyFromArgs(req), nil)
	out, _ := json.MarshalIndent(res, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) splitCards(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res := s.svc.SplitCards(ctx, content)
	out, _ := json.MarshalIndent(res, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) estimateHeight(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	height := s.svc.Estimate(ctx, content, nil, nil)
	return mcp.NewToolResultText(fmt.Sprintf("%.1f", height)), nil
}

func (s *Server) registerImage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	width, err := req.RequireFloat("width")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	height, err := req.RequireFloat("height")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	meta := models.ImageMeta{Width: width, Height: height}
	if err := s.svc.RegisterImage(ctx, id, meta); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("registered: [IMG:%s] %gx%g", id, width, height)), nil
}

func (s *Server) getMarkupContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(MarkupFormatContract), nil
}

func (s *Server) readMarkupFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "folio://markup-format",
			MIMEType: "text/markdown",
			Text:     MarkupFormatContract,
		},
	}, nil
}
