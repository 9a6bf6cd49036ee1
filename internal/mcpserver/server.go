// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes the signal pipeline as tools over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/sigil/internal/ingest"
	"github.com/starford/sigil/internal/models"
)

const signalFormatURI = "sigil://signal-format"

// Server wraps the MCP server with the pipeline tools.
type Server struct {
	mcp *server.MCPServer
	svc *ingest.Service
}

// New creates a new MCP server with all tools registered.
func New(svc *ingest.Service, name, version string) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		name,
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("extract_signals",
		mcp.WithDescription("Clean and segment meeting notes, then extract decisions, action items, "+
			"blockers, risks, ideas and key signals. Returns the document as JSON."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Raw meeting notes")),
		mcp.WithString("source", mcp.Description("Optional label for where the text came from")),
	), s.extractSignals)

	s.mcp.AddTool(mcp.NewTool("classify_template",
		mcp.WithDescription("Identify which meeting template the notes follow."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Raw meeting notes")),
		mcp.WithBoolean("all_scores", mcp.Description("Return the score of every template instead of the best match")),
	), s.classifyTemplate)

	s.mcp.AddTool(mcp.NewTool("merge_signals",
		mcp.WithDescription("Merge an incoming signal bag into an existing one without duplicates. "+
			"Existing entries win on collision."),
		mcp.WithString("existing", mcp.Required(), mcp.Description("Existing signal bag as JSON")),
		mcp.WithString("incoming", mcp.Required(), mcp.Description("Incoming signal bag as JSON")),
	), s.mergeSignals)

	s.mcp.AddTool(mcp.NewTool("ingest_file",
		mcp.WithDescription("Read a note file under the configured root and extract its signals."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path to a .md, .markdown or .txt file")),
	), s.ingestFile)

	s.mcp.AddTool(mcp.NewTool("get_signal_format",
		mcp.WithDescription("Returns the synthesized signals block format the extractor recognises. "+
			"Call this before writing notes meant to be extracted."),
	), s.getSignalFormat)

	s.mcp.AddResource(
		mcp.NewResource(signalFormatURI, "Signal Format",
			mcp.WithResourceDescription("Synthesized signals block format recognised by the extractor."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readSignalFormatResource,
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

func (s *Server) extractSignals(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	doc := s.svc.IngestText(req.GetString("source", "mcp"), text)
	return jsonResult(doc)
}

func (s *Server) classifyTemplate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if req.GetBool("all_scores", false) {
		return jsonResult(s.svc.Catalog().Scores(text))
	}
	return jsonResult(s.svc.Catalog().Classify(text))
}

func (s *Server) mergeSignals(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	existing, err := bagArg(req, "existing")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	incoming, err := bagArg(req, "incoming")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(s.svc.Amend(existing, incoming))
}

func (s *Server) ingestFile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	doc, err := s.svc.IngestFile(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(doc)
}

func (s *Server) getSignalFormat(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(SignalFormatContract), nil
}

func (s *Server) readSignalFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      signalFormatURI,
			MIMEType: "text/markdown",
			Text:     SignalFormatContract,
		},
	}, nil
}

func bagArg(req mcp.CallToolRequest, name string) (models.SignalBag, error) {
	raw, err := req.RequireString(name)
	if err != nil {
		return models.SignalBag{}, err
	}
	var bag models.SignalBag
	if err := json.Unmarshal([]byte(raw), &bag); err != nil {
		return models.SignalBag{}, fmt.Errorf("%s: invalid signal bag: %w", name, err)
	}
	return bag, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}
