package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/json-mapper/internal/confidence"
	"github.com/ziadkadry99/json-mapper/internal/fields"
	"github.com/ziadkadry99/json-mapper/internal/transform"
)

// handleListFields flattens a document and reports each leaf's type.
func (s *Server) handleListFields(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := request.RequireString("document")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: document"), nil
	}
	doc, err := fields.Decode([]byte(raw))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid JSON document: %v", err)), nil
	}

	paths := fields.Flatten(doc, "")
	if len(paths) == 0 {
		return mcp.NewToolResultText("The document has no fields."), nil
	}

	var b strings.Builder
	b.WriteString("| Field | Type | Confidence |\n|---|---|---|\n")
	for _, p := range paths {
		typ := fields.InferType(doc, p)
		fmt.Fprintf(&b, "| %s | %s | %s |\n", p, typ, confidence.Classify(typ))
	}
	return mcp.NewToolResultText(b.String()), nil
}

// handleInferType reports the type tag and confidence of one path.
func (s *Server) handleInferType(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := request.RequireString("document")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: document"), nil
	}
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: path"), nil
	}
	doc, err := fields.Decode([]byte(raw))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid JSON document: %v", err)), nil
	}

	typ := fields.InferType(doc, path)
	return mcp.NewToolResultText(fmt.Sprintf("%s: %s (%s)", path, typ, confidence.Classify(typ))), nil
}

// handleGetMapping returns the live document or one mapping as JSON.
func (s *Server) handleGetMapping(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	doc := s.store.Document()

	if field := request.GetString("j1_field", ""); field != "" {
		rec, ok := doc.Find(field)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("no mapping for %q", field)), nil
		}
		data, err := fields.Encode(rec)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	}

	data, err := doc.Encode()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// handleTransformRecord applies the live document to one record.
func (s *Server) handleTransformRecord(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := request.RequireString("record")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: record"), nil
	}
	record, err := fields.DecodeObject([]byte(raw))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("record must be a JSON object: %v", err)), nil
	}

	out := transform.New(s.store.Document()).Record(record)
	data, err := fields.Encode(out)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
