package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/json-mapper/internal/mapping"
)

func newTestServer() *Server {
	store := mapping.NewStore()
	store.Reset(&mapping.Document{
		Mappings: []mapping.Record{
			mapping.NewRecord("amount", "total", "float"),
			mapping.NewRecord("payer.name", "customer.name", "str"),
		},
	})
	return NewServer(store)
}

func call(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("result has no content")
	}
	switch c := result.Content[0].(type) {
	case mcp.TextContent:
		return c.Text
	case *mcp.TextContent:
		return c.Text
	}
	t.Fatalf("unexpected content type %T", result.Content[0])
	return ""
}

func TestToolDefinitions(t *testing.T) {
	tests := []struct {
		name     string
		tool     mcp.Tool
		wantName string
	}{
		{"list_fields", listFieldsTool, "list_fields"},
		{"infer_type", inferTypeTool, "infer_type"},
		{"get_mapping", getMappingTool, "get_mapping"},
		{"transform_record", transformRecordTool, "transform_record"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.tool.Name != tt.wantName {
				t.Errorf("tool name = %q, want %q", tt.tool.Name, tt.wantName)
			}
			if tt.tool.Description == "" {
				t.Error("tool description should not be empty")
			}
		})
	}
}

func TestNewServer(t *testing.T) {
	srv := newTestServer()
	if srv.mcp == nil {
		t.Fatal("MCP server not initialized")
	}
}

func TestHandleListFields(t *testing.T) {
	srv := newTestServer()
	ctx := context.Background()

	t.Run("nested document", func(t *testing.T) {
		result, err := srv.handleListFields(ctx, call(map[string]any{
			"document": `{"amount": 1.5, "payer": {"name": "Ada", "tags": [1, 2]}}`,
		}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		text := resultText(t, result)
		for _, want := range []string{"| amount | float | Green |", "| payer.name | str | Green |", "| payer.tags | list | Red |"} {
			if !strings.Contains(text, want) {
				t.Errorf("output missing %q:\n%s", want, text)
			}
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		result, err := srv.handleListFields(ctx, call(map[string]any{"document": `{"amount":`}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Error("expected error for invalid JSON")
		}
	})

	t.Run("missing document", func(t *testing.T) {
		result, _ := srv.handleListFields(ctx, call(map[string]any{}))
		if !result.IsError {
			t.Error("expected error for missing document")
		}
	})
}

func TestHandleInferType(t *testing.T) {
	srv := newTestServer()
	result, err := srv.handleInferType(context.Background(), call(map[string]any{
		"document": `{"items": [{"price": 3}]}`,
		"path":     "items.price",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := resultText(t, result); got != "items.price: number (Green)" {
		t.Errorf("got %q", got)
	}
}

func TestHandleGetMapping(t *testing.T) {
	srv := newTestServer()
	ctx := context.Background()

	result, err := srv.handleGetMapping(ctx, call(map[string]any{"j1_field": "amount"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text := resultText(t, result); !strings.Contains(text, `"j2_field": "total"`) {
		t.Errorf("unexpected mapping %s", text)
	}

	result, _ = srv.handleGetMapping(ctx, call(map[string]any{"j1_field": "nope"}))
	if !result.IsError {
		t.Error("expected error for unmapped field")
	}

	result, _ = srv.handleGetMapping(ctx, call(map[string]any{}))
	if text := resultText(t, result); !strings.Contains(text, `"mismatches": []`) {
		t.Errorf("whole document should be returned, got %s", text)
	}
}

func TestHandleTransformRecord(t *testing.T) {
	srv := newTestServer()
	result, err := srv.handleTransformRecord(context.Background(), call(map[string]any{
		"record": `{"amount": 10.0, "payer": {"name": "Ada"}, "memo": "x"}`,
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "{\n  \"total\": 10.0,\n  \"customer\": {\n    \"name\": \"Ada\"\n  }\n}"
	if got := resultText(t, result); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}

	result, _ = srv.handleTransformRecord(context.Background(), call(map[string]any{"record": `[1]`}))
	if !result.IsError {
		t.Error("expected error for non-object record")
	}
}
