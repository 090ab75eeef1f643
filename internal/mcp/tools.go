package mcp

import "github.com/mark3labs/mcp-go/mcp"

// listFieldsTool defines the list_fields MCP tool.
var listFieldsTool = mcp.NewTool("list_fields",
	mcp.WithDescription("List every leaf field path of a JSON document with its inferred type and confidence tag."),
	mcp.WithString("document",
		mcp.Required(),
		mcp.Description("JSON document to inspect"),
	),
)

// inferTypeTool defines the infer_type MCP tool.
var inferTypeTool = mcp.NewTool("infer_type",
	mcp.WithDescription("Infer the type tag of the value at a dot-separated field path."),
	mcp.WithString("document",
		mcp.Required(),
		mcp.Description("JSON document holding the field"),
	),
	mcp.WithString("path",
		mcp.Required(),
		mcp.Description("Dot-separated field path, for example payer.name"),
	),
)

// getMappingTool defines the get_mapping MCP tool.
var getMappingTool = mcp.NewTool("get_mapping",
	mcp.WithDescription("Get the live mapping document, or the mapping for one source field."),
	mcp.WithString("j1_field",
		mcp.Description("Source field to look up. Omit to return the whole document."),
	),
)

// transformRecordTool defines the transform_record MCP tool.
var transformRecordTool = mcp.NewTool("transform_record",
	mcp.WithDescription("Transform one source record into the target shape using the live mapping document."),
	mcp.WithString("record",
		mcp.Required(),
		mcp.Description("Source record as a JSON object"),
	),
)
