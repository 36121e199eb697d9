package docnorm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/tsawler/docnorm/chunk"
)

// RegisterMCP registers the docnorm tools on an MCP server.
func (p *Pipeline) RegisterMCP(srv *mcp.Server) {
	p.registerExtractTool(srv)
	p.registerInfoTool(srv)
	p.registerFormatsTool(srv)
}

func inputSchema(properties map[string]any, required []string) map[string]any {
	s := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

// toolEndpoint handles decoded tool arguments.
type toolEndpoint func(ctx context.Context, args json.RawMessage) (any, error)

// addTool wraps an endpoint: argument and endpoint errors become tool
// errors, results are returned as JSON text.
func addTool(srv *mcp.Server, tool *mcp.Tool, endpoint toolEndpoint) {
	srv.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		resp, err := endpoint(ctx, req.Params.Arguments)
		if err != nil {
			var res mcp.CallToolResult
			res.SetError(errors.New(err.Error()))
			return &res, nil
		}

		data, err := json.Marshal(resp)
		if err != nil {
			var res mcp.CallToolResult
			res.SetError(fmt.Errorf("marshal: %w", err))
			return &res, nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
		}, nil
	})
}

func decodeArgs(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return errors.New("invalid arguments: missing")
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// --- extract ---

type extractReq struct {
	Path          string `json:"path"`
	IncludeImages *bool  `json:"include_images"`
	IncludeTables *bool  `json:"include_tables"`
	UseOCR        *bool  `json:"use_ocr"`
	StartPage     int    `json:"start_page"`
	EndPage       int    `json:"end_page"`
}

// extractor applies the request's options over the defaults.
func (r extractReq) extractor(p *Pipeline) *Extractor {
	ext := p.Open(r.Path)
	if r.IncludeImages != nil {
		ext = ext.IncludeImages(*r.IncludeImages)
	}
	if r.IncludeTables != nil {
		ext = ext.IncludeTables(*r.IncludeTables)
	}
	if r.UseOCR != nil {
		ext = ext.UseOCR(*r.UseOCR)
	}
	// A start page alone selects one chunk.
	if r.StartPage > 0 || r.EndPage > 0 {
		end := r.EndPage
		if end <= 0 {
			end = max(r.StartPage, 1) + chunk.Size - 1
		}
		ext = ext.PageRange(max(r.StartPage, 1), end)
	}
	return ext
}

func (p *Pipeline) registerExtractTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "docnorm_extract",
		Description: "Extract text, headings, paragraphs, tables and image metadata from a PDF, DOCX, XLSX or TXT file.",
		InputSchema: inputSchema(map[string]any{
			"path":           map[string]any{"type": "string", "description": "File path to extract"},
			"include_images": map[string]any{"type": "boolean", "description": "Attach image metadata (default true)"},
			"include_tables": map[string]any{"type": "boolean", "description": "Run table detection (default true)"},
			"use_ocr":        map[string]any{"type": "boolean", "description": "OCR PDF pages without a text layer (default true)"},
			"start_page":     map[string]any{"type": "integer", "description": "First page of a PDF chunk (1-indexed)"},
			"end_page":       map[string]any{"type": "integer", "description": "Last page of a PDF chunk (inclusive)"},
		}, []string{"path"}),
	}

	addTool(srv, tool, func(ctx context.Context, args json.RawMessage) (any, error) {
		var r extractReq
		if err := decodeArgs(args, &r); err != nil {
			return nil, err
		}
		doc, _, err := r.extractor(p).Extract(ctx)
		if err != nil {
			return nil, err
		}
		return doc, nil
	})
}

// --- info ---

type infoReq struct {
	Path string `json:"path"`
}

func (p *Pipeline) registerInfoTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "docnorm_info",
		Description: "Report page count, word estimate and recommended chunk ranges for a PDF without extracting it.",
		InputSchema: inputSchema(map[string]any{
			"path": map[string]any{"type": "string", "description": "PDF file path"},
		}, []string{"path"}),
	}

	addTool(srv, tool, func(ctx context.Context, args json.RawMessage) (any, error) {
		var r infoReq
		if err := decodeArgs(args, &r); err != nil {
			return nil, err
		}
		return p.Open(r.Path).Info(ctx)
	})
}

// --- formats ---

func (p *Pipeline) registerFormatsTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "docnorm_formats",
		Description: "List the supported document formats and whether OCR is available.",
		InputSchema: inputSchema(map[string]any{}, nil),
	}

	addTool(srv, tool, func(_ context.Context, _ json.RawMessage) (any, error) {
		return map[string]any{
			"formats":       SupportedFormats(),
			"ocr_available": p.OCRAvailable(),
		}, nil
	})
}
