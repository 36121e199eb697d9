package docnorm

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var testMCPImpl = &mcp.Implementation{Name: "docnorm-test", Version: "0.1.0"}

func mcpSession(t *testing.T, p *Pipeline) *mcp.ClientSession {
	t.Helper()
	srv := mcp.NewServer(testMCPImpl, nil)
	p.RegisterMCP(srv)

	serverT, clientT := mcp.NewInMemoryTransports()
	ctx := context.Background()
	go func() { _ = srv.Run(ctx, serverT) }()

	client := mcp.NewClient(testMCPImpl, nil)
	session, err := client.Connect(ctx, clientT, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	t.Cleanup(func() { session.Close() })
	return session
}

func mcpCall(t *testing.T, session *mcp.ClientSession, name string, args any) *mcp.CallToolResult {
	t.Helper()
	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		t.Fatalf("CallTool(%s): %v", name, err)
	}
	return result
}

func mcpText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if err := result.GetError(); err != nil {
		t.Fatalf("tool error: %v", err)
	}
	tc, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatal("expected TextContent")
	}
	return tc.Text
}

func TestMCP_Formats(t *testing.T) {
	session := mcpSession(t, New(quietConfig(Config{OCR: recognizer("x")})))

	var resp struct {
		Formats      []string `json:"formats"`
		OCRAvailable bool     `json:"ocr_available"`
	}
	text := mcpText(t, mcpCall(t, session, "docnorm_formats", map[string]any{}))
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Formats) != 4 || resp.Formats[0] != "PDF" || !resp.OCRAvailable {
		t.Errorf("resp = %+v", resp)
	}
}

func TestMCP_Extract(t *testing.T) {
	session := mcpSession(t, New(quietConfig(Config{})))
	path := writeFile(t, "notes.txt", "OVERVIEW\n\nThis is the first paragraph.\n")

	text := mcpText(t, mcpCall(t, session, "docnorm_extract", map[string]any{
		"path":           path,
		"include_tables": false,
	}))

	var resp struct {
		Format       string `json:"format"`
		TotalWords   int    `json:"total_words"`
		HeadingCount int    `json:"heading_count"`
		Headings     []struct {
			Text string `json:"text"`
			Type string `json:"type"`
		} `json:"headings"`
	}
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Format != "TXT" || resp.TotalWords != 6 || resp.HeadingCount != 1 {
		t.Errorf("resp = %+v", resp)
	}
	if len(resp.Headings) != 1 || resp.Headings[0].Type != "all_caps" {
		t.Errorf("headings = %+v", resp.Headings)
	}
}

func TestMCP_ExtractChunk(t *testing.T) {
	path, _ := usePDF(t, repeatPages(60, "word"))
	session := mcpSession(t, New(quietConfig(Config{})))

	text := mcpText(t, mcpCall(t, session, "docnorm_extract", map[string]any{
		"path":       path,
		"start_page": 31,
	}))

	var resp struct {
		ChunkInfo struct {
			StartPage int `json:"start_page"`
			EndPage   int `json:"end_page"`
		} `json:"chunk_info"`
	}
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.ChunkInfo.StartPage != 31 || resp.ChunkInfo.EndPage != 60 {
		t.Errorf("chunk_info = %+v", resp.ChunkInfo)
	}
}

func TestMCP_Info(t *testing.T) {
	path, _ := usePDF(t, repeatPages(75, "a b"))
	session := mcpSession(t, New(quietConfig(Config{})))

	var info Info
	text := mcpText(t, mcpCall(t, session, "docnorm_info", map[string]any{"path": path}))
	if err := json.Unmarshal([]byte(text), &info); err != nil {
		t.Fatal(err)
	}
	if info.PageCount != 75 || info.RecommendedChunks != 3 || len(info.ChunkRanges) != 3 {
		t.Errorf("info = %+v", info)
	}
}

func TestMCP_ToolError(t *testing.T) {
	session := mcpSession(t, New(quietConfig(Config{})))

	result := mcpCall(t, session, "docnorm_extract", map[string]any{"path": "/nonexistent/file.pdf"})
	if !result.IsError {
		t.Error("expected a tool error for a missing file")
	}
}
