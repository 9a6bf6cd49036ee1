package mcpserver

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/sigil/internal/ingest"
	"github.com/starford/sigil/internal/models"
	"github.com/starford/sigil/internal/testutil"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	fs := testutil.MemFS(t, map[string]string{
		"notes/review.md": testutil.MeetingNote,
		"slides.pdf":      "%PDF",
	})
	svc := ingest.NewService(fs, ingest.Config{}, nil, testutil.Logger())
	return New(svc, "Sigil", "test")
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	var result *mcp.CallToolResult
	var err error

	switch name {
	case "extract_signals":
		result, err = srv.extractSignals(ctx, req)
	case "classify_template":
		result, err = srv.classifyTemplate(ctx, req)
	case "merge_signals":
		result, err = srv.mergeSignals(ctx, req)
	case "ingest_file":
		result, err = srv.ingestFile(ctx, req)
	case "get_signal_format":
		result, err = srv.getSignalFormat(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func decode(t *testing.T, r *mcp.CallToolResult, v any) {
	t.Helper()
	if r.IsError {
		t.Fatalf("tool error: %s", resultText(r))
	}
	if err := json.Unmarshal([]byte(resultText(r)), v); err != nil {
		t.Fatalf("decode result: %v", err)
	}
}

func TestExtractSignals(t *testing.T) {
	srv := testServer(t)
	r := callTool(t, srv, "extract_signals", map[string]interface{}{"text": testutil.MeetingNote})

	var doc models.Document
	decode(t, r, &doc)
	if !doc.Signals.Decisions.Contains("Ship v2 on Friday") {
		t.Errorf("decisions = %v", doc.Signals.Decisions.Texts())
	}
	if !doc.Signals.Blockers.Contains("Staging cluster quota") {
		t.Errorf("blockers = %v", doc.Signals.Blockers.Texts())
	}
	if doc.Source != "mcp" {
		t.Errorf("source = %q, want mcp", doc.Source)
	}
}

func TestExtractSignalsMissingText(t *testing.T) {
	srv := testServer(t)
	r := callTool(t, srv, "extract_signals", map[string]interface{}{})
	if !r.IsError {
		t.Error("expected error for missing text")
	}
}

func TestClassifyTemplate(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "classify_template", map[string]interface{}{
		"text": "Incident review: root cause was a bad deploy. Timeline attached. Mitigation: rollback.",
	})
	var m models.TemplateMatch
	decode(t, r, &m)
	if m.TemplateName != "Incident Postmortem" || m.Score != 4 {
		t.Errorf("match = %+v, want Incident Postmortem/4", m)
	}

	r = callTool(t, srv, "classify_template", map[string]interface{}{"text": "hello", "all_scores": true})
	var scores []models.TemplateMatch
	decode(t, r, &scores)
	if len(scores) != srv.svc.Catalog().Len() {
		t.Errorf("scores = %d, want %d", len(scores), srv.svc.Catalog().Len())
	}
}

func TestMergeSignals(t *testing.T) {
	srv := testServer(t)
	r := callTool(t, srv, "merge_signals", map[string]interface{}{
		"existing": `{"decisions":["A"]}`,
		"incoming": `{"decisions":["a","B"],"ideas":["New"]}`,
	})

	var res models.MergeResult
	decode(t, r, &res)
	if res.AddedCount != 2 {
		t.Errorf("added = %d, want 2", res.AddedCount)
	}
	if got := strings.Join(res.Merged.Decisions.Texts(), ","); got != "A,B" {
		t.Errorf("decisions = %s, want A,B", got)
	}
	if strings.Contains(resultText(r), "blockers") {
		t.Error("absent blockers should be omitted")
	}
}

func TestMergeSignalsBadJSON(t *testing.T) {
	srv := testServer(t)
	r := callTool(t, srv, "merge_signals", map[string]interface{}{
		"existing": `{"decisions":`,
		"incoming": `{}`,
	})
	if !r.IsError {
		t.Fatal("expected error for malformed bag")
	}
	if !strings.Contains(resultText(r), "existing") {
		t.Errorf("error = %q, want argument name", resultText(r))
	}
}

func TestIngestFile(t *testing.T) {
	srv := testServer(t)

	var doc models.Document
	decode(t, callTool(t, srv, "ingest_file", map[string]interface{}{"path": "notes/review.md"}), &doc)
	if doc.Template.TemplateName != "Standup" {
		t.Errorf("template = %q, want Standup", doc.Template.TemplateName)
	}

	for _, p := range []string{"missing.md", "slides.pdf"} {
		if r := callTool(t, srv, "ingest_file", map[string]interface{}{"path": p}); !r.IsError {
			t.Errorf("expected error for %s", p)
		}
	}
}

func TestSignalFormat(t *testing.T) {
	srv := testServer(t)
	text := resultText(callTool(t, srv, "get_signal_format", nil))
	if !strings.Contains(text, "Synthesized Signals (Authoritative)") {
		t.Error("contract does not describe the authoritative block")
	}

	contents, err := srv.readSignalFormatResource(context.Background(), mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatal(err)
	}
	tc, ok := contents[0].(mcp.TextResourceContents)
	if !ok || tc.URI != signalFormatURI || tc.Text != text {
		t.Errorf("resource = %+v", contents[0])
	}
}
