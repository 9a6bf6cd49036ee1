package ingest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"go.uber.org/goleak"

	"github.com/starford/sigil/internal/apperr"
	"github.com/starford/sigil/internal/models"
	"github.com/starford/sigil/internal/testutil"
)

func testService(t *testing.T, files map[string]string, cfg Config) *Service {
	t.Helper()
	return NewService(testutil.MemFS(t, files), cfg, nil, testutil.Logger())
}

func TestIngestFile_MeetingNote(t *testing.T) {
	svc := testService(t, map[string]string{"notes/review.md": testutil.MeetingNote}, Config{})

	doc, err := svc.IngestFile(context.Background(), "notes/review.md")
	if err != nil {
		t.Fatalf("IngestFile: %v", err)
	}
	if doc.ID == "" || doc.Checksum == "" {
		t.Errorf("id = %q, checksum = %q; want both set", doc.ID, doc.Checksum)
	}
	if doc.Unstructured {
		t.Error("document with headers reported unstructured")
	}
	if got := doc.Signals.Decisions.Texts(); len(got) != 1 || got[0] != "Ship v2 on Friday" {
		t.Errorf("decisions = %v", got)
	}
	want := []string{"Dana prepares release notes", "Eli runs the load test"}
	if got := doc.Signals.ActionItems.Texts(); strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("action items = %v, want %v", got, want)
	}
	if got := doc.Signals.Risks.Texts(); len(got) != 1 || got[0] != "Latency regression under load" {
		t.Errorf("risks = %v", got)
	}
	if doc.Signals.Context != "Release readiness review for v2." {
		t.Errorf("context = %q", doc.Signals.Context)
	}
	if doc.Template.TemplateName != "Standup" {
		t.Errorf("template = %q, want Standup", doc.Template.TemplateName)
	}
}

func TestIngestText_Unstructured(t *testing.T) {
	svc := testService(t, nil, Config{})
	doc := svc.IngestText("paste", "just a paragraph of text")
	if !doc.Unstructured {
		t.Error("expected unstructured document")
	}
	if doc.Text != "just a paragraph of text" {
		t.Errorf("text = %q", doc.Text)
	}
	if !doc.Signals.IsEmpty() {
		t.Errorf("signals = %+v, want empty", doc.Signals)
	}
}

func TestIngestFile_Errors(t *testing.T) {
	svc := testService(t, map[string]string{
		"slides.pdf": "%PDF",
		"bad.md":     "ok \xff\xfe not utf8",
		"big.txt":    strings.Repeat("x", 64),
	}, Config{MaxBytes: 32})

	tests := []struct {
		path string
		want error
	}{
		{"slides.pdf", apperr.ErrUnsupportedFormat},
		{"missing.md", apperr.ErrNotFound},
		{"big.txt", apperr.ErrTooLarge},
	}
	for _, tt := range tests {
		_, err := svc.IngestFile(context.Background(), tt.path)
		if !errors.Is(err, tt.want) {
			t.Errorf("IngestFile(%s) err = %v, want %v", tt.path, err, tt.want)
		}
	}

	_, err := svc.IngestFile(context.Background(), "bad.md")
	var decErr *apperr.DecodeError
	if !errors.As(err, &decErr) {
		t.Fatalf("err = %v, want DecodeError", err)
	}
	if decErr.Offset != 3 {
		t.Errorf("offset = %d, want 3", decErr.Offset)
	}
}

func TestIngestFile_RootJail(t *testing.T) {
	fs := testutil.MemFS(t, map[string]string{"/vault/a.md": "Context\ninside"})
	svc := NewService(fs, Config{Root: "/vault"}, nil, testutil.Logger())

	doc, err := svc.IngestFile(context.Background(), "a.md")
	if err != nil {
		t.Fatalf("IngestFile: %v", err)
	}
	if doc.Signals.Context != "inside" {
		t.Errorf("context = %q", doc.Signals.Context)
	}

	for _, p := range []string{"../etc/passwd.md", "/etc/passwd.md"} {
		if _, err := svc.IngestFile(context.Background(), p); !errors.Is(err, apperr.ErrPathEscape) {
			t.Errorf("IngestFile(%s) err = %v, want ErrPathEscape", p, err)
		}
	}
}

func TestIngestAll_KeepsOrder(t *testing.T) {
	defer goleak.VerifyNone(t)

	files := map[string]string{}
	var paths []string
	for i := 0; i < 20; i++ {
		p := fmt.Sprintf("n%02d.md", i)
		files[p] = fmt.Sprintf("Synthesized Signals\nDecision:\n- decision %d", i)
		paths = append(paths, p)
	}
	svc := testService(t, files, Config{Workers: 3})

	docs, err := svc.IngestAll(context.Background(), paths)
	if err != nil {
		t.Fatalf("IngestAll: %v", err)
	}
	for i, d := range docs {
		want := fmt.Sprintf("decision %d", i)
		if d.Source != paths[i] || !d.Signals.Decisions.Contains(want) {
			t.Errorf("docs[%d] = %s %v, want %s %s", i, d.Source, d.Signals.Decisions.Texts(), paths[i], want)
		}
	}
}

func TestIngestAll_FirstErrorWins(t *testing.T) {
	defer goleak.VerifyNone(t)

	svc := testService(t, map[string]string{"a.md": "x"}, Config{Workers: 2})
	_, err := svc.IngestAll(context.Background(), []string{"a.md", "missing.md"})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestIngestFile_CancelledContext(t *testing.T) {
	svc := testService(t, map[string]string{"a.md": "x"}, Config{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := svc.IngestFile(ctx, "a.md"); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestLoadBag(t *testing.T) {
	svc := testService(t, map[string]string{
		"bag.json": `{"decisions":["A"],"key_points":[{"text":"K","speaker":"sam"}]}`,
		"bad.json": `{"decisions":`,
	}, Config{})

	bag, err := svc.LoadBag(context.Background(), "bag.json")
	if err != nil {
		t.Fatalf("LoadBag: %v", err)
	}
	if !bag.Decisions.Contains("A") || !bag.KeyPoints.Contains("K") {
		t.Errorf("bag = %+v", bag)
	}
	if bag.Blockers != nil {
		t.Errorf("absent blockers decoded as %v", bag.Blockers)
	}
	if _, err := svc.LoadBag(context.Background(), "bad.json"); err == nil {
		t.Error("expected parse error")
	}
}

func TestDecode(t *testing.T) {
	text, err := Decode("x", []byte("\xEF\xBB\xBFcafe\u0301\r\nline\rend"))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if want := "caf\u00e9\nline\nend"; text != want {
		t.Errorf("text = %q, want %q", text, want)
	}
}

func TestMeeting_AttachSequence(t *testing.T) {
	svc := testService(t, nil, Config{})
	m := NewMeeting(models.SignalBag{Decisions: models.ListOf("A")})

	teams := m.AttachBag("teams", models.SignalBag{Decisions: models.ListOf("A", "B")})
	if teams.AddedCount != 1 {
		t.Errorf("teams added = %d, want 1", teams.AddedCount)
	}
	pocket := m.Attach(svc.IngestText("pocket", "Synthesized Signals\nDecision:\n- B\n- C"))
	if pocket.AddedCount != 1 {
		t.Errorf("pocket added = %d, want 1", pocket.AddedCount)
	}
	if got := strings.Join(m.Bag().Decisions.Texts(), ","); got != "A,B,C" {
		t.Errorf("decisions = %s, want A,B,C", got)
	}
	if got := strings.Join(m.Sources(), ","); got != "teams,pocket" {
		t.Errorf("sources = %s", got)
	}
}

func TestMeeting_FirstDocumentAdopted(t *testing.T) {
	var m Meeting
	res := m.AttachBag("first", models.SignalBag{
		Decisions:  models.ListOf("A", "B"),
		KeySignals: models.ListOf("K"),
		Context:    "ctx",
	})
	if res.AddedCount != 2 {
		t.Errorf("added = %d, want 2", res.AddedCount)
	}
	bag := m.Bag()
	if bag.Context != "ctx" || !bag.KeySignals.Contains("K") {
		t.Errorf("bag = %+v, want context and key signals kept", bag)
	}
}

func TestMeeting_ConcurrentAttach(t *testing.T) {
	m := NewMeeting(models.SignalBag{})
	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func(i int) {
			m.AttachBag(fmt.Sprint(i), models.SignalBag{Ideas: models.ListOf(fmt.Sprintf("idea %d", i), "shared")})
			done <- struct{}{}
		}(i)
	}
	for i := 0; i < 10; i++ {
		<-done
	}
	if n := len(m.Bag().Ideas); n != 11 {
		t.Errorf("ideas = %d, want 11", n)
	}
}
