// Package testutil provides shared fixtures for ingestion tests.
package testutil

import (
	"io"
	"log/slog"
	"testing"

	"github.com/spf13/afero"
)

// MemFS returns an in-memory filesystem holding files (path -> content).
func MemFS(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for path, content := range files {
		if err := afero.WriteFile(fs, path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
	return fs
}

// Logger returns a logger that discards everything.
func Logger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// MeetingNote is a representative note with an authoritative block and
// standalone sections.
const MeetingNote = `<aside class="signals">
## Synthesized Signals (Authoritative)
🚦
Decision:
- Ship v2 on Friday
Action items:
- Dana prepares release notes
Blocked:
- Staging cluster quota
</aside>

## Context
Release readiness review for v2.

## Risks / Open Questions
- Latency regression under load
- ![graph](latency.png)

## Commitments / Ideas
- Eli runs the load test
- Dana prepares release notes

## Notes (raw)
Yesterday we fixed the cache. Today we test. Blockers: quota.
`
