package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/starford/sigil/internal/ingest"
	"github.com/starford/sigil/internal/mcpserver"
	"github.com/starford/sigil/internal/models"
	"github.com/starford/sigil/internal/watch"
)

// ClassifyResult is one line of the classify task's output.
type ClassifyResult struct {
	Source string `json:"source"`
	models.TemplateMatch
}

// MergeStep records what one input added to the meeting.
type MergeStep struct {
	Source       string         `json:"source"`
	AddedCount   int            `json:"added_count"`
	AddedByField map[string]int `json:"added_by_field,omitempty"`
}

// MergeReport is the merge task's output.
type MergeReport struct {
	Steps  []MergeStep      `json:"steps"`
	Merged models.SignalBag `json:"merged"`
}

// Extract ingests paths and writes the documents as a JSON array.
func Extract(paths []string) Task {
	return func(ctx context.Context, env *Env) error {
		docs, err := env.Service.IngestAll(ctx, paths)
		if err != nil {
			return err
		}
		return writeJSON(env, docs)
	}
}

// Classify writes the best template match for each path.
func Classify(paths []string) Task {
	return func(ctx context.Context, env *Env) error {
		docs, err := env.Service.IngestAll(ctx, paths)
		if err != nil {
			return err
		}
		out := make([]ClassifyResult, len(docs))
		for i, d := range docs {
			out[i] = ClassifyResult{Source: d.Source, TemplateMatch: d.Template}
		}
		return writeJSON(env, out)
	}
}

// Merge folds paths, in order, into one meeting. Notes are extracted; .json
// files are read as stored signal bags.
func Merge(paths []string) Task {
	return func(ctx context.Context, env *Env) error {
		var notes []string
		for _, p := range paths {
			if !isBagFile(p) {
				notes = append(notes, p)
			}
		}
		docs, err := env.Service.IngestAll(ctx, notes)
		if err != nil {
			return err
		}

		var meeting ingest.Meeting
		report := MergeReport{Steps: make([]MergeStep, 0, len(paths))}
		next := 0
		for _, p := range paths {
			var res models.MergeResult
			if isBagFile(p) {
				bag, err := env.Service.LoadBag(ctx, p)
				if err != nil {
					return err
				}
				res = meeting.AttachBag(p, bag)
			} else {
				res = meeting.Attach(docs[next])
				next++
			}
			env.Logger.Debug("merge: attached",
				slog.String("source", p),
				slog.Int("added", res.AddedCount))
			report.Steps = append(report.Steps, MergeStep{
				Source:       p,
				AddedCount:   res.AddedCount,
				AddedByField: res.AddedByField,
			})
		}
		report.Merged = meeting.Bag()
		return writeJSON(env, report)
	}
}

// Watch follows dir and writes one JSON event per line until interrupted.
func Watch(dir string) Task {
	return func(ctx context.Context, env *Env) error {
		root, err := filepath.Abs(dir)
		if err != nil {
			return fmt.Errorf("resolve watch dir: %w", err)
		}
		cfg := env.Config.Ingest.Service()
		cfg.Root = root
		svc := ingest.NewService(env.FS, cfg, env.Catalog, env.Logger)

		enc := json.NewEncoder(env.Out)
		g, gCtx := errgroup.WithContext(ctx)
		watchCtx, stop := context.WithCancel(gCtx)
		defer stop()

		g.Go(func() error {
			defer stop()
			return watch.Watch(watchCtx, svc, root, env.Logger, func(ev watch.Event) {
				if err := enc.Encode(ev); err != nil {
					env.Logger.Warn("watcher: write event failed", slog.String("error", err.Error()))
				}
			})
		})

		// Handle shutdown signals.
		g.Go(func() error {
			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(quit)

			select {
			case sig := <-quit:
				env.Logger.Info("received shutdown signal", slog.String("signal", sig.String()))
			case <-watchCtx.Done():
			}
			stop()
			return nil
		})

		return g.Wait()
	}
}

// ServeMCP serves the MCP tools over stdio.
func ServeMCP() Task {
	return func(ctx context.Context, env *Env) error {
		srv := mcpserver.New(env.Service, env.Config.MCP.Name, env.Config.MCP.Version)
		env.Logger.Info("mcp: serving on stdio",
			slog.String("name", env.Config.MCP.Name),
			slog.String("version", env.Config.MCP.Version))
		return srv.ServeStdio()
	}
}

func isBagFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

func writeJSON(env *Env, v any) error {
	enc := json.NewEncoder(env.Out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
