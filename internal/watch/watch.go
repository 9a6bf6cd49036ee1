// Package watch re-ingests meeting notes as they change on disk.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/starford/sigil/internal/ingest"
	"github.com/starford/sigil/internal/models"
)

// Event kinds.
const (
	Created = "created"
	Updated = "updated"
	Deleted = "deleted"
)

// Event describes one watcher-driven change. Document is nil for deletions.
type Event struct {
	Kind     string           `json:"kind"`
	Path     string           `json:"path"`
	Document *models.Document `json:"document,omitempty"`
}

// EventCallback is called after each processed change.
type EventCallback func(Event)

// Watch ingests every accepted file under root, then follows fsnotify events
// until ctx is cancelled. svc must be rooted at root: paths handed to it are
// relative to root.
//
// New directories are added to the watch list and their files ingested.
// A write that leaves the decoded text unchanged produces no event.
func Watch(ctx context.Context, svc *ingest.Service, root string, logger *slog.Logger, cb EventCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := addDirsRecursive(w, root); err != nil {
		return err
	}

	st := &state{
		ctx:    ctx,
		svc:    svc,
		root:   root,
		logger: logger,
		cb:     cb,
		seen:   make(map[string]string),
	}
	st.ingestDir(root)

	logger.Info("watcher: started", slog.String("root", root))

	for {
		select {
		case <-ctx.Done():
			logger.Info("watcher: stopped")
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			st.handle(w, ev)

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

type state struct {
	ctx    context.Context
	svc    *ingest.Service
	root   string
	logger *slog.Logger
	cb     EventCallback
	// seen maps a relative path to the checksum of its last ingested text.
	seen map[string]string
}

func (s *state) handle(w *fsnotify.Watcher, ev fsnotify.Event) {
	absPath := ev.Name

	if ev.Op&fsnotify.Create != 0 {
		if info, statErr := os.Stat(absPath); statErr == nil && info.IsDir() {
			if addErr := addDirsRecursive(w, absPath); addErr != nil {
				s.logger.Warn("watcher: add new dir failed",
					slog.String("path", absPath),
					slog.String("error", addErr.Error()))
			} else {
				s.logger.Debug("watcher: watching new dir", slog.String("path", absPath))
			}
			s.ingestDir(absPath)
			return
		}
	}

	if !s.svc.Accepts(absPath) {
		return
	}
	rel, relErr := filepath.Rel(s.root, absPath)
	if relErr != nil {
		return
	}

	switch {
	case ev.Op&(fsnotify.Create|fsnotify.Write) != 0:
		s.ingest(rel)
	case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		// Rename fires on the old path; the new one arrives as a Create.
		delete(s.seen, rel)
		s.logger.Debug("watcher: deleted", slog.String("path", rel))
		s.emit(Event{Kind: Deleted, Path: rel})
	}
}

func (s *state) ingest(rel string) {
	doc, err := s.svc.IngestFile(s.ctx, rel)
	if err != nil {
		s.logger.Warn("watcher: ingest failed", slog.String("path", rel), slog.String("error", err.Error()))
		return
	}
	prev, known := s.seen[rel]
	if known && prev == doc.Checksum {
		return
	}
	s.seen[rel] = doc.Checksum

	kind := Created
	if known {
		kind = Updated
	}
	s.logger.Debug("watcher: ingested", slog.String("path", rel), slog.String("op", kind))
	s.emit(Event{Kind: kind, Path: rel, Document: &doc})
}

// ingestDir ingests accepted files already present under dir.
func (s *state) ingestDir(dir string) {
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !s.svc.Accepts(path) {
			return nil
		}
		rel, relErr := filepath.Rel(s.root, path)
		if relErr != nil {
			return nil
		}
		s.ingest(rel)
		return nil
	})
}

func (s *state) emit(ev Event) {
	if s.cb != nil {
		s.cb(ev)
	}
}

// addDirsRecursive adds root and all its subdirectories to the watcher.
func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
}
