// Package ingest is the host boundary around the signal pipeline: it loads
// and decodes documents, runs them through clean, segment, extract and
// classify, and folds bags from several documents into one meeting.
package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/starford/sigil/internal/apperr"
	"github.com/starford/sigil/internal/checksum"
	"github.com/starford/sigil/internal/classify"
	"github.com/starford/sigil/internal/merge"
	"github.com/starford/sigil/internal/models"
	"github.com/starford/sigil/internal/parser"
	"github.com/starford/sigil/internal/signals"
)

// Config controls which files are accepted and how many are processed at once.
type Config struct {
	// Root, when set, jails relative paths; paths escaping it are rejected.
	Root       string
	Extensions []string
	MaxBytes   int64
	Workers    int
}

// DefaultExtensions are the note formats accepted when none are configured.
var DefaultExtensions = []string{".md", ".markdown", ".txt"}

// Service runs documents through the pipeline.
type Service struct {
	fs      afero.Fs
	cfg     Config
	catalog *classify.Catalog
	logger  *slog.Logger
	now     func() time.Time
}

// NewService creates a service reading from fsys. A nil catalog selects the
// built-in template catalog.
func NewService(fsys afero.Fs, cfg Config, catalog *classify.Catalog, logger *slog.Logger) *Service {
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = DefaultExtensions
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if catalog == nil {
		catalog = classify.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Root != "" {
		fsys = afero.NewBasePathFs(fsys, cfg.Root)
	}
	return &Service{fs: fsys, cfg: cfg, catalog: catalog, logger: logger, now: time.Now}
}

// Catalog returns the template catalog used for classification.
func (s *Service) Catalog() *classify.Catalog {
	return s.catalog
}

// Accepts reports whether path has an accepted extension.
func (s *Service) Accepts(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range s.cfg.Extensions {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}

// IngestText runs text through the pipeline. It never fails.
func (s *Service) IngestText(source, text string) models.Document {
	cleaned := parser.Clean(text)
	sections := parser.Segment(cleaned)
	return models.Document{
		ID:           ulid.Make().String(),
		Source:       source,
		Checksum:     checksum.SumString(text),
		Template:     s.catalog.Classify(text),
		Sections:     sections,
		Signals:      signals.Extract(sections),
		Unstructured: sections.Len() == 0,
		Text:         cleaned,
		IngestedAt:   s.now(),
	}
}

// IngestFile reads, decodes and ingests one file.
func (s *Service) IngestFile(ctx context.Context, path string) (models.Document, error) {
	if err := ctx.Err(); err != nil {
		return models.Document{}, err
	}
	if !s.Accepts(path) {
		return models.Document{}, fmt.Errorf("ingest: %s: %w", path, apperr.ErrUnsupportedFormat)
	}
	data, err := s.read(path)
	if err != nil {
		return models.Document{}, err
	}
	text, err := Decode(path, data)
	if err != nil {
		return models.Document{}, fmt.Errorf("ingest: %w", err)
	}
	doc := s.IngestText(path, text)
	s.logger.Debug("ingest: document processed",
		slog.String("path", path),
		slog.String("template", doc.Template.TemplateName),
		slog.Int("sections", doc.Sections.Len()))
	return doc, nil
}

// IngestAll ingests paths concurrently, keeping input order. The first
// failure cancels the remaining work.
func (s *Service) IngestAll(ctx context.Context, paths []string) ([]models.Document, error) {
	docs := make([]models.Document, len(paths))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)
	for i, p := range paths {
		g.Go(func() error {
			doc, err := s.IngestFile(gCtx, p)
			if err != nil {
				return err
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

// LoadBag reads a stored SignalBag from a JSON file.
func (s *Service) LoadBag(ctx context.Context, path string) (models.SignalBag, error) {
	if err := ctx.Err(); err != nil {
		return models.SignalBag{}, err
	}
	data, err := s.read(path)
	if err != nil {
		return models.SignalBag{}, err
	}
	var bag models.SignalBag
	if err := json.Unmarshal(data, &bag); err != nil {
		return models.SignalBag{}, fmt.Errorf("ingest: parse bag %s: %w", path, err)
	}
	return bag, nil
}

// Amend merges incoming into existing, existing entries winning on collision.
func (s *Service) Amend(existing, incoming models.SignalBag) models.MergeResult {
	res := merge.Merge(existing, incoming)
	s.logger.Debug("ingest: bag amended", slog.Int("added", res.AddedCount))
	return res
}

func (s *Service) read(path string) ([]byte, error) {
	clean, err := s.safePath(path)
	if err != nil {
		return nil, err
	}
	info, err := s.fs.Stat(clean)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("ingest: %s: %w", path, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("ingest: stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("ingest: %s is a directory: %w", path, apperr.ErrUnsupportedFormat)
	}
	if s.cfg.MaxBytes > 0 && info.Size() > s.cfg.MaxBytes {
		return nil, fmt.Errorf("ingest: %s is %d bytes: %w", path, info.Size(), apperr.ErrTooLarge)
	}
	data, err := afero.ReadFile(s.fs, clean)
	if err != nil {
		return nil, fmt.Errorf("ingest: read %s: %w", path, err)
	}
	return data, nil
}

// safePath rejects paths that climb out of the root when one is configured.
func (s *Service) safePath(path string) (string, error) {
	cleaned := filepath.Clean(path)
	if s.cfg.Root == "" {
		return cleaned, nil
	}
	if filepath.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("ingest: %s: %w", path, apperr.ErrPathEscape)
	}
	return cleaned, nil
}
