package schedule

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/jole/ivsb/pkg/models"
)

// PageFetcher downloads one page.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Loader downloads and extracts a list of sources one after another.
type Loader struct {
	Fetcher   PageFetcher
	Prefilter Prefilter
	// Status receives one progress line per source. May be nil.
	Status io.Writer
	Logger *slog.Logger
}

// SourceError records why a source contributed no sessions.
type SourceError struct {
	Source Source
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s schedule %s: %v", e.Source.Kind, e.Source.URL, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// Load fetches every source in order and concatenates their sessions. A
// source that fails is reported and skipped; its error is returned in errs
// and never stops the remaining sources.
func (l *Loader) Load(ctx context.Context, sources []Source) (sessions []models.Session, errs []error) {
	logger := l.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	for _, src := range sources {
		l.status("Downloading %s schedule from %s ...\n", src.Kind, src.URL)
		found, err := l.loadOne(ctx, src)
		if err != nil {
			serr := &SourceError{Source: src, Err: err}
			logger.Error("source failed", "url", src.URL, "kind", src.Kind.String(), "err", err)
			l.status("Error: %v\n", serr)
			errs = append(errs, serr)
			continue
		}
		logger.Info("source loaded", "url", src.URL, "kind", src.Kind.String(), "sessions", len(found))
		sessions = append(sessions, found...)
	}
	return sessions, errs
}

func (l *Loader) loadOne(ctx context.Context, src Source) ([]models.Session, error) {
	body, err := l.Fetcher.Fetch(ctx, src.URL)
	if err != nil {
		return nil, err
	}
	found, err := Extract(bytes.NewReader(body), src, l.Prefilter)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}
	return found, nil
}

func (l *Loader) status(format string, args ...any) {
	if l.Status != nil {
		fmt.Fprintf(l.Status, format, args...)
	}
}
