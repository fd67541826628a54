package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// FileExtractor converts a staged file into plain text. The language code is
// the tesseract code resolved from the request's input language.
type FileExtractor interface {
	Extract(ctx context.Context, path string, ocrLang string) (string, error)
}

// URLExtractor fetches a web resource and returns its visible text.
type URLExtractor interface {
	Extract(ctx context.Context, rawURL string) (string, error)
}

// Extractors bundles the per-format strategies the dispatcher routes to.
type Extractors struct {
	PDF   FileExtractor
	DOCX  FileExtractor
	Image FileExtractor
	Text  FileExtractor
	URL   URLExtractor
}

// Dispatcher selects one input channel per request and stages uploaded blobs
// for the file extractors.
type Dispatcher struct {
	extractors Extractors
	tempDir    string
	logger     *slog.Logger
}

// NewDispatcher constructs the dispatcher. tempDir may be empty, in which
// case the OS temp directory is used.
func NewDispatcher(extractors Extractors, tempDir string, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		extractors: extractors,
		tempDir:    tempDir,
		logger:     logger.With("component", "ingest.dispatcher"),
	}
}

// Dispatch routes the request to exactly one extractor. Channel priority is
// fixed: file, then url, then text. Remaining channels are never consulted,
// even after a failure.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (string, error) {
	switch {
	case req.File != nil:
		return d.dispatchFile(ctx, req)
	case strings.TrimSpace(req.URL) != "":
		return d.extractors.URL.Extract(ctx, req.URL)
	case strings.TrimSpace(req.Text) != "":
		return req.Text, nil
	default:
		return "", NewFailure(KindNoInput, "no input provided", nil)
	}
}

func (d *Dispatcher) dispatchFile(ctx context.Context, req Request) (string, error) {
	ext := strings.ToLower(filepath.Ext(req.File.Name))
	extractor := d.byExtension(ext)
	if extractor == nil {
		return "", NewFailure(KindUnsupportedType, fmt.Sprintf("unsupported file type: %q", ext), nil)
	}

	path, cleanup, err := d.stage(req.File, ext)
	if err != nil {
		return "", NewFailure(KindExtractionError, "failed to stage upload", err)
	}
	defer cleanup()

	return extractor.Extract(ctx, path, OCRLanguage(req.InputLanguage))
}

func (d *Dispatcher) byExtension(ext string) FileExtractor {
	switch ext {
	case ".pdf":
		return d.extractors.PDF
	case ".docx":
		return d.extractors.DOCX
	case ".txt":
		return d.extractors.Text
	case ".png", ".jpg", ".jpeg":
		return d.extractors.Image
	default:
		return nil
	}
}

// stage writes the upload to a transient uuid-named path. The returned
// cleanup runs on every exit path of the caller so artifacts never outlive
// their request.
func (d *Dispatcher) stage(file *File, ext string) (string, func(), error) {
	dir := d.tempDir
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", nil, err
	}

	path := filepath.Join(dir, uuid.NewString()+ext)
	if err := os.WriteFile(path, file.Content, 0o600); err != nil {
		return "", nil, err
	}

	cleanup := func() {
		if err := os.Remove(path); err != nil {
			d.logger.Warn("temp artifact not removed", "path", path, "error", err)
		}
	}
	return path, cleanup, nil
}
