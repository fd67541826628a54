package extract

import (
	"context"
	"os"

	"github.com/yanqian/ai-summarizer/internal/domain/ingest"
)

// PlainTextExtractor reads .txt uploads verbatim as UTF-8.
type PlainTextExtractor struct{}

func NewPlainTextExtractor() *PlainTextExtractor {
	return &PlainTextExtractor{}
}

func (e *PlainTextExtractor) Extract(_ context.Context, path, _ string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", ingest.NewFailure(ingest.KindExtractionError, "failed to read text file", err)
	}
	return string(data), nil
}
