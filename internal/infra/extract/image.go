package extract

import (
	"context"
	"errors"
	"strings"

	"github.com/yanqian/ai-summarizer/internal/domain/ingest"
)

// ImageExtractor runs OCR over the whole image.
type ImageExtractor struct {
	recognizer Recognizer
}

func NewImageExtractor(recognizer Recognizer) *ImageExtractor {
	return &ImageExtractor{recognizer: recognizer}
}

func (e *ImageExtractor) Extract(ctx context.Context, path, ocrLang string) (string, error) {
	text, err := e.recognizer.Run(ctx, path, ocrLang)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", ingest.NewFailure(ingest.KindCanceled, "image ocr canceled", err)
		}
		return "", ingest.NewFailure(ingest.KindExtractionError, "image ocr failed", err)
	}
	if strings.TrimSpace(text) == "" {
		return "", ingest.NewFailure(ingest.KindNoTextDetected, "ocr did not detect any text", nil)
	}
	return text, nil
}
