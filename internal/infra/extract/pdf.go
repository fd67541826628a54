package extract

import (
	"context"
	"errors"
	"fmt"
	"image/png"
	"os"
	"strings"

	fitz "github.com/gen2brain/go-fitz"
	"github.com/ledongthuc/pdf"

	"github.com/yanqian/ai-summarizer/internal/domain/ingest"
)

// PDFExtractor tries the embedded text layer first and falls back to OCR of
// the first page for scanned documents. Both tiers are injectable so the
// fallback decision can be exercised without real PDF fixtures.
type PDFExtractor struct {
	recognizer Recognizer
	textLayer  func(path string) (string, error)
	renderPage func(path string) (string, error)
}

func NewPDFExtractor(recognizer Recognizer) *PDFExtractor {
	return &PDFExtractor{
		recognizer: recognizer,
		textLayer:  readTextLayer,
		renderPage: renderFirstPage,
	}
}

func (e *PDFExtractor) Extract(ctx context.Context, path, ocrLang string) (string, error) {
	text, err := e.textLayer(path)
	if err != nil {
		return "", ingest.NewFailure(ingest.KindExtractionError, "pdf text extraction failed", err)
	}
	if strings.TrimSpace(text) != "" {
		return text, nil
	}

	// Scanned or image-only document. OCR only the first page: full-document
	// OCR does not fit a synchronous request cycle.
	imagePath, err := e.renderPage(path)
	if err != nil {
		return "", ingest.NewFailure(ingest.KindExtractionError, "pdf page render failed", err)
	}
	defer os.Remove(imagePath)

	ocrText, err := e.recognizer.Run(ctx, imagePath, ocrLang)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", ingest.NewFailure(ingest.KindCanceled, "pdf ocr canceled", err)
		}
		return "", ingest.NewFailure(ingest.KindExtractionError, "pdf ocr failed", err)
	}
	if strings.TrimSpace(ocrText) == "" {
		return "", ingest.NewFailure(ingest.KindNoTextDetected, "no readable text found", nil)
	}
	return ocrText, nil
}

// readTextLayer extracts the embedded text of every page. Pages whose text
// cannot be decoded are skipped rather than failing the document.
func readTextLayer(path string) (text string, err error) {
	// the reader panics on some malformed xref tables
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf reader panic: %v", r)
		}
	}()

	file, reader, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	var parts []string
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if strings.TrimSpace(pageText) != "" {
			parts = append(parts, pageText)
		}
	}
	return strings.Join(parts, "\n"), nil
}

// renderFirstPage rasterizes page 1 next to the staged document and returns
// the image path. The caller removes the artifact.
func renderFirstPage(path string) (string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return "", err
	}
	defer doc.Close()

	if doc.NumPage() == 0 {
		return "", errors.New("pdf has no pages")
	}
	img, err := doc.Image(0)
	if err != nil {
		return "", err
	}

	imagePath := path + ".page1.png"
	out, err := os.Create(imagePath)
	if err != nil {
		return "", err
	}
	if err := png.Encode(out, img); err != nil {
		out.Close()
		os.Remove(imagePath)
		return "", err
	}
	if err := out.Close(); err != nil {
		os.Remove(imagePath)
		return "", err
	}
	return imagePath, nil
}
