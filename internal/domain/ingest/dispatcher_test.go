package ingest

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubFileExtractor struct {
	result string
	err    error

	calls    int
	lastPath string
	lastLang string
	// captured while the staged file still exists
	stagedContent []byte
}

func (s *stubFileExtractor) Extract(_ context.Context, path, ocrLang string) (string, error) {
	s.calls++
	s.lastPath = path
	s.lastLang = ocrLang
	if data, err := os.ReadFile(path); err == nil {
		s.stagedContent = data
	}
	return s.result, s.err
}

type stubURLExtractor struct {
	result  string
	err     error
	calls   int
	lastURL string
}

func (s *stubURLExtractor) Extract(_ context.Context, rawURL string) (string, error) {
	s.calls++
	s.lastURL = rawURL
	return s.result, s.err
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestDispatcher(t *testing.T, extractors Extractors) (*Dispatcher, string) {
	t.Helper()
	dir := t.TempDir()
	return NewDispatcher(extractors, dir, newTestLogger()), dir
}

func TestDispatchTextPassthrough(t *testing.T) {
	pdf := &stubFileExtractor{}
	url := &stubURLExtractor{}
	dispatcher, _ := newTestDispatcher(t, Extractors{PDF: pdf, URL: url})

	text, err := dispatcher.Dispatch(context.Background(), Request{Text: "Hello world"})
	require.NoError(t, err)
	require.Equal(t, "Hello world", text)
	require.Zero(t, pdf.calls)
	require.Zero(t, url.calls)
}

func TestDispatchNoInput(t *testing.T) {
	dispatcher, _ := newTestDispatcher(t, Extractors{})

	_, err := dispatcher.Dispatch(context.Background(), Request{Text: "   "})
	require.Error(t, err)
	require.True(t, IsKind(err, KindNoInput))
}

func TestDispatchPrefersFileOverURLAndText(t *testing.T) {
	pdf := &stubFileExtractor{result: "from pdf"}
	url := &stubURLExtractor{result: "from url"}
	dispatcher, _ := newTestDispatcher(t, Extractors{PDF: pdf, URL: url})

	text, err := dispatcher.Dispatch(context.Background(), Request{
		Text: "inline text",
		URL:  "https://example.com",
		File: &File{Name: "report.pdf", Content: []byte("%PDF-")},
	})
	require.NoError(t, err)
	require.Equal(t, "from pdf", text)
	require.Equal(t, 1, pdf.calls)
	require.Zero(t, url.calls)
}

func TestDispatchPrefersURLOverText(t *testing.T) {
	url := &stubURLExtractor{result: "page text"}
	dispatcher, _ := newTestDispatcher(t, Extractors{URL: url})

	text, err := dispatcher.Dispatch(context.Background(), Request{
		Text: "inline text",
		URL:  "https://example.com/article",
	})
	require.NoError(t, err)
	require.Equal(t, "page text", text)
	require.Equal(t, "https://example.com/article", url.lastURL)
}

func TestDispatchUnsupportedExtensionLeavesNoArtifact(t *testing.T) {
	pdf := &stubFileExtractor{}
	dispatcher, dir := newTestDispatcher(t, Extractors{PDF: pdf})

	_, err := dispatcher.Dispatch(context.Background(), Request{
		File: &File{Name: "malware.exe", Content: []byte{0x4d, 0x5a}},
	})
	require.Error(t, err)
	require.True(t, IsKind(err, KindUnsupportedType))
	require.Zero(t, pdf.calls)

	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	require.Empty(t, entries)
}

func TestDispatchStagesAndRemovesUpload(t *testing.T) {
	content := []byte("plain file body")
	txt := &stubFileExtractor{result: "extracted"}
	dispatcher, dir := newTestDispatcher(t, Extractors{Text: txt})

	_, err := dispatcher.Dispatch(context.Background(), Request{
		File: &File{Name: "notes.txt", Content: content},
	})
	require.NoError(t, err)
	require.Equal(t, 1, txt.calls)
	require.Equal(t, content, txt.stagedContent)

	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	require.Empty(t, entries, "staged upload must not survive the request")
}

func TestDispatchRemovesUploadOnExtractorFailure(t *testing.T) {
	img := &stubFileExtractor{err: NewFailure(KindNoTextDetected, "ocr did not detect any text", nil)}
	dispatcher, dir := newTestDispatcher(t, Extractors{Image: img})

	_, err := dispatcher.Dispatch(context.Background(), Request{
		File: &File{Name: "scan.png", Content: []byte("png bytes")},
	})
	require.Error(t, err)
	require.True(t, IsKind(err, KindNoTextDetected))

	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	require.Empty(t, entries)
}

func TestDispatchResolvesOCRLanguage(t *testing.T) {
	img := &stubFileExtractor{result: "bonjour"}
	dispatcher, _ := newTestDispatcher(t, Extractors{Image: img})

	_, err := dispatcher.Dispatch(context.Background(), Request{
		File:          &File{Name: "scan.JPG", Content: []byte("jpeg bytes")},
		InputLanguage: "French",
	})
	require.NoError(t, err)
	require.Equal(t, "fra", img.lastLang)
}

func TestDispatchRoutesByExtension(t *testing.T) {
	pdf := &stubFileExtractor{result: "pdf"}
	docx := &stubFileExtractor{result: "docx"}
	txt := &stubFileExtractor{result: "txt"}
	img := &stubFileExtractor{result: "img"}
	dispatcher, _ := newTestDispatcher(t, Extractors{PDF: pdf, DOCX: docx, Text: txt, Image: img})

	cases := map[string]*stubFileExtractor{
		"a.pdf":  pdf,
		"b.docx": docx,
		"c.txt":  txt,
		"d.png":  img,
		"e.jpg":  img,
		"f.jpeg": img,
	}
	for name, want := range cases {
		before := want.calls
		_, err := dispatcher.Dispatch(context.Background(), Request{File: &File{Name: name, Content: []byte("x")}})
		require.NoError(t, err, "file %s", name)
		require.Equal(t, before+1, want.calls, "file %s", name)
	}
}
