// Package fetch retrieves web resources and reduces them to visible text.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/yanqian/ai-summarizer/internal/domain/ingest"
)

// maxBodyBytes caps the response size read into memory.
const maxBodyBytes = 8 << 20

// blockSelector lists the block-level elements whose text is kept. Ordering
// in the document is preserved by goquery's traversal.
const blockSelector = "h1, h2, h3, h4, h5, h6, p, li, dt, dd, td, th, blockquote, pre, figcaption"

// Client fetches a URL within a bounded timeout and strips its markup.
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient builds a fetch client. The timeout bounds the whole round trip.
func NewClient(timeout time.Duration, userAgent string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  userAgent,
	}
}

// Extract fetches rawURL and returns its visible text, block-separated so
// that headings, paragraphs and list items do not run together.
func (c *Client) Extract(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", ingest.NewFailure(ingest.KindFetchError, "invalid url", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", ingest.NewFailure(ingest.KindCanceled, "url fetch canceled", err)
		}
		return "", ingest.NewFailure(ingest.KindFetchError, "failed to fetch url", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", ingest.NewFailure(ingest.KindFetchError, fmt.Sprintf("unexpected status %d from %s", resp.StatusCode, rawURL), nil)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", ingest.NewFailure(ingest.KindExtractionError, "failed to parse html", err)
	}

	return stripMarkup(doc), nil
}

func stripMarkup(doc *goquery.Document) string {
	doc.Find("script, style, noscript, template").Remove()

	var blocks []string
	doc.Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		// keep leaf blocks only; a <td> containing a <p> is covered by the <p>
		if s.Children().FilterFunction(func(_ int, child *goquery.Selection) bool {
			return child.Is(blockSelector)
		}).Length() > 0 {
			return
		}
		if text := strings.TrimSpace(s.Text()); text != "" {
			blocks = append(blocks, text)
		}
	})

	if len(blocks) == 0 {
		return strings.TrimSpace(doc.Text())
	}
	return strings.Join(blocks, "\n")
}
