package http

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/ai-summarizer/internal/domain/ingest"
	"github.com/yanqian/ai-summarizer/internal/domain/summarizer"
	"github.com/yanqian/ai-summarizer/internal/infra/config"
)

// SummaryHandler wires the HTTP transport to the summarization pipeline.
type SummaryHandler struct {
	svc       summarizer.Service
	maxUpload int64
	logger    *slog.Logger
}

// NewSummaryHandler constructs the root HTTP handler.
func NewSummaryHandler(cfg *config.Config, svc summarizer.Service, logger *slog.Logger) *SummaryHandler {
	return &SummaryHandler{
		svc:       svc,
		maxUpload: cfg.Ingest.MaxUploadBytes,
		logger:    logger.With("component", "http.handler"),
	}
}

// Summarize accepts one multipart submission with optional text, url and
// file fields and returns the summary plus the updated history.
func (h *SummaryHandler) Summarize(c *gin.Context) {
	req, httpErr := h.bindRequest(c)
	if httpErr != nil {
		abortWithError(c, httpErr)
		return
	}

	resp, err := h.svc.Summarize(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, mapFailure(err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// History returns the buffered summaries, oldest-first.
func (h *SummaryHandler) History(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"history": h.svc.History()})
}

// ClearHistory empties the buffer and echoes the empty snapshot.
func (h *SummaryHandler) ClearHistory(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"history": h.svc.ClearHistory()})
}

// Healthz is the liveness probe.
func (h *SummaryHandler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *SummaryHandler) bindRequest(c *gin.Context) (ingest.Request, *HTTPError) {
	req := ingest.Request{
		Text:           c.PostForm("text"),
		URL:            c.PostForm("url"),
		InputLanguage:  c.PostForm("inputLanguage"),
		OutputLanguage: c.PostForm("outputLanguage"),
		Length:         ingest.ParseLength(c.PostForm("length")),
		Format:         ingest.ParseFormat(c.PostForm("format")),
	}

	fileHeader, err := c.FormFile("file")
	switch {
	case err == nil:
		if fileHeader.Size > h.maxUpload {
			return ingest.Request{}, NewHTTPError(http.StatusRequestEntityTooLarge, "upload_too_large",
				fmt.Sprintf("upload exceeds %d bytes", h.maxUpload), nil)
		}
		file, err := fileHeader.Open()
		if err != nil {
			return ingest.Request{}, NewHTTPError(http.StatusBadRequest, "invalid_request", "failed to read upload", err)
		}
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			return ingest.Request{}, NewHTTPError(http.StatusInternalServerError, "upload_failed", "failed to read file", err)
		}
		req.File = &ingest.File{Name: fileHeader.Filename, Content: data}
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		// text or url submission
	default:
		return ingest.Request{}, NewHTTPError(http.StatusBadRequest, "invalid_request", "malformed multipart form", err)
	}

	return req, nil
}

// mapFailure converts a pipeline failure kind into a transport status.
func mapFailure(err error) *HTTPError {
	kind := ingest.KindOf(err)

	status := http.StatusInternalServerError
	switch kind {
	case ingest.KindNoInput, ingest.KindUnsupportedType:
		status = http.StatusBadRequest
	case ingest.KindNoTextDetected:
		status = http.StatusUnprocessableEntity
	case ingest.KindFetchError, ingest.KindSummarizationError:
		status = http.StatusBadGateway
	case ingest.KindCanceled:
		status = http.StatusRequestTimeout
	}

	return NewHTTPError(status, string(kind), err.Error(), err)
}
