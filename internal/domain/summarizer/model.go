package summarizer

import (
	"github.com/yanqian/ai-summarizer/internal/domain/history"
	"github.com/yanqian/ai-summarizer/pkg/metrics"
)

// Config configures the summarization pipeline.
type Config struct {
	Model       string
	Temperature float32
}

// Response is returned for a successful summarization. History reflects the
// buffer state after the new record was appended.
type Response struct {
	Summary    string              `json:"summary"`
	Language   string              `json:"language"`
	History    []history.Record    `json:"history"`
	TokenUsage *metrics.TokenUsage `json:"tokenUsage,omitempty"`
}
