package summarizer

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/yanqian/ai-summarizer/internal/domain/history"
	"github.com/yanqian/ai-summarizer/internal/domain/ingest"
	"github.com/yanqian/ai-summarizer/internal/infra/llm/chatgpt"
	"github.com/yanqian/ai-summarizer/pkg/metrics"
	"github.com/yanqian/ai-summarizer/pkg/util"
)

// Service exposes the summarization pipeline.
type Service interface {
	Summarize(ctx context.Context, req ingest.Request) (Response, error)
	History() []history.Record
	ClearHistory() []history.Record
}

// Dispatcher selects an input channel and yields the extracted text.
type Dispatcher interface {
	Dispatch(ctx context.Context, req ingest.Request) (string, error)
}

// ChatClient is the outbound summarization capability.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error)
}

type service struct {
	cfg        Config
	dispatcher Dispatcher
	client     ChatClient
	prompts    *PromptBuilder
	records    *history.Buffer
	logger     *slog.Logger
}

// NewService wires the pipeline stages together.
func NewService(cfg Config, dispatcher Dispatcher, client ChatClient, prompts *PromptBuilder, records *history.Buffer, logger *slog.Logger) Service {
	return &service{
		cfg:        cfg,
		dispatcher: dispatcher,
		client:     client,
		prompts:    prompts,
		records:    records,
		logger:     logger.With("component", "summarizer.service"),
	}
}

// Summarize runs one request through dispatch, prompt construction and the
// LLM call. The history buffer is appended only after a successful summary;
// every failure leaves it untouched.
func (s *service) Summarize(ctx context.Context, req ingest.Request) (Response, error) {
	req = withDefaults(req)

	text, err := s.dispatcher.Dispatch(ctx, req)
	if err != nil {
		return Response{}, err
	}
	if strings.TrimSpace(text) == "" {
		return Response{}, ingest.NewFailure(ingest.KindNoTextDetected, "no text could be extracted", nil)
	}

	prompt := s.prompts.Build(text, req.OutputLanguage, req.Length, req.Format)
	resp, err := s.client.CreateChatCompletion(ctx, chatgpt.ChatCompletionRequest{
		Model:       s.cfg.Model,
		Messages:    []chatgpt.Message{{Role: "user", Content: prompt}},
		Temperature: s.cfg.Temperature,
		MaxTokens:   maxCompletionTokens(req.Length),
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return Response{}, ingest.NewFailure(ingest.KindCanceled, "summarization canceled", err)
		}
		return Response{}, ingest.NewFailure(ingest.KindSummarizationError, "summarization failed", err)
	}
	if len(resp.Choices) == 0 {
		return Response{}, ingest.NewFailure(ingest.KindSummarizationError, "llm returned no choices", nil)
	}

	summary := strings.TrimSpace(resp.Choices[0].Message.Content)
	if summary == "" {
		return Response{}, ingest.NewFailure(ingest.KindSummarizationError, "llm returned an empty summary", nil)
	}

	record := history.Record{
		Timestamp: util.NowUTC(),
		Summary:   summary,
		Language:  req.OutputLanguage,
		Length:    req.Length,
		Format:    req.Format,
	}
	s.records.Append(record)

	s.logger.Info("summary produced",
		"language", req.OutputLanguage,
		"length", req.Length,
		"format", req.Format,
		"prompt_tokens", resp.Usage.PromptTokens,
	)

	return Response{
		Summary:    summary,
		Language:   req.OutputLanguage,
		History:    s.records.Snapshot(),
		TokenUsage: tokenUsage(resp.Usage),
	}, nil
}

// History returns the current buffer snapshot, oldest-first.
func (s *service) History() []history.Record {
	return s.records.Snapshot()
}

// ClearHistory empties the buffer and returns the now empty snapshot.
func (s *service) ClearHistory() []history.Record {
	s.records.Clear()
	return s.records.Snapshot()
}

func withDefaults(req ingest.Request) ingest.Request {
	if strings.TrimSpace(req.InputLanguage) == "" {
		req.InputLanguage = ingest.DefaultLanguage
	}
	if strings.TrimSpace(req.OutputLanguage) == "" {
		req.OutputLanguage = ingest.DefaultLanguage
	}
	if req.Length == "" {
		req.Length = ingest.LengthMedium
	}
	if req.Format == "" {
		req.Format = ingest.FormatParagraph
	}
	return req
}

// maxCompletionTokens gives the model headroom above the word budget; one
// word rarely exceeds three tokens.
func maxCompletionTokens(length ingest.Length) int {
	return length.WordBudget() * 3
}

func tokenUsage(usage chatgpt.Usage) *metrics.TokenUsage {
	converted := metrics.TokenUsage{
		PromptTokens:     usage.PromptTokens,
		CompletionTokens: usage.CompletionTokens,
		TotalTokens:      usage.TotalTokens,
	}
	if converted.IsZero() {
		return nil
	}
	return &converted
}
