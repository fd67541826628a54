package summarizer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/ai-summarizer/internal/domain/history"
	"github.com/yanqian/ai-summarizer/internal/domain/ingest"
	"github.com/yanqian/ai-summarizer/internal/infra/llm/chatgpt"
)

type stubChatClient struct {
	completionResp chatgpt.ChatCompletionResponse
	err            error

	calls       int
	lastRequest chatgpt.ChatCompletionRequest
}

func (s *stubChatClient) CreateChatCompletion(_ context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error) {
	s.calls++
	s.lastRequest = req
	return s.completionResp, s.err
}

type stubDispatcher struct {
	text string
	err  error
}

func (s *stubDispatcher) Dispatch(context.Context, ingest.Request) (string, error) {
	return s.text, s.err
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func completion(content string) chatgpt.ChatCompletionResponse {
	return chatgpt.ChatCompletionResponse{
		Choices: []struct {
			Message chatgpt.Message `json:"message"`
		}{
			{Message: chatgpt.Message{Content: content}},
		},
	}
}

func newTestService(dispatcher Dispatcher, client ChatClient, records *history.Buffer) Service {
	cfg := Config{Model: "gpt-4o-mini", Temperature: 0.2}
	return NewService(cfg, dispatcher, client, &PromptBuilder{}, records, newTestLogger())
}

func TestSummarizeTextChannelScenario(t *testing.T) {
	client := &stubChatClient{completionResp: completion("Bonjour le monde.")}
	records := history.NewBuffer(5)
	// real dispatcher: the text channel must reach the model without any extractor
	dispatcher := ingest.NewDispatcher(ingest.Extractors{}, t.TempDir(), newTestLogger())
	svc := newTestService(dispatcher, client, records)

	resp, err := svc.Summarize(context.Background(), ingest.Request{
		Text:           "Hello world",
		OutputLanguage: "French",
		Length:         ingest.LengthShort,
		Format:         ingest.FormatParagraph,
	})
	require.NoError(t, err)
	require.Equal(t, "Bonjour le monde.", resp.Summary)
	require.Equal(t, "French", resp.Language)

	prompt := client.lastRequest.Messages[0].Content
	require.Contains(t, prompt, "in French")
	require.Contains(t, prompt, "as a paragraph")
	require.Contains(t, prompt, "~100 words max")
	require.Contains(t, prompt, "Hello world")
	require.Equal(t, 300, client.lastRequest.MaxTokens)

	snapshot := records.Snapshot()
	require.Len(t, snapshot, 1)
	require.Equal(t, "French", snapshot[0].Language)
	require.Equal(t, ingest.LengthShort, snapshot[0].Length)
	require.Equal(t, ingest.FormatParagraph, snapshot[0].Format)
	require.False(t, snapshot[0].Timestamp.IsZero())
}

func TestSummarizeDispatchFailureShortCircuits(t *testing.T) {
	client := &stubChatClient{completionResp: completion("unused")}
	records := history.NewBuffer(5)
	dispatcher := &stubDispatcher{err: ingest.NewFailure(ingest.KindFetchError, "failed to fetch url", errors.New("dial timeout"))}
	svc := newTestService(dispatcher, client, records)

	_, err := svc.Summarize(context.Background(), ingest.Request{URL: "http://unreachable.invalid"})
	require.Error(t, err)
	require.True(t, ingest.IsKind(err, ingest.KindFetchError))
	require.Zero(t, client.calls, "failed extraction must not reach the model")
	require.Empty(t, records.Snapshot(), "history unchanged on failure")
}

func TestSummarizeEmptyExtractionIsNoTextDetected(t *testing.T) {
	client := &stubChatClient{}
	records := history.NewBuffer(5)
	svc := newTestService(&stubDispatcher{text: "   \n\t"}, client, records)

	_, err := svc.Summarize(context.Background(), ingest.Request{Text: "ignored"})
	require.Error(t, err)
	require.True(t, ingest.IsKind(err, ingest.KindNoTextDetected))
	require.Zero(t, client.calls)
}

func TestSummarizeProviderErrorSurfacesVerbatim(t *testing.T) {
	providerErr := errors.New("chatgpt request failed: status=429 body=quota exceeded")
	client := &stubChatClient{err: providerErr}
	records := history.NewBuffer(5)
	svc := newTestService(&stubDispatcher{text: "some content"}, client, records)

	_, err := svc.Summarize(context.Background(), ingest.Request{Text: "some content"})
	require.Error(t, err)
	require.True(t, ingest.IsKind(err, ingest.KindSummarizationError))
	require.Contains(t, err.Error(), "quota exceeded")
	require.Empty(t, records.Snapshot())
}

func TestSummarizeCanceledContextMapsToCanceled(t *testing.T) {
	client := &stubChatClient{err: context.Canceled}
	records := history.NewBuffer(5)
	svc := newTestService(&stubDispatcher{text: "content"}, client, records)

	_, err := svc.Summarize(context.Background(), ingest.Request{Text: "content"})
	require.Error(t, err)
	require.True(t, ingest.IsKind(err, ingest.KindCanceled))
	require.Empty(t, records.Snapshot())
}

func TestSummarizeNoChoicesFails(t *testing.T) {
	client := &stubChatClient{}
	records := history.NewBuffer(5)
	svc := newTestService(&stubDispatcher{text: "content"}, client, records)

	_, err := svc.Summarize(context.Background(), ingest.Request{Text: "content"})
	require.Error(t, err)
	require.True(t, ingest.IsKind(err, ingest.KindSummarizationError))
}

func TestSummarizeDefaultsLanguageAndFormat(t *testing.T) {
	client := &stubChatClient{completionResp: completion("A summary.")}
	records := history.NewBuffer(5)
	svc := newTestService(&stubDispatcher{text: "content"}, client, records)

	resp, err := svc.Summarize(context.Background(), ingest.Request{Text: "content"})
	require.NoError(t, err)
	require.Equal(t, "English", resp.Language)

	prompt := client.lastRequest.Messages[0].Content
	require.Contains(t, prompt, "in English")
	require.Contains(t, prompt, "~200 words max")
	require.Contains(t, prompt, "as a paragraph")
}

func TestHistoryAndClear(t *testing.T) {
	client := &stubChatClient{completionResp: completion("A summary.")}
	records := history.NewBuffer(5)
	svc := newTestService(&stubDispatcher{text: "content"}, client, records)

	for i := 0; i < 3; i++ {
		_, err := svc.Summarize(context.Background(), ingest.Request{Text: "content"})
		require.NoError(t, err)
	}
	require.Len(t, svc.History(), 3)

	require.Empty(t, svc.ClearHistory())
	require.Empty(t, svc.History())
}
