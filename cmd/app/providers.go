package main

import (
	"log/slog"

	"github.com/yanqian/ai-summarizer/internal/domain/history"
	"github.com/yanqian/ai-summarizer/internal/domain/ingest"
	"github.com/yanqian/ai-summarizer/internal/domain/summarizer"
	"github.com/yanqian/ai-summarizer/internal/infra/config"
	"github.com/yanqian/ai-summarizer/internal/infra/extract"
	"github.com/yanqian/ai-summarizer/internal/infra/fetch"
	"github.com/yanqian/ai-summarizer/internal/infra/llm/chatgpt"
	"github.com/yanqian/ai-summarizer/internal/infra/ocr"
)

func provideSummarizerConfig(cfg *config.Config) summarizer.Config {
	return summarizer.Config{
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
	}
}

func provideChatGPTClient(cfg *config.Config) (*chatgpt.Client, error) {
	return chatgpt.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL)
}

func providePromptBuilder(cfg *config.Config) *summarizer.PromptBuilder {
	return summarizer.NewPromptBuilder(cfg.Summary.MaxPromptTokens, cfg.Summary.TokenizerEncoding)
}

func provideHistoryBuffer(cfg *config.Config) *history.Buffer {
	return history.NewBuffer(cfg.Summary.HistorySize)
}

func provideOCREngine(cfg *config.Config) *ocr.Engine {
	return ocr.NewEngine(cfg.Ingest.TesseractPath)
}

func provideExtractors(cfg *config.Config, engine *ocr.Engine) ingest.Extractors {
	return ingest.Extractors{
		PDF:   extract.NewPDFExtractor(engine),
		DOCX:  extract.NewDOCXExtractor(),
		Image: extract.NewImageExtractor(engine),
		Text:  extract.NewPlainTextExtractor(),
		URL:   fetch.NewClient(cfg.Ingest.FetchTimeout, cfg.Ingest.UserAgent),
	}
}

func provideDispatcher(cfg *config.Config, extractors ingest.Extractors, logger *slog.Logger) *ingest.Dispatcher {
	return ingest.NewDispatcher(extractors, cfg.Ingest.TempDir, logger)
}
