//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/ai-summarizer/internal/bootstrap"
	"github.com/yanqian/ai-summarizer/internal/domain/ingest"
	"github.com/yanqian/ai-summarizer/internal/domain/summarizer"
	"github.com/yanqian/ai-summarizer/internal/infra/config"
	"github.com/yanqian/ai-summarizer/internal/infra/llm/chatgpt"
	httpiface "github.com/yanqian/ai-summarizer/internal/interface/http"
	"github.com/yanqian/ai-summarizer/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideSummarizerConfig,
		provideChatGPTClient,
		providePromptBuilder,
		provideHistoryBuffer,
		provideOCREngine,
		provideExtractors,
		provideDispatcher,
		summarizer.NewService,
		wire.Bind(new(summarizer.ChatClient), new(*chatgpt.Client)),
		wire.Bind(new(summarizer.Dispatcher), new(*ingest.Dispatcher)),
		httpiface.NewSummaryHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
