package chat

import (
	"context"
	"log/slog"
	"strings"
	"time"

	domainChat "github.com/amica/backend/internal/domain/chat"
	"github.com/amica/backend/internal/infrastructure/config"
	"github.com/amica/backend/internal/infrastructure/log"
)

// EmptyReplyFallback 模型返回空文本时的替代回复
const EmptyReplyFallback = "Mi dispiace, non sono riuscita a elaborare una risposta."

// Decider 搜索决策
type Decider interface {
	Decide(ctx context.Context, utterance string) domainChat.SearchDecision
}

// Fetcher 链接抓取
type Fetcher interface {
	FetchAll(ctx context.Context, urls []string) []domainChat.WebSource
}

// ConversationSummarizer 对话摘要
type ConversationSummarizer interface {
	Summarize(ctx context.Context, older []domainChat.Message, prior string) (string, error)
}

// Orchestrator 单轮对话编排：
// 校验 -> 链接抓取或搜索决策 -> 按需摘要 -> 组装 prompt -> 调用模型（必要时回退）-> 返回
type Orchestrator struct {
	credential    CredentialChecker
	decider       Decider
	fetcher       Fetcher
	searcher      WebSearcher
	summarizer    ConversationSummarizer
	builder       *PromptBuilder
	caller        ModelCaller
	tokens        TokenCounter
	summaryWindow int
	logger        *slog.Logger
}

// NewOrchestrator 创建编排器
func NewOrchestrator(
	credential CredentialChecker,
	decider Decider,
	fetcher Fetcher,
	searcher WebSearcher,
	summarizer ConversationSummarizer,
	builder *PromptBuilder,
	caller ModelCaller,
	tokens TokenCounter,
	memory *config.MemoryConfig,
) *Orchestrator {
	window := memory.SummaryWindow
	if window <= 0 {
		window = 20
	}
	return &Orchestrator{
		credential:    credential,
		decider:       decider,
		fetcher:       fetcher,
		searcher:      searcher,
		summarizer:    summarizer,
		builder:       builder,
		caller:        caller,
		tokens:        tokens,
		summaryWindow: window,
		logger:        log.NewModuleLogger("chat", "orchestrator"),
	}
}

// Run 执行一轮对话
func (o *Orchestrator) Run(ctx context.Context, req *domainChat.TurnRequest) (*domainChat.TurnResult, error) {
	start := time.Now()
	logger := log.FromContext(ctx, o.logger)

	if err := req.Validate(); err != nil {
		return nil, err
	}
	if !o.credential.HasCredential() {
		return nil, domainChat.ErrMissingCredential
	}

	cycleCount := domainChat.CycleCount(req.Messages)
	utterance := req.Messages[req.LatestUserIndex()].Content

	sources := o.GatherWebContext(ctx, utterance)

	summary := req.ConversationSummary
	if ShouldSummarize(cycleCount, len(req.Messages), o.summaryWindow) {
		updated, err := o.summarizer.Summarize(ctx, OlderMessages(req.Messages), summary)
		if err != nil {
			logger.Warn("Summarization failed, keeping previous summary",
				"cycle_count", cycleCount,
				"error", err,
			)
		} else {
			summary = updated
		}
	}

	prompt := o.builder.Build(req, summary, sources)

	reply, err := o.caller.Call(ctx, prompt)
	if err != nil {
		logger.Error("Model call failed",
			"cycle_count", cycleCount,
			"error", err,
		)
		return nil, err
	}

	text := strings.TrimSpace(reply.Text)
	if text == "" {
		text = EmptyReplyFallback
	}

	usage := reply.Usage
	if usage == nil {
		// 上游未返回用量时用本地估算
		promptTokens := o.tokens.CountMessages(prompt.Contents())
		completionTokens := o.tokens.CountTokens(text)
		usage = &domainChat.Usage{
			PromptTokens:     promptTokens,
			CompletionTokens: completionTokens,
			TotalTokens:      promptTokens + completionTokens,
		}
	}

	result := &domainChat.TurnResult{
		Message:             text,
		ConversationSummary: summary,
		WebAccess:           len(sources) > 0 || reply.UsedWebSearch,
		Usage:               usage,
		CycleCount:          cycleCount,
	}

	logger.Info("Turn completed",
		"cycle_count", cycleCount,
		"caller", reply.Caller,
		"web_sources", len(sources),
		"web_access", result.WebAccess,
		"total_tokens", usage.TotalTokens,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return result, nil
}

// GatherWebContext 链接优先：消息中有链接时只抓取链接，不做搜索决策
func (o *Orchestrator) GatherWebContext(ctx context.Context, utterance string) []domainChat.WebSource {
	if urls := ExtractURLs(utterance, MaxURLsPerTurn); len(urls) > 0 {
		return o.fetcher.FetchAll(ctx, urls)
	}

	decision := o.decider.Decide(ctx, utterance)
	if !decision.Search {
		return nil
	}

	text, ok := o.searcher.Search(ctx, decision.Query)
	if !ok {
		return nil
	}
	return []domainChat.WebSource{{
		Kind:    domainChat.SourceSearch,
		Origin:  decision.Query,
		Content: text,
	}}
}
