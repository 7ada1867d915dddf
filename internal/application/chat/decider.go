package chat

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	domainChat "github.com/amica/backend/internal/domain/chat"
	"github.com/amica/backend/internal/infrastructure/config"
	"github.com/amica/backend/internal/infrastructure/log"
	"github.com/amica/backend/internal/infrastructure/openai"
)

// fallbackQueryLimit 失败放行时查询词的最大长度
const fallbackQueryLimit = 100

// SearchDecider 判断一条用户消息是否需要网页搜索
type SearchDecider struct {
	llm     ChatCompleter
	model   string
	prompts TemplateSource
	logger  *slog.Logger
}

// NewSearchDecider 创建搜索决策器
func NewSearchDecider(llm ChatCompleter, cfg *config.OpenAIConfig, prompts TemplateSource) *SearchDecider {
	return &SearchDecider{
		llm:     llm,
		model:   cfg.AuxModel,
		prompts: prompts,
		logger:  log.NewModuleLogger("chat", "search_decider"),
	}
}

// Decide 调用轻量模型做决策
// 任何失败都按需要搜索处理，查询词为截断后的原文
func (d *SearchDecider) Decide(ctx context.Context, utterance string) domainChat.SearchDecision {
	failOpen := domainChat.SearchDecision{
		Search: true,
		Query:  domainChat.Truncate(strings.TrimSpace(utterance), fallbackQueryLimit),
	}

	resp, err := d.llm.CreateChatCompletion(ctx, openai.ChatRequest{
		Model: d.model,
		Messages: []openai.ChatMessage{
			{Role: string(domainChat.RoleSystem), Content: d.prompts.Get().SearchDecision},
			{Role: string(domainChat.RoleUser), Content: utterance},
		},
		Temperature: openai.Float(0),
		MaxTokens:   100,
	})
	if err != nil {
		d.logger.Warn("Search decision failed, searching anyway",
			"error", err,
		)
		return failOpen
	}

	decision, ok := parseDecision(resp.Text())
	if !ok {
		d.logger.Warn("Unparseable search decision, searching anyway",
			"output", domainChat.Truncate(resp.Text(), 200),
		)
		return failOpen
	}
	if decision.Search && strings.TrimSpace(decision.Query) == "" {
		decision.Query = failOpen.Query
	}

	d.logger.Debug("Search decision",
		"search", decision.Search,
		"query", decision.Query,
	)
	return decision
}

// parseDecision 提取文本中第一个 JSON 对象
func parseDecision(text string) (domainChat.SearchDecision, bool) {
	start := strings.Index(text, "{")
	if start < 0 {
		return domainChat.SearchDecision{}, false
	}

	var raw struct {
		Search *bool  `json:"search"`
		Query  string `json:"query"`
	}
	// Decoder 只读取第一个完整值，忽略其后的文本
	if err := json.NewDecoder(strings.NewReader(text[start:])).Decode(&raw); err != nil {
		return domainChat.SearchDecision{}, false
	}
	if raw.Search == nil {
		return domainChat.SearchDecision{}, false
	}
	return domainChat.SearchDecision{
		Search: *raw.Search,
		Query:  strings.TrimSpace(raw.Query),
	}, true
}
