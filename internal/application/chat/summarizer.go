package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	domainChat "github.com/amica/backend/internal/domain/chat"
	"github.com/amica/backend/internal/infrastructure/config"
	"github.com/amica/backend/internal/infrastructure/log"
	"github.com/amica/backend/internal/infrastructure/openai"
)

const (
	// summarySeparator 新旧摘要之间的分隔符
	summarySeparator = "\n\n---\n\n"
	// recentExchange 不参与摘要的最近消息数（最后一问一答）
	recentExchange = 2
)

// ShouldSummarize 每满 window 轮触发一次摘要
func ShouldSummarize(cycleCount, messageCount, window int) bool {
	if window <= 0 {
		return false
	}
	return cycleCount > 0 && cycleCount%window == 0 && messageCount > recentExchange
}

// OlderMessages 除最近一次交流外的全部消息
func OlderMessages(messages []domainChat.Message) []domainChat.Message {
	if len(messages) <= recentExchange {
		return nil
	}
	return messages[:len(messages)-recentExchange]
}

// CombineSummary 将新摘要追加到旧摘要之后
func CombineSummary(prior, next string) string {
	if prior == "" {
		return next
	}
	return prior + summarySeparator + next
}

// Summarizer 对话摘要器
type Summarizer struct {
	llm     ChatCompleter
	model   string
	prompts TemplateSource
	logger  *slog.Logger
}

// NewSummarizer 创建摘要器
func NewSummarizer(llm ChatCompleter, cfg *config.OpenAIConfig, prompts TemplateSource) *Summarizer {
	return &Summarizer{
		llm:     llm,
		model:   cfg.AuxModel,
		prompts: prompts,
		logger:  log.NewModuleLogger("chat", "summarizer"),
	}
}

// Summarize 摘要 older 并与 prior 合并
// 出错时由调用方保留 prior
func (s *Summarizer) Summarize(ctx context.Context, older []domainChat.Message, prior string) (string, error) {
	if len(older) == 0 {
		return prior, nil
	}

	resp, err := s.llm.CreateChatCompletion(ctx, openai.ChatRequest{
		Model: s.model,
		Messages: []openai.ChatMessage{
			{Role: string(domainChat.RoleSystem), Content: s.prompts.Get().Summarizer},
			{Role: string(domainChat.RoleUser), Content: transcript(older)},
		},
		Temperature: openai.Float(0.3),
		MaxTokens:   600,
	})
	if err != nil {
		return "", fmt.Errorf("summarize conversation: %w", err)
	}

	next := strings.TrimSpace(resp.Text())
	if next == "" {
		return "", errors.New("summarize conversation: empty summary")
	}

	s.logger.Info("Conversation summarized",
		"messages", len(older),
		"summary_chars", len([]rune(next)),
	)
	return CombineSummary(prior, next), nil
}

// transcript 将消息渲染为对话文本
func transcript(messages []domainChat.Message) string {
	var sb strings.Builder
	for _, m := range messages {
		speaker := "Utente"
		if m.Role == domainChat.RoleAssistant {
			speaker = "AMICA"
		}
		sb.WriteString(speaker)
		sb.WriteString(": ")
		sb.WriteString(m.Content)
		sb.WriteString("\n")
	}
	return sb.String()
}
