package chat

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	domainChat "github.com/amica/backend/internal/domain/chat"
	"github.com/amica/backend/internal/infrastructure/config"
	"github.com/amica/backend/internal/infrastructure/openai"
)

var (
	italianWeekdays = [...]string{"domenica", "lunedì", "martedì", "mercoledì", "giovedì", "venerdì", "sabato"}
	italianMonths   = [...]string{"gennaio", "febbraio", "marzo", "aprile", "maggio", "giugno",
		"luglio", "agosto", "settembre", "ottobre", "novembre", "dicembre"}
)

// Prompt 发往模型的语义 prompt，第一条为系统消息
type Prompt struct {
	Messages []openai.ChatMessage
}

// Instructions 系统消息内容
func (p Prompt) Instructions() string {
	if len(p.Messages) == 0 || p.Messages[0].Role != string(domainChat.RoleSystem) {
		return ""
	}
	return p.Messages[0].Content
}

// Contents 所有消息文本，用于 token 估算
func (p Prompt) Contents() []string {
	out := make([]string, 0, len(p.Messages))
	for _, m := range p.Messages {
		out = append(out, m.Content)
	}
	return out
}

// PromptBuilder 组装 prompt：系统提示、摘要、最近历史、网页上下文、当前消息
type PromptBuilder struct {
	prompts      TemplateSource
	historyLimit int
	location     *time.Location
	now          func() time.Time
}

// NewPromptBuilder 创建 prompt 构建器
func NewPromptBuilder(prompts TemplateSource, cfg *config.MemoryConfig) *PromptBuilder {
	loc, err := time.LoadLocation("Europe/Rome")
	if err != nil {
		loc = time.UTC
	}
	cycles := cfg.RecentCycles
	if cycles <= 0 {
		cycles = 20
	}
	return &PromptBuilder{
		prompts:      prompts,
		historyLimit: cycles * 2,
		location:     loc,
		now:          time.Now,
	}
}

// Build 组装 prompt
func (b *PromptBuilder) Build(req *domainChat.TurnRequest, summary string, sources []domainChat.WebSource) Prompt {
	tpl := b.prompts.Get()

	latest := req.LatestUserIndex()
	history := req.Messages[:latest]
	if len(history) > b.historyLimit {
		history = history[len(history)-b.historyLimit:]
	}

	messages := make([]openai.ChatMessage, 0, len(history)+4)
	messages = append(messages, openai.ChatMessage{
		Role:    string(domainChat.RoleSystem),
		Content: b.systemPrompt(tpl.Persona, tpl.DateLine, tpl.Capabilities),
	})

	if summary != "" {
		messages = append(messages, openai.ChatMessage{
			Role:    string(domainChat.RoleSystem),
			Content: tpl.SummaryHeader + "\n" + summary,
		})
	}

	for _, m := range history {
		messages = append(messages, openai.ChatMessage{Role: string(m.Role), Content: m.Content})
	}

	if len(sources) > 0 {
		messages = append(messages, openai.ChatMessage{
			Role:    string(domainChat.RoleSystem),
			Content: webContextBlock(tpl.WebContextHeader, sources),
		})
	}

	messages = append(messages, openai.ChatMessage{
		Role:    string(domainChat.RoleUser),
		Content: req.Messages[latest].Content,
	})

	return Prompt{Messages: messages}
}

func (b *PromptBuilder) systemPrompt(persona, dateLine, capabilities string) string {
	parts := []string{strings.TrimSpace(persona)}
	if dateLine != "" {
		parts = append(parts, fmt.Sprintf(dateLine, formatItalianDate(b.now().In(b.location))))
	}
	if capabilities != "" {
		parts = append(parts, strings.TrimSpace(capabilities))
	}
	return strings.Join(parts, "\n\n")
}

// webContextBlock 每个来源带出处标题
func webContextBlock(header string, sources []domainChat.WebSource) string {
	var sb strings.Builder
	for i, src := range sources {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		origin := src.Origin
		if src.Kind == domainChat.SourceSearch {
			origin = "ricerca web \"" + src.Origin + "\""
		}
		sb.WriteString(fmt.Sprintf(header, origin))
		sb.WriteString("\n")
		sb.WriteString(src.Content)
	}
	return sb.String()
}

// formatItalianDate 形如 "giovedì 15 ottobre 2026, 14:05"
func formatItalianDate(t time.Time) string {
	return fmt.Sprintf("%s %d %s %d, %02d:%02d",
		italianWeekdays[t.Weekday()],
		t.Day(),
		italianMonths[t.Month()-1],
		t.Year(),
		t.Hour(),
		t.Minute(),
	)
}
