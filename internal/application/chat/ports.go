package chat

import (
	"context"

	"github.com/amica/backend/internal/infrastructure/openai"
	"github.com/amica/backend/internal/infrastructure/prompts"
)

// ChatCompleter Chat Completions 调用
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatRequest) (*openai.ChatResponse, error)
}

// ResponseCreator Responses API 调用
type ResponseCreator interface {
	CreateResponse(ctx context.Context, req openai.ResponsesRequest) (*openai.ResponsesResponse, error)
}

// CredentialChecker 判断上游凭证是否已配置
type CredentialChecker interface {
	HasCredential() bool
}

// WebReader 抓取单个网页正文
type WebReader interface {
	Read(ctx context.Context, pageURL string) (string, error)
}

// WebSearcher 网页搜索，失败时返回 ("", false)
type WebSearcher interface {
	Search(ctx context.Context, query string) (string, bool)
}

// TemplateSource 提供当前 prompt 模板
type TemplateSource interface {
	Get() *prompts.Templates
}

// TokenCounter token 估算
type TokenCounter interface {
	CountTokens(text string) int
	CountMessages(contents []string) int
}
