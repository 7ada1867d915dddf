package chat

import (
	"context"
	"log/slog"

	domainChat "github.com/amica/backend/internal/domain/chat"
	"github.com/amica/backend/internal/infrastructure/config"
	"github.com/amica/backend/internal/infrastructure/log"
	"github.com/amica/backend/internal/infrastructure/openai"
)

const (
	modelTemperature = 0.7
	modelMaxTokens   = 2000
)

// ModelReply 模型回复
type ModelReply struct {
	Text          string
	UsedWebSearch bool
	Usage         *domainChat.Usage
	Caller        string
}

// ModelCaller 模型调用策略
type ModelCaller interface {
	Name() string
	Call(ctx context.Context, prompt Prompt) (*ModelReply, error)
}

// ResponsesCaller 通过 Responses API 调用，附带 web_search_preview 工具
type ResponsesCaller struct {
	client ResponseCreator
	model  string
}

// NewResponsesCaller 创建 Responses 调用策略
func NewResponsesCaller(client ResponseCreator, model string) *ResponsesCaller {
	return &ResponsesCaller{client: client, model: model}
}

// Name 策略名
func (c *ResponsesCaller) Name() string { return "responses" }

// Call 调用模型
func (c *ResponsesCaller) Call(ctx context.Context, prompt Prompt) (*ModelReply, error) {
	input := make([]openai.InputItem, 0, len(prompt.Messages))
	for i, m := range prompt.Messages {
		// 首条系统消息作为 instructions 发送
		if i == 0 && m.Role == string(domainChat.RoleSystem) {
			continue
		}
		input = append(input, openai.InputItem{Role: m.Role, Content: m.Content})
	}

	resp, err := c.client.CreateResponse(ctx, openai.ResponsesRequest{
		Model:           c.model,
		Instructions:    prompt.Instructions(),
		Input:           input,
		Tools:           []openai.Tool{{Type: openai.ToolWebSearchPreview}},
		Temperature:     openai.Float(modelTemperature),
		MaxOutputTokens: modelMaxTokens,
	})
	if err != nil {
		return nil, err
	}

	reply := &ModelReply{
		Text:          resp.Text(),
		UsedWebSearch: resp.UsedWebSearch(),
		Caller:        c.Name(),
	}
	if resp.Usage != nil {
		reply.Usage = &domainChat.Usage{
			PromptTokens:     resp.Usage.InputTokens,
			CompletionTokens: resp.Usage.OutputTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		}
	}
	return reply, nil
}

// CompletionsCaller 通过 Chat Completions 调用，不带搜索工具
type CompletionsCaller struct {
	client ChatCompleter
	model  string
}

// NewCompletionsCaller 创建 Chat Completions 调用策略
func NewCompletionsCaller(client ChatCompleter, model string) *CompletionsCaller {
	return &CompletionsCaller{client: client, model: model}
}

// Name 策略名
func (c *CompletionsCaller) Name() string { return "chat_completions" }

// Call 调用模型
func (c *CompletionsCaller) Call(ctx context.Context, prompt Prompt) (*ModelReply, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatRequest{
		Model:       c.model,
		Messages:    prompt.Messages,
		Temperature: openai.Float(modelTemperature),
		MaxTokens:   modelMaxTokens,
	})
	if err != nil {
		return nil, err
	}

	reply := &ModelReply{
		Text:   resp.Text(),
		Caller: c.Name(),
	}
	if resp.Usage != nil {
		reply.Usage = &domainChat.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		}
	}
	return reply, nil
}

// ModelRouter 先走主策略，探测到上游不支持该 API 形态时改用回退策略
// 每个请求独立探测，不缓存结果
type ModelRouter struct {
	primary  ModelCaller
	fallback ModelCaller
	probe    func(error) bool
	logger   *slog.Logger
}

// NewModelRouter 创建路由
func NewModelRouter(primary, fallback ModelCaller) *ModelRouter {
	return &ModelRouter{
		primary:  primary,
		fallback: fallback,
		probe:    openai.IsShapeUnsupported,
		logger:   log.NewModuleLogger("chat", "model_router"),
	}
}

// ProvideModelCaller 按配置组装 Responses 主策略与 Chat Completions 回退策略
func ProvideModelCaller(client *openai.Client, cfg *config.OpenAIConfig) ModelCaller {
	return NewModelRouter(
		NewResponsesCaller(client, cfg.ChatModel),
		NewCompletionsCaller(client, cfg.FallbackModel),
	)
}

// Name 策略名
func (r *ModelRouter) Name() string { return "router" }

// Call 调用模型
func (r *ModelRouter) Call(ctx context.Context, prompt Prompt) (*ModelReply, error) {
	reply, err := r.primary.Call(ctx, prompt)
	if err == nil {
		return reply, nil
	}
	if r.fallback == nil || !r.probe(err) {
		return nil, err
	}

	r.logger.Warn("Primary model API unsupported, falling back",
		"primary", r.primary.Name(),
		"fallback", r.fallback.Name(),
		"error", err,
	)
	return r.fallback.Call(ctx, prompt)
}
