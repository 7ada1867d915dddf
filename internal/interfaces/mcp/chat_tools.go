package mcp

import (
	"context"
	"fmt"

	domainChat "github.com/amica/backend/internal/domain/chat"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ChatMessage 对话消息
type ChatMessage struct {
	Role    string `json:"role" jsonschema:"user 或 assistant"`
	Content string `json:"content" jsonschema:"消息内容"`
}

// ChatInput amica_chat 工具输入
type ChatInput struct {
	Messages            []ChatMessage `json:"messages" jsonschema:"完整对话历史，最后一条用户消息会被回答"`
	ConversationSummary string        `json:"conversation_summary,omitempty" jsonschema:"上一轮返回的会话摘要"`
}

// ChatOutput amica_chat 工具输出
type ChatOutput struct {
	Message             string            `json:"message" jsonschema:"助手回复"`
	ConversationSummary string            `json:"conversation_summary,omitempty" jsonschema:"更新后的会话摘要"`
	WebAccess           bool              `json:"web_access" jsonschema:"是否使用了网页上下文"`
	Usage               *domainChat.Usage `json:"usage,omitempty" jsonschema:"token 用量"`
	CycleCount          int               `json:"cycle_count" jsonschema:"对话轮数"`
}

// WebContextInput web_context 工具输入
type WebContextInput struct {
	Utterance string `json:"utterance" jsonschema:"用户消息"`
}

// WebContextOutput web_context 工具输出
type WebContextOutput struct {
	Sources   []domainChat.WebSource `json:"sources" jsonschema:"网页上下文来源"`
	WebAccess bool                   `json:"web_access" jsonschema:"是否获取到网页上下文"`
}

// chatTool 执行一轮对话
func (s *MCPServer) chatTool(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input ChatInput,
) (*mcp.CallToolResult, ChatOutput, error) {
	turn := &domainChat.TurnRequest{
		Messages:            make([]domainChat.Message, 0, len(input.Messages)),
		ConversationSummary: input.ConversationSummary,
	}
	for _, m := range input.Messages {
		turn.Messages = append(turn.Messages, domainChat.Message{
			Role:    domainChat.Role(m.Role),
			Content: m.Content,
		})
	}

	result, err := s.runner.Run(ctx, turn)
	if err != nil {
		s.logger.Warn("amica_chat tool failed", "error", err)
		return nil, ChatOutput{}, fmt.Errorf("chat turn failed: %w", err)
	}

	return nil, ChatOutput{
		Message:             result.Message,
		ConversationSummary: result.ConversationSummary,
		WebAccess:           result.WebAccess,
		Usage:               result.Usage,
		CycleCount:          result.CycleCount,
	}, nil
}

// webContextTool 收集网页上下文
func (s *MCPServer) webContextTool(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input WebContextInput,
) (*mcp.CallToolResult, WebContextOutput, error) {
	if input.Utterance == "" {
		return nil, WebContextOutput{}, fmt.Errorf("utterance is required")
	}

	sources := s.web.GatherWebContext(ctx, input.Utterance)
	if sources == nil {
		sources = []domainChat.WebSource{}
	}
	return nil, WebContextOutput{
		Sources:   sources,
		WebAccess: len(sources) > 0,
	}, nil
}
