package mcp

import (
	"context"
	"log/slog"
	"net/http"

	domainChat "github.com/amica/backend/internal/domain/chat"
	"github.com/amica/backend/internal/infrastructure/log"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// TurnRunner 执行一轮对话
type TurnRunner interface {
	Run(ctx context.Context, req *domainChat.TurnRequest) (*domainChat.TurnResult, error)
}

// WebContextGatherer 为一句话收集网页上下文
type WebContextGatherer interface {
	GatherWebContext(ctx context.Context, utterance string) []domainChat.WebSource
}

// MCPServer MCP 服务器
type MCPServer struct {
	server  *mcp.Server
	handler http.Handler
	runner  TurnRunner
	web     WebContextGatherer
	logger  *slog.Logger
}

// NewServer 创建 MCP 服务器
func NewServer(runner TurnRunner, web WebContextGatherer) *MCPServer {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "amica",
			Version: "0.1.0",
		},
		nil, // 使用默认能力
	)

	mcpServer := &MCPServer{
		server: server,
		runner: runner,
		web:    web,
		logger: log.NewModuleLogger("mcp", "server"),
	}

	// 注册工具：amica_chat
	mcp.AddTool(server, &mcp.Tool{
		Name: "amica_chat",
		Description: `Run one conversational turn with AMICA, the Italian assistant. Stateless: send the full history every time.
Parameters:
- messages (array, required): Ordered conversation, each item {role: "user"|"assistant", content: string}. The last user message is answered.
- conversation_summary (string, optional): Running summary returned by the previous turn.

Returns: the assistant message, the updated conversation summary, whether web context was used, token usage and the cycle count.`,
	}, mcpServer.chatTool)

	// 注册工具：web_context
	mcp.AddTool(server, &mcp.Tool{
		Name: "web_context",
		Description: `Collect the web context AMICA would inject for an utterance. Links in the text are read directly (at most 2); otherwise a search decision is made and, if needed, a web search runs.
Parameters:
- utterance (string, required): The user message.

Returns: the list of sources (kind "url" or "search", origin and content) and a web_access flag.`,
	}, mcpServer.webContextTool)

	// 创建 SSE Handler
	mcpServer.handler = mcp.NewSSEHandler(
		func(r *http.Request) *mcp.Server {
			// 每个请求返回同一个服务器实例
			return server
		},
		nil, // SSEOptions，使用默认值
	)

	return mcpServer
}

// GetHandler 获取 HTTP Handler（用于集成到 HTTP 服务器）
func (s *MCPServer) GetHandler() http.Handler {
	return s.handler
}

// Start 启动服务器
// HTTP/SSE 模式下由 HTTP 服务器统一管理，这里只记录就绪状态
func (s *MCPServer) Start() error {
	s.logger.Info("MCP server ready", "transport", "sse", "path", "/mcp/sse")
	return nil
}

// Stop 停止服务器
func (s *MCPServer) Stop() error {
	return nil
}
