package http

import (
	"context"
	"net/http"
	"time"

	"log/slog"

	"github.com/amica/backend/internal/infrastructure/config"
	"github.com/amica/backend/internal/infrastructure/log"
	"github.com/amica/backend/internal/infrastructure/ratelimit"
	"github.com/amica/backend/internal/interfaces/http/handler"
	"github.com/amica/backend/internal/interfaces/http/middleware"
	"github.com/amica/backend/internal/interfaces/http/response"
	"github.com/amica/backend/internal/interfaces/mcp"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/amica/backend/docs" // Swagger docs
)

// HTTPServer HTTP 服务器
type HTTPServer struct {
	router   *gin.Engine
	httpPort string
	server   *http.Server
	logger   *slog.Logger
}

// NewServer 创建 HTTP 服务器
// limiter 与 mcpServer 可以为 nil
func NewServer(
	cfg *config.ServerConfig,
	chatHandler *handler.ChatHandler,
	ttsHandler *handler.TTSHandler,
	limiter ratelimit.Limiter,
	mcpServer *mcp.MCPServer,
) *HTTPServer {
	router := NewRouter(chatHandler, ttsHandler, limiter)

	// MCP SSE 端点
	if mcpServer != nil {
		router.Any("/mcp/sse", gin.WrapH(mcpServer.GetHandler()))
	}

	return &HTTPServer{
		router:   router,
		httpPort: cfg.HTTPPort,
		logger:   log.NewModuleLogger("http", "server"),
	}
}

// NewRouter 注册路由
func NewRouter(
	chatHandler *handler.ChatHandler,
	ttsHandler *handler.TTSHandler,
	limiter ratelimit.Limiter,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.CORS())

	// 同一路径的其他方法返回 405
	router.HandleMethodNotAllowed = true
	router.NoMethod(response.MethodNotAllowed)

	api := router.Group("/api")
	api.Use(middleware.RateLimit(limiter), middleware.EnsureUTF8Body())
	{
		api.POST("/chat", chatHandler.Chat)
		api.OPTIONS("/chat", handler.Preflight)

		api.POST("/tts", ttsHandler.Synthesize)
		api.OPTIONS("/tts", handler.Preflight)
	}

	// 健康检查
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return router
}

// Start 启动服务器
func (s *HTTPServer) Start() error {
	s.server = &http.Server{
		Addr:              s.httpPort,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("HTTP server starting",
		"port", s.httpPort,
	)

	return s.server.ListenAndServe()
}

// Shutdown 优雅关闭
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// Stop 停止服务器
func (s *HTTPServer) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.Shutdown(ctx)
}
