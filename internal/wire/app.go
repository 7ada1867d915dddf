package wire

import (
	"log/slog"

	applog "github.com/amica/backend/internal/infrastructure/log"
	"github.com/amica/backend/internal/infrastructure/prompts"
	"github.com/amica/backend/internal/interfaces"
)

// App 服务端主结构，组合所有服务
type App struct {
	HTTPServer *interfaces.HTTPServer
	MCPServer  *interfaces.MCPServer
	prompts    *prompts.Store
	logger     *slog.Logger
}

// NewApp 创建应用实例
func NewApp(
	httpServer *interfaces.HTTPServer,
	mcpServer *interfaces.MCPServer,
	promptStore *prompts.Store,
) *App {
	return &App{
		HTTPServer: httpServer,
		MCPServer:  mcpServer,
		prompts:    promptStore,
		logger:     applog.NewModuleLogger("app", "main"),
	}
}

// Start 启动所有服务
func (a *App) Start() error {
	a.logger.Info("Starting AMICA backend application")

	// 模板文件热更新，失败时继续使用已加载的模板
	if err := a.prompts.Start(); err != nil {
		a.logger.Warn("Prompt template watcher not started",
			"error", err,
		)
	}

	if err := a.MCPServer.Start(); err != nil {
		return err
	}

	// 启动 HTTP 服务器（goroutine）
	go func() {
		if err := a.HTTPServer.Start(); err != nil {
			a.logger.Error("HTTP server stopped",
				"error", err,
			)
		}
	}()

	a.logger.Info("AMICA backend application started successfully")
	return nil
}

// Stop 停止所有服务
func (a *App) Stop() error {
	a.logger.Info("Stopping AMICA backend application")

	if err := a.HTTPServer.Stop(); err != nil {
		a.logger.Error("Failed to stop HTTP server",
			"error", err,
		)
		return err
	}
	if err := a.MCPServer.Stop(); err != nil {
		a.logger.Error("Failed to stop MCP server",
			"error", err,
		)
		return err
	}

	a.prompts.Stop()

	a.logger.Info("AMICA backend application stopped")
	return nil
}
