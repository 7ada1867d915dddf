// @title AMICA API
// @version 1.0
// @description AMICA 意大利语助手后端：对话与语音合成
// @host localhost:3001
// @BasePath /api
// @schemes http
package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/amica/backend/internal/infrastructure/config"
	applog "github.com/amica/backend/internal/infrastructure/log"
	"github.com/amica/backend/internal/infrastructure/singleton"
	"github.com/amica/backend/internal/wire"
)

func main() {
	// 初始化日志系统
	applog.Init(nil)

	// 加载配置获取端口
	cfg := config.NewConfig()
	port := cfg.Server.HTTPPort

	// 单例锁检查：尝试获取端口锁
	listener, err := singleton.CheckAndLock(port)
	if err != nil {
		if errors.Is(err, singleton.ErrUnhealthy) {
			log.Fatalf("port %s is used by another program: %v", port, err)
		}
		log.Fatalf("singleton check failed: %v", err)
	}
	if listener == nil {
		// 已有实例运行，直接退出
		log.Printf("AMICA is already running on %s, exiting", port)
		os.Exit(0)
	}
	// 关闭临时 listener，实际监听由 HTTP 服务器负责
	_ = listener.Close()

	if cfg.OpenAI.APIKey == "" {
		applog.GetLogger().Warn("OPENAI_API_KEY is not set, /api/chat and /api/tts will return 500")
	}

	// Wire 生成的初始化函数
	app, cleanup, err := wire.InitializeAll()
	if err != nil {
		applog.GetLogger().Error("Failed to initialize application",
			"error", err,
		)
		os.Exit(1)
	}
	defer cleanup()

	// 启动所有服务
	if err := app.Start(); err != nil {
		applog.GetLogger().Error("Failed to start application",
			"error", err,
		)
		cleanup()
		os.Exit(1)
	}

	// 优雅关闭
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	applog.GetLogger().Info("Shutting down application...")
	if err := app.Stop(); err != nil {
		applog.GetLogger().Error("Error during application shutdown",
			"error", err,
		)
	}
	applog.GetLogger().Info("Application stopped")
}
