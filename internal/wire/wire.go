//go:build wireinject
// +build wireinject

package wire

import (
	"github.com/amica/backend/internal/application"
	"github.com/amica/backend/internal/infrastructure"
	"github.com/amica/backend/internal/interfaces"
	"github.com/google/wire"
)

// InitializeAll 初始化服务端（HTTP + MCP）
func InitializeAll() (*App, func(), error) {
	wire.Build(
		// 按层组合 ProviderSet
		infrastructure.ProviderSet, // 基础设施层
		application.ProviderSet,    // 应用层
		interfaces.ProviderSet,     // 接口层
		NewApp,                     // 组合所有服务的应用结构
	)
	return nil, nil, nil
}

// InitializeClient 初始化终端客户端
func InitializeClient() (*Client, func(), error) {
	wire.Build(
		infrastructure.ClientProviderSet,
		application.ClientProviderSet,
		NewClient,
	)
	return nil, nil, nil
}
