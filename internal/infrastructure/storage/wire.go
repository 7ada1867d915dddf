package storage

import "github.com/google/wire"

// ProviderSet Storage 基础设施层 ProviderSet
var ProviderSet = wire.NewSet(
	ProvideDB,                 // 提供数据库连接
	NewLocalStorage,           // 本地键值存储
	NewConversationRepository, // 会话仓储
	NewPreferencesRepository,  // 偏好仓储
)
