package conversation

import "github.com/google/wire"

// ProviderSet 客户端会话 ProviderSet
var ProviderSet = wire.NewSet(
	NewStore,
	NewSession,
)
