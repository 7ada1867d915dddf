package jina

import "github.com/google/wire"

// ProviderSet Jina 客户端 ProviderSet
var ProviderSet = wire.NewSet(
	NewClient,
)
