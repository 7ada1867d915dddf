package openai

import "github.com/google/wire"

// ProviderSet OpenAI 客户端 ProviderSet
var ProviderSet = wire.NewSet(
	NewClient,
)
