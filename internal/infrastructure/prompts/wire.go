package prompts

import "github.com/google/wire"

// ProviderSet prompt 模板 ProviderSet
var ProviderSet = wire.NewSet(
	NewStore,
)
