package ratelimit

import "github.com/google/wire"

// ProviderSet 限流 ProviderSet
var ProviderSet = wire.NewSet(
	ProvideLimiter,
)
