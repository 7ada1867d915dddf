package tokenizer

import "github.com/google/wire"

// ProviderSet tokenizer ProviderSet
var ProviderSet = wire.NewSet(
	NewEstimator,
)
