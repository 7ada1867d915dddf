package speech

import (
	"github.com/google/wire"

	"github.com/amica/backend/internal/infrastructure/openai"
)

// ProviderSet 语音合成 ProviderSet
var ProviderSet = wire.NewSet(
	NewService,
	wire.Bind(new(Synthesizer), new(*openai.Client)),
)
