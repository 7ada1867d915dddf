package voice

import "github.com/google/wire"

// ProviderSet 语音播放 ProviderSet
var ProviderSet = wire.NewSet(ProvidePlayer)
