package preferences

import "github.com/google/wire"

// ProviderSet 偏好服务 ProviderSet
var ProviderSet = wire.NewSet(NewService)
