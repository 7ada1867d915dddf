package amicaapi

import "github.com/google/wire"

// ProviderSet AMICA 服务端客户端 ProviderSet
var ProviderSet = wire.NewSet(NewClient)
