package application

import (
	"github.com/amica/backend/internal/application/chat"
	"github.com/amica/backend/internal/application/conversation"
	"github.com/amica/backend/internal/application/preferences"
	"github.com/amica/backend/internal/application/speech"
	"github.com/amica/backend/internal/application/voice"
	"github.com/amica/backend/internal/infrastructure/amicaapi"
	"github.com/google/wire"
)

// ProviderSet Application 层服务端 ProviderSet
var ProviderSet = wire.NewSet(
	chat.ProviderSet,
	speech.ProviderSet,
)

// ClientProviderSet Application 层终端客户端 ProviderSet
var ClientProviderSet = wire.NewSet(
	conversation.ProviderSet,
	preferences.ProviderSet,
	voice.ProviderSet,
	// 会话回合通过 HTTP 调用服务端
	wire.Bind(new(conversation.ChatAPI), new(*amicaapi.Client)),
)
