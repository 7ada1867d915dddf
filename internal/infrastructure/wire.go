package infrastructure

import (
	"github.com/amica/backend/internal/infrastructure/amicaapi"
	"github.com/amica/backend/internal/infrastructure/config"
	"github.com/amica/backend/internal/infrastructure/jina"
	"github.com/amica/backend/internal/infrastructure/openai"
	"github.com/amica/backend/internal/infrastructure/prompts"
	"github.com/amica/backend/internal/infrastructure/ratelimit"
	"github.com/amica/backend/internal/infrastructure/storage"
	"github.com/amica/backend/internal/infrastructure/tokenizer"
	"github.com/google/wire"
)

// ProviderSet Infrastructure 层服务端 ProviderSet
var ProviderSet = wire.NewSet(
	config.ProviderSet,
	openai.ProviderSet,
	jina.ProviderSet,
	tokenizer.ProviderSet,
	prompts.ProviderSet,
	ratelimit.ProviderSet,
)

// ClientProviderSet Infrastructure 层终端客户端 ProviderSet
var ClientProviderSet = wire.NewSet(
	config.ProviderSet,
	storage.ProviderSet,
	amicaapi.ProviderSet,
)
