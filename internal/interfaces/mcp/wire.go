package mcp

import (
	appChat "github.com/amica/backend/internal/application/chat"
	"github.com/google/wire"
)

// ProviderSet MCP ProviderSet
var ProviderSet = wire.NewSet(
	NewServer,
	wire.Bind(new(TurnRunner), new(*appChat.Orchestrator)),
	wire.Bind(new(WebContextGatherer), new(*appChat.Orchestrator)),
)
