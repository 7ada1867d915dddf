package handler

import (
	appChat "github.com/amica/backend/internal/application/chat"
	"github.com/amica/backend/internal/application/speech"
	"github.com/google/wire"
)

// ProviderSet Handler ProviderSet
var ProviderSet = wire.NewSet(
	NewChatHandler,
	NewTTSHandler,
	wire.Bind(new(TurnRunner), new(*appChat.Orchestrator)),
	wire.Bind(new(SpeechSynthesizer), new(*speech.Service)),
)
