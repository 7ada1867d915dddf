package chat

import (
	"github.com/google/wire"

	"github.com/amica/backend/internal/infrastructure/jina"
	"github.com/amica/backend/internal/infrastructure/openai"
	"github.com/amica/backend/internal/infrastructure/prompts"
	"github.com/amica/backend/internal/infrastructure/tokenizer"
)

// ProviderSet 对话编排 ProviderSet
var ProviderSet = wire.NewSet(
	NewSearchDecider,
	NewContentFetcher,
	NewSummarizer,
	NewPromptBuilder,
	ProvideModelCaller,
	NewOrchestrator,
	wire.Bind(new(ChatCompleter), new(*openai.Client)),
	wire.Bind(new(CredentialChecker), new(*openai.Client)),
	wire.Bind(new(WebReader), new(*jina.Client)),
	wire.Bind(new(WebSearcher), new(*jina.Client)),
	wire.Bind(new(TemplateSource), new(*prompts.Store)),
	wire.Bind(new(TokenCounter), new(*tokenizer.Estimator)),
	wire.Bind(new(Decider), new(*SearchDecider)),
	wire.Bind(new(Fetcher), new(*ContentFetcher)),
	wire.Bind(new(ConversationSummarizer), new(*Summarizer)),
)
