package chat

import (
	"context"
	"strings"
	"sync"

	"github.com/amica/backend/internal/infrastructure/config"
	"github.com/amica/backend/internal/infrastructure/openai"
	"github.com/amica/backend/internal/infrastructure/prompts"
	"github.com/amica/backend/internal/infrastructure/tokenizer"
)

const (
	testAuxModel      = "aux-model"
	testChatModel     = "chat-model"
	testFallbackModel = "fallback-model"
)

// staticPrompts 固定返回内置模板
type staticPrompts struct{ t *prompts.Templates }

func (s staticPrompts) Get() *prompts.Templates { return s.t }

func defaultPrompts() staticPrompts { return staticPrompts{t: prompts.Defaults()} }

// fakeUpstream 模拟 OpenAI：按模型和系统提示区分决策、摘要、回退调用
type fakeUpstream struct {
	mu sync.Mutex

	credential bool

	decision     string
	decisionErr  error
	summary      string
	summaryErr   error
	responses    *openai.ResponsesResponse
	responsesErr error
	completion   string

	decisionCalls   int
	summaryCalls    int
	responsesCalls  int
	completionCalls int

	lastResponses  openai.ResponsesRequest
	lastCompletion openai.ChatRequest
	lastSummary    openai.ChatRequest
}

func (f *fakeUpstream) HasCredential() bool { return f.credential }

func (f *fakeUpstream) CreateChatCompletion(_ context.Context, req openai.ChatRequest) (*openai.ChatResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	reply := func(text string) *openai.ChatResponse {
		return &openai.ChatResponse{
			Choices: []openai.ChatChoice{{Message: openai.ChatMessage{Role: "assistant", Content: text}}},
		}
	}

	tpl := prompts.Defaults()
	switch {
	case req.Model == testAuxModel && req.Messages[0].Content == tpl.SearchDecision:
		f.decisionCalls++
		if f.decisionErr != nil {
			return nil, f.decisionErr
		}
		return reply(f.decision), nil
	case req.Model == testAuxModel && req.Messages[0].Content == tpl.Summarizer:
		f.summaryCalls++
		f.lastSummary = req
		if f.summaryErr != nil {
			return nil, f.summaryErr
		}
		return reply(f.summary), nil
	default:
		f.completionCalls++
		f.lastCompletion = req
		return reply(f.completion), nil
	}
}

func (f *fakeUpstream) CreateResponse(_ context.Context, req openai.ResponsesRequest) (*openai.ResponsesResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.responsesCalls++
	f.lastResponses = req
	if f.responsesErr != nil {
		return nil, f.responsesErr
	}
	return f.responses, nil
}

// fakeWeb 模拟 Jina Reader 与 Search
type fakeWeb struct {
	mu sync.Mutex

	pages       map[string]string
	searchText  string
	searchOK    bool
	readURLs    []string
	searchCalls []string
}

func (w *fakeWeb) Read(_ context.Context, pageURL string) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.readURLs = append(w.readURLs, pageURL)
	if content, ok := w.pages[pageURL]; ok {
		return content, nil
	}
	return "", context.DeadlineExceeded
}

func (w *fakeWeb) Search(_ context.Context, query string) (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.searchCalls = append(w.searchCalls, query)
	return w.searchText, w.searchOK
}

func textResponse(text string, webSearch bool) *openai.ResponsesResponse {
	resp := &openai.ResponsesResponse{
		Usage: &openai.ResponsesUsage{InputTokens: 100, OutputTokens: 20, TotalTokens: 120},
	}
	if webSearch {
		resp.Output = append(resp.Output, openai.OutputItem{Type: "web_search_call", Status: "completed"})
	}
	resp.Output = append(resp.Output, openai.OutputItem{
		Type:    "message",
		Role:    "assistant",
		Content: []openai.OutputContent{{Type: "output_text", Text: text}},
	})
	return resp
}

func newTestOrchestrator(up *fakeUpstream, web *fakeWeb) *Orchestrator {
	openaiCfg := &config.OpenAIConfig{
		ChatModel:     testChatModel,
		FallbackModel: testFallbackModel,
		AuxModel:      testAuxModel,
	}
	memory := &config.MemoryConfig{SummaryWindow: 20, RecentCycles: 20}
	tpl := defaultPrompts()

	return NewOrchestrator(
		up,
		NewSearchDecider(up, openaiCfg, tpl),
		NewContentFetcher(web),
		web,
		NewSummarizer(up, openaiCfg, tpl),
		NewPromptBuilder(tpl, memory),
		NewModelRouter(
			NewResponsesCaller(up, testChatModel),
			NewCompletionsCaller(up, testFallbackModel),
		),
		tokenizer.NewEstimator(),
		memory,
	)
}

func containsAny(messages []openai.InputItem, substr string) bool {
	for _, m := range messages {
		if strings.Contains(m.Content, substr) {
			return true
		}
	}
	return false
}
