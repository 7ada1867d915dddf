package conversation

import (
	"context"
	"log/slog"
	"strings"

	domainChat "github.com/amica/backend/internal/domain/chat"
	domainConversation "github.com/amica/backend/internal/domain/conversation"
	"github.com/amica/backend/internal/infrastructure/log"
)

const (
	// ApologyMessage 调用失败时追加的助手消息
	ApologyMessage = "Mi dispiace, si è verificato un errore nella comunicazione. Riprova tra qualche istante."

	// WelcomeTitle 安装后欢迎会话的标题
	WelcomeTitle = "Benvenuto!"
	// WelcomeMessage 安装后欢迎会话的第一条消息
	WelcomeMessage = "Perfetto! Ora sono sempre con te. 💛\n\nMi trovi sulla tua schermata home, pronta quando vuoi parlare. Non devi più cercarmi - sono qui, a un tap di distanza.\n\nCosa posso fare per te oggi?"
)

// ChatAPI /api/chat 客户端
type ChatAPI interface {
	Chat(ctx context.Context, req *domainChat.TurnRequest) (*domainChat.TurnResult, error)
}

// Reply 一轮发送的结果
type Reply struct {
	ConversationID string
	Message        *domainConversation.Message
	WebAccess      bool
	// Failed 为 true 时 Message 是道歉消息
	Failed bool
	Err    error
}

// Session 客户端对话回合
type Session struct {
	store  *Store
	api    ChatAPI
	logger *slog.Logger
}

// NewSession 创建会话回合处理器
func NewSession(store *Store, api ChatAPI) *Session {
	return &Session{
		store:  store,
		api:    api,
		logger: log.NewModuleLogger("conversation", "session"),
	}
}

// Send 发送一条用户消息
// 没有当前会话时自动新建；调用失败时追加道歉消息，返回的 error 仅表示本地持久化失败
func (s *Session) Send(ctx context.Context, text string) (*Reply, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domainConversation.ErrEmptyMessage
	}

	conv := s.store.Current()
	if conv == nil {
		created, err := s.store.Create()
		if err != nil {
			return nil, err
		}
		conv = created
	}
	ctx = log.WithConversationID(ctx, conv.ID)

	if _, err := s.store.Append(conv.ID, domainChat.RoleUser, text); err != nil {
		return nil, err
	}

	// 重新读取，包含刚追加的用户消息
	current, ok := s.store.Get(conv.ID)
	if !ok {
		return nil, domainConversation.ErrNotFound
	}

	result, apiErr := s.api.Chat(ctx, &domainChat.TurnRequest{
		Messages:            current.WireMessages(),
		ConversationSummary: current.ConversationSummary,
	})
	if apiErr != nil {
		log.FromContext(ctx, s.logger).Warn("Chat request failed",
			"error", apiErr,
		)
		msg, err := s.store.Append(conv.ID, domainChat.RoleAssistant, ApologyMessage)
		if err != nil {
			return nil, err
		}
		return &Reply{ConversationID: conv.ID, Message: msg, Failed: true, Err: apiErr}, nil
	}

	msg, err := s.store.Append(conv.ID, domainChat.RoleAssistant, result.Message)
	if err != nil {
		return nil, err
	}
	if result.ConversationSummary != "" && result.ConversationSummary != current.ConversationSummary {
		if err := s.store.SetSummary(conv.ID, result.ConversationSummary); err != nil {
			return nil, err
		}
	}

	return &Reply{ConversationID: conv.ID, Message: msg, WebAccess: result.WebAccess}, nil
}

// Welcome 没有当前会话时创建欢迎会话，返回是否创建
func (s *Session) Welcome() (bool, error) {
	if s.store.Current() != nil {
		return false, nil
	}
	return true, s.store.CreateWithGreeting(WelcomeTitle, WelcomeMessage)
}
