package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/amica/backend/internal/domain/chat"
	"github.com/amica/backend/internal/domain/conversation"
)

// isoLayout 与 JavaScript Date.toISOString 一致的时间格式
const isoLayout = "2006-01-02T15:04:05.000Z"

// storedMessage 持久化的消息格式
type storedMessage struct {
	ID        string `json:"id"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// storedConversation 持久化的会话格式
type storedConversation struct {
	ID                  string          `json:"id"`
	Title               string          `json:"title"`
	Messages            []storedMessage `json:"messages"`
	ConversationSummary string          `json:"conversationSummary,omitempty"`
	CreatedAt           string          `json:"createdAt"`
	UpdatedAt           string          `json:"updatedAt"`
}

// conversationRepository 会话仓储：整个列表以 JSON 数组存于 amica-conversations 键
type conversationRepository struct {
	store LocalStorage
}

// NewConversationRepository 创建会话仓储
func NewConversationRepository(store LocalStorage) conversation.Repository {
	return &conversationRepository{store: store}
}

var _ conversation.Repository = (*conversationRepository)(nil)

// LoadAll 读取全部会话，未保存过时返回空列表
func (r *conversationRepository) LoadAll() ([]*conversation.Conversation, error) {
	raw, ok, err := r.store.GetItem(KeyConversations)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return []*conversation.Conversation{}, nil
	}

	var stored []storedConversation
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return nil, fmt.Errorf("failed to decode conversations: %w", err)
	}

	out := make([]*conversation.Conversation, 0, len(stored))
	for _, sc := range stored {
		conv := &conversation.Conversation{
			ID:                  sc.ID,
			Title:               sc.Title,
			ConversationSummary: sc.ConversationSummary,
			CreatedAt:           parseISO(sc.CreatedAt),
			UpdatedAt:           parseISO(sc.UpdatedAt),
			Messages:            make([]*conversation.Message, 0, len(sc.Messages)),
		}
		for _, sm := range sc.Messages {
			conv.Messages = append(conv.Messages, &conversation.Message{
				ID:        sm.ID,
				Role:      chat.Role(sm.Role),
				Content:   sm.Content,
				Timestamp: parseISO(sm.Timestamp),
			})
		}
		out = append(out, conv)
	}
	return out, nil
}

// SaveAll 覆盖保存全部会话
func (r *conversationRepository) SaveAll(convs []*conversation.Conversation) error {
	stored := make([]storedConversation, 0, len(convs))
	for _, c := range convs {
		sc := storedConversation{
			ID:                  c.ID,
			Title:               c.Title,
			ConversationSummary: c.ConversationSummary,
			CreatedAt:           formatISO(c.CreatedAt),
			UpdatedAt:           formatISO(c.UpdatedAt),
			Messages:            make([]storedMessage, 0, len(c.Messages)),
		}
		for _, m := range c.Messages {
			sc.Messages = append(sc.Messages, storedMessage{
				ID:        m.ID,
				Role:      string(m.Role),
				Content:   m.Content,
				Timestamp: formatISO(m.Timestamp),
			})
		}
		stored = append(stored, sc)
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("failed to encode conversations: %w", err)
	}
	return r.store.SetItem(KeyConversations, string(data))
}

func formatISO(t time.Time) string {
	return t.UTC().Format(isoLayout)
}

// parseISO 解析 ISO 时间，无法解析时返回零值
func parseISO(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
