package conversation

import (
	"time"

	"github.com/amica/backend/internal/domain/chat"
)

const (
	// DefaultTitle 新建会话的默认标题
	DefaultTitle = "Nuova conversazione"

	// titleLimit 标题截取长度
	titleLimit = 30
)

// Message 会话中的一条消息，创建后不可修改
type Message struct {
	ID        string    `json:"id"`
	Role      chat.Role `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Conversation 会话实体
type Conversation struct {
	ID                  string     `json:"id"`
	Title               string     `json:"title"`
	Messages            []*Message `json:"messages"`
	ConversationSummary string     `json:"conversationSummary,omitempty"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

// Append 追加消息（只追加，不重排）
// 第一条用户消息会替换默认标题
func (c *Conversation) Append(msg *Message) {
	if len(c.Messages) == 0 && msg.Role == chat.RoleUser {
		c.Title = TitleFrom(msg.Content)
	}
	c.Messages = append(c.Messages, msg)
	c.UpdatedAt = msg.Timestamp
}

// CycleCount 用户消息数
func (c *Conversation) CycleCount() int {
	n := 0
	for _, m := range c.Messages {
		if m.Role == chat.RoleUser {
			n++
		}
	}
	return n
}

// WireMessages 转换为 /api/chat 的消息格式
func (c *Conversation) WireMessages() []chat.Message {
	out := make([]chat.Message, 0, len(c.Messages))
	for _, m := range c.Messages {
		out = append(out, chat.Message{Role: m.Role, Content: m.Content})
	}
	return out
}

// TitleFrom 由首条消息生成标题：前 30 个字符，超长时追加省略号
func TitleFrom(text string) string {
	runes := []rune(text)
	if len(runes) <= titleLimit {
		return text
	}
	return string(runes[:titleLimit]) + "..."
}

// Clone 深拷贝，消息本身不可变因此共享
func (c *Conversation) Clone() *Conversation {
	out := *c
	out.Messages = make([]*Message, len(c.Messages))
	copy(out.Messages, c.Messages)
	return &out
}
