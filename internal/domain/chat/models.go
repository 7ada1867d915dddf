package chat

// Role 消息角色
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message 请求中的对话消息（线上格式）
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// TurnRequest 单轮对话请求
// 服务端不保存任何会话状态，历史与摘要每次都由客户端带回
type TurnRequest struct {
	Messages            []Message `json:"messages"`
	ConversationSummary string    `json:"conversationSummary,omitempty"`
}

// Usage 上游模型的 token 用量
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// TurnResult 单轮对话结果
type TurnResult struct {
	Message             string `json:"message"`
	ConversationSummary string `json:"conversationSummary,omitempty"`
	WebAccess           bool   `json:"webAccess"`
	Usage               *Usage `json:"usage,omitempty"`
	CycleCount          int    `json:"cycleCount"`
}

// SearchDecision 联网搜索决策
type SearchDecision struct {
	Search bool   `json:"search"`
	Query  string `json:"query"`
}

// 网页上下文来源类型
const (
	SourceURL    = "url"
	SourceSearch = "search"
)

// WebSource 注入到 prompt 的网页上下文来源
type WebSource struct {
	Kind    string `json:"kind"`   // SourceURL 或 SourceSearch
	Origin  string `json:"origin"` // URL 或搜索词
	Content string `json:"content"`
}

// Validate 校验请求
func (r *TurnRequest) Validate() error {
	if r.Messages == nil {
		return ErrInvalidRequest
	}
	hasUser := false
	for _, m := range r.Messages {
		switch m.Role {
		case RoleUser:
			hasUser = true
		case RoleAssistant:
		default:
			return ErrInvalidRequest
		}
	}
	if !hasUser {
		return ErrInvalidRequest
	}
	return nil
}

// LatestUserIndex 返回最后一条用户消息的下标，不存在时返回 -1
func (r *TurnRequest) LatestUserIndex() int {
	for i := len(r.Messages) - 1; i >= 0; i-- {
		if r.Messages[i].Role == RoleUser {
			return i
		}
	}
	return -1
}

// CycleCount 对话轮数（用户消息数）
func CycleCount(messages []Message) int {
	n := 0
	for _, m := range messages {
		if m.Role == RoleUser {
			n++
		}
	}
	return n
}

// Truncate 按字符（rune）截断文本
func Truncate(text string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
