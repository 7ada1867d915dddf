package conversation

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	domainChat "github.com/amica/backend/internal/domain/chat"
	domainConversation "github.com/amica/backend/internal/domain/conversation"
	"github.com/amica/backend/internal/infrastructure/log"
)

// Store 客户端会话存储
// 每次修改后整体持久化，启动时从仓储恢复并选中第一个会话
type Store struct {
	repo   domainConversation.Repository
	logger *slog.Logger

	mu            sync.Mutex
	conversations []*domainConversation.Conversation
	currentID     string

	now   func() time.Time
	newID func() string
}

// nowMillis 毫秒精度的当前时间，与持久化的 ISO 格式一致
func nowMillis() time.Time {
	return time.Now().Truncate(time.Millisecond)
}

// NewStore 创建存储并恢复已保存的会话
func NewStore(repo domainConversation.Repository) (*Store, error) {
	s := &Store{
		repo:   repo,
		logger: log.NewModuleLogger("conversation", "store"),
		now:    nowMillis,
		newID:  func() string { return uuid.New().String() },
	}

	convs, err := repo.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load conversations: %w", err)
	}
	s.conversations = convs
	if len(convs) > 0 {
		s.currentID = convs[0].ID
	}

	s.logger.Debug("Conversations restored", "count", len(convs))
	return s, nil
}

// Create 新建会话，放在列表最前并设为当前
func (s *Store) Create() (*domainConversation.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := s.createLocked(domainConversation.DefaultTitle)
	return conv.Clone(), s.persistLocked()
}

func (s *Store) createLocked(title string) *domainConversation.Conversation {
	now := s.now()
	conv := &domainConversation.Conversation{
		ID:        s.newID(),
		Title:     title,
		Messages:  []*domainConversation.Message{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.conversations = append([]*domainConversation.Conversation{conv}, s.conversations...)
	s.currentID = conv.ID
	return conv
}

// CreateWithGreeting 新建带一条助手消息的会话
func (s *Store) CreateWithGreeting(title, greeting string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := s.createLocked(title)
	conv.Append(&domainConversation.Message{
		ID:        s.newID(),
		Role:      domainChat.RoleAssistant,
		Content:   greeting,
		Timestamp: conv.CreatedAt,
	})
	return s.persistLocked()
}

// Select 切换当前会话
func (s *Store) Select(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findLocked(id) == nil {
		return domainConversation.ErrNotFound
	}
	s.currentID = id
	return nil
}

// Delete 删除会话；删除当前会话时选中剩余的第一个
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, c := range s.conversations {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domainConversation.ErrNotFound
	}

	s.conversations = append(s.conversations[:idx:idx], s.conversations[idx+1:]...)
	if s.currentID == id {
		s.currentID = ""
		if len(s.conversations) > 0 {
			s.currentID = s.conversations[0].ID
		}
	}
	return s.persistLocked()
}

// Append 向会话追加一条消息
func (s *Store) Append(id string, role domainChat.Role, content string) (*domainConversation.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := s.findLocked(id)
	if conv == nil {
		return nil, domainConversation.ErrNotFound
	}

	msg := &domainConversation.Message{
		ID:        s.newID(),
		Role:      role,
		Content:   content,
		Timestamp: s.now(),
	}
	conv.Append(msg)
	return msg, s.persistLocked()
}

// SetSummary 替换会话摘要
func (s *Store) SetSummary(id, summary string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := s.findLocked(id)
	if conv == nil {
		return domainConversation.ErrNotFound
	}
	conv.ConversationSummary = summary
	conv.UpdatedAt = s.now()
	return s.persistLocked()
}

// Current 返回当前会话快照，没有时返回 nil
func (s *Store) Current() *domainConversation.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	if conv := s.findLocked(s.currentID); conv != nil {
		return conv.Clone()
	}
	return nil
}

// Get 按 ID 返回会话快照
func (s *Store) Get(id string) (*domainConversation.Conversation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if conv := s.findLocked(id); conv != nil {
		return conv.Clone(), true
	}
	return nil, false
}

// List 返回全部会话快照（最新创建的在前）
func (s *Store) List() []*domainConversation.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domainConversation.Conversation, 0, len(s.conversations))
	for _, c := range s.conversations {
		out = append(out, c.Clone())
	}
	return out
}

func (s *Store) findLocked(id string) *domainConversation.Conversation {
	if id == "" {
		return nil
	}
	for _, c := range s.conversations {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// persistLocked 持久化完整列表，列表为空时也会写入
func (s *Store) persistLocked() error {
	if err := s.repo.SaveAll(s.conversations); err != nil {
		s.logger.Error("Failed to persist conversations",
			"count", len(s.conversations),
			"error", err,
		)
		return fmt.Errorf("failed to persist conversations: %w", err)
	}
	return nil
}
