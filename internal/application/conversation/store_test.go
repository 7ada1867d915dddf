package conversation

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainChat "github.com/amica/backend/internal/domain/chat"
	domainConversation "github.com/amica/backend/internal/domain/conversation"
	"github.com/amica/backend/internal/infrastructure/storage"
)

// memoryRepo 内存仓储，记录保存次数
type memoryRepo struct {
	saved   []*domainConversation.Conversation
	saves   int
	saveErr error
}

func (r *memoryRepo) LoadAll() ([]*domainConversation.Conversation, error) {
	out := make([]*domainConversation.Conversation, 0, len(r.saved))
	for _, c := range r.saved {
		out = append(out, c.Clone())
	}
	return out, nil
}

func (r *memoryRepo) SaveAll(convs []*domainConversation.Conversation) error {
	r.saves++
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saved = make([]*domainConversation.Conversation, 0, len(convs))
	for _, c := range convs {
		r.saved = append(r.saved, c.Clone())
	}
	return nil
}

func newTestStore(t *testing.T, repo domainConversation.Repository) *Store {
	t.Helper()
	s, err := NewStore(repo)
	require.NoError(t, err)

	seq := 0
	clock := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	s.newID = func() string { seq++; return fmt.Sprintf("id-%d", seq) }
	s.now = func() time.Time { clock = clock.Add(time.Second); return clock }
	return s
}

func TestStore_CreatePrependsAndSelects(t *testing.T) {
	repo := &memoryRepo{}
	s := newTestStore(t, repo)

	first, err := s.Create()
	require.NoError(t, err)
	second, err := s.Create()
	require.NoError(t, err)

	list := s.List()
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID, "新会话在最前")
	assert.Equal(t, first.ID, list[1].ID)
	assert.Equal(t, second.ID, s.Current().ID)
	assert.Equal(t, domainConversation.DefaultTitle, s.Current().Title)
	assert.Equal(t, 2, repo.saves, "每次修改后持久化")
}

func TestStore_AppendPreservesOrder(t *testing.T) {
	s := newTestStore(t, &memoryRepo{})
	conv, err := s.Create()
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		role := domainChat.RoleUser
		if i%2 == 1 {
			role = domainChat.RoleAssistant
		}
		_, err := s.Append(conv.ID, role, fmt.Sprintf("m%d", i))
		require.NoError(t, err)
	}

	got, ok := s.Get(conv.ID)
	require.True(t, ok)
	var contents []string
	for _, m := range got.Messages {
		contents = append(contents, m.Content)
	}
	assert.Equal(t, []string{"m0", "m1", "m2", "m3", "m4"}, contents)
	assert.Equal(t, "m0", got.Title)
	assert.True(t, got.UpdatedAt.Equal(got.Messages[4].Timestamp))
}

func TestStore_DeleteActiveSelectsFirstRemaining(t *testing.T) {
	s := newTestStore(t, &memoryRepo{})
	a, _ := s.Create()
	b, _ := s.Create()
	c, _ := s.Create()

	// 列表顺序：c, b, a；当前为 c
	require.NoError(t, s.Delete(c.ID))
	assert.Equal(t, b.ID, s.Current().ID)

	// 删除非当前会话不影响选中
	require.NoError(t, s.Delete(a.ID))
	assert.Equal(t, b.ID, s.Current().ID)

	require.NoError(t, s.Delete(b.ID))
	assert.Nil(t, s.Current())
	assert.Empty(t, s.List())

	assert.ErrorIs(t, s.Delete("missing"), domainConversation.ErrNotFound)
}

func TestStore_DeleteEmptyListIsPersisted(t *testing.T) {
	repo := &memoryRepo{}
	s := newTestStore(t, repo)
	conv, _ := s.Create()

	require.NoError(t, s.Delete(conv.ID))
	assert.Empty(t, repo.saved, "删除最后一个会话后也要写入空列表")
}

func TestStore_SelectAndSummary(t *testing.T) {
	s := newTestStore(t, &memoryRepo{})
	a, _ := s.Create()
	_, _ = s.Create()

	require.NoError(t, s.Select(a.ID))
	assert.Equal(t, a.ID, s.Current().ID)
	assert.ErrorIs(t, s.Select("missing"), domainConversation.ErrNotFound)

	require.NoError(t, s.SetSummary(a.ID, "riassunto"))
	got, _ := s.Get(a.ID)
	assert.Equal(t, "riassunto", got.ConversationSummary)
	assert.ErrorIs(t, s.SetSummary("missing", "x"), domainConversation.ErrNotFound)
}

func TestStore_SnapshotsAreIsolated(t *testing.T) {
	s := newTestStore(t, &memoryRepo{})
	conv, _ := s.Create()

	snapshot := s.Current()
	_, err := s.Append(conv.ID, domainChat.RoleUser, "ciao")
	require.NoError(t, err)

	assert.Empty(t, snapshot.Messages)
	assert.Len(t, s.Current().Messages, 1)
}

func TestStore_PersistFailure(t *testing.T) {
	repo := &memoryRepo{saveErr: errors.New("disk full")}
	s := newTestStore(t, repo)

	_, err := s.Create()
	assert.Error(t, err)
}

func TestStore_RehydrateFromSQLite(t *testing.T) {
	db, err := storage.OpenDB(filepath.Join(t.TempDir(), "amica.db"))
	require.NoError(t, err)
	defer db.Close()
	repo := storage.NewConversationRepository(storage.NewLocalStorage(db))

	s := newTestStore(t, repo)
	older, _ := s.Create()
	_, err = s.Append(older.ID, domainChat.RoleUser, "prima conversazione")
	require.NoError(t, err)
	newer, _ := s.Create()
	_, err = s.Append(newer.ID, domainChat.RoleUser, "seconda conversazione")
	require.NoError(t, err)
	require.NoError(t, s.SetSummary(newer.ID, "memoria"))

	restored, err := NewStore(repo)
	require.NoError(t, err)

	list := restored.List()
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, restored.Current().ID, "启动时选中第一个会话")
	assert.Equal(t, "seconda conversazione", list[0].Messages[0].Content)
	assert.Equal(t, "memoria", list[0].ConversationSummary)
	assert.Equal(t, "prima conversazione", list[1].Title)
	assert.False(t, list[0].Messages[0].Timestamp.IsZero())
}

func TestStore_TimestampsSurviveReload(t *testing.T) {
	db, err := storage.OpenDB(filepath.Join(t.TempDir(), "amica.db"))
	require.NoError(t, err)
	defer db.Close()
	repo := storage.NewConversationRepository(storage.NewLocalStorage(db))

	// 使用真实时钟
	s, err := NewStore(repo)
	require.NoError(t, err)
	conv, err := s.Create()
	require.NoError(t, err)
	msg, err := s.Append(conv.ID, domainChat.RoleUser, "che ore sono?")
	require.NoError(t, err)
	before, ok := s.Get(conv.ID)
	require.True(t, ok)

	restored, err := NewStore(repo)
	require.NoError(t, err)
	after, ok := restored.Get(conv.ID)
	require.True(t, ok)
	require.Len(t, after.Messages, 1)

	assert.True(t, msg.Timestamp.Equal(after.Messages[0].Timestamp), "in-memory=%s reloaded=%s", msg.Timestamp, after.Messages[0].Timestamp)
	assert.True(t, before.CreatedAt.Equal(after.CreatedAt))
	assert.True(t, before.UpdatedAt.Equal(after.UpdatedAt))
}
