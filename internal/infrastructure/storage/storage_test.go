package storage

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amica/backend/internal/domain/chat"
	"github.com/amica/backend/internal/domain/conversation"
	"github.com/amica/backend/internal/domain/preferences"
)

// setupTestDB 创建临时测试数据库
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := OpenDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestLocalStorage_SetGetRemove(t *testing.T) {
	store := NewLocalStorage(setupTestDB(t))

	_, ok, err := store.GetItem("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.SetItem("k", "v1"))
	require.NoError(t, store.SetItem("k", "v2"))
	value, ok, err := store.GetItem("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v2", value, "SetItem 应覆盖旧值")

	require.NoError(t, store.RemoveItem("k"))
	_, ok, err = store.GetItem("k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConversationRepository_RoundTrip(t *testing.T) {
	store := NewLocalStorage(setupTestDB(t))
	repo := NewConversationRepository(store)

	empty, err := repo.LoadAll()
	require.NoError(t, err)
	assert.Empty(t, empty)

	created := time.Date(2026, 3, 1, 9, 30, 0, 123_000_000, time.UTC)
	convs := []*conversation.Conversation{
		{
			ID:                  "c2",
			Title:               "Che tempo fa a Roma?",
			ConversationSummary: "L'utente vive a Roma.",
			CreatedAt:           created,
			UpdatedAt:           created.Add(time.Minute),
			Messages: []*conversation.Message{
				{ID: "m1", Role: chat.RoleUser, Content: "Che tempo fa a Roma?", Timestamp: created},
				{ID: "m2", Role: chat.RoleAssistant, Content: "Sereno, 21 gradi.", Timestamp: created.Add(time.Minute)},
			},
		},
		{ID: "c1", Title: conversation.DefaultTitle, CreatedAt: created, UpdatedAt: created, Messages: []*conversation.Message{}},
	}
	require.NoError(t, repo.SaveAll(convs))

	loaded, err := repo.LoadAll()
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	assert.Equal(t, "c2", loaded[0].ID, "顺序应保持不变")
	assert.Equal(t, "L'utente vive a Roma.", loaded[0].ConversationSummary)
	require.Len(t, loaded[0].Messages, 2)
	assert.Equal(t, chat.RoleAssistant, loaded[0].Messages[1].Role)
	assert.True(t, created.Equal(loaded[0].Messages[0].Timestamp), "时间戳应按 ISO 字符串还原")
	assert.True(t, created.Add(time.Minute).Equal(loaded[0].UpdatedAt))
	assert.Empty(t, loaded[1].Messages)
}

func TestConversationRepository_StoredFormat(t *testing.T) {
	store := NewLocalStorage(setupTestDB(t))
	repo := NewConversationRepository(store)

	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, repo.SaveAll([]*conversation.Conversation{{
		ID: "c1", Title: "t", CreatedAt: ts, UpdatedAt: ts,
		Messages: []*conversation.Message{{ID: "m1", Role: chat.RoleUser, Content: "x", Timestamp: ts}},
	}}))

	raw, ok, err := store.GetItem(KeyConversations)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[{"id":"c1","title":"t","messages":[{"id":"m1","role":"user","content":"x","timestamp":"2026-01-02T03:04:05.000Z"}],"createdAt":"2026-01-02T03:04:05.000Z","updatedAt":"2026-01-02T03:04:05.000Z"}]`, raw)
}

func TestConversationRepository_CorruptData(t *testing.T) {
	store := NewLocalStorage(setupTestDB(t))
	require.NoError(t, store.SetItem(KeyConversations, "{not json"))

	_, err := NewConversationRepository(store).LoadAll()
	assert.Error(t, err)
}

func TestPreferencesRepository(t *testing.T) {
	store := NewLocalStorage(setupTestDB(t))
	repo := NewPreferencesRepository(store)

	prefs, err := repo.Load()
	require.NoError(t, err)
	assert.Equal(t, preferences.ThemeLight, prefs.Theme)
	assert.Nil(t, prefs.InstallDismissedAt)

	dismissed := time.UnixMilli(1767225600000)
	require.NoError(t, repo.SaveTheme(preferences.ThemeDark))
	require.NoError(t, repo.SaveInstallDismissed(dismissed))

	raw, _, err := store.GetItem(KeyInstallDismissed)
	require.NoError(t, err)
	assert.Equal(t, "1767225600000", raw, "以 Unix 毫秒字符串保存")

	prefs, err = repo.Load()
	require.NoError(t, err)
	assert.Equal(t, preferences.ThemeDark, prefs.Theme)
	require.NotNil(t, prefs.InstallDismissedAt)
	assert.True(t, dismissed.Equal(*prefs.InstallDismissedAt))
}
