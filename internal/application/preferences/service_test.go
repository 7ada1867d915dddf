package preferences

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainPreferences "github.com/amica/backend/internal/domain/preferences"
	"github.com/amica/backend/internal/infrastructure/storage"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := storage.OpenDB(filepath.Join(t.TempDir(), "amica.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewService(storage.NewPreferencesRepository(storage.NewLocalStorage(db)))
}

func TestService_Theme(t *testing.T) {
	s := newTestService(t)

	theme, err := s.Theme()
	require.NoError(t, err)
	assert.Equal(t, domainPreferences.ThemeLight, theme)

	theme, err = s.SetTheme("dark")
	require.NoError(t, err)
	assert.Equal(t, domainPreferences.ThemeDark, theme)

	theme, err = s.ToggleTheme()
	require.NoError(t, err)
	assert.Equal(t, domainPreferences.ThemeLight, theme)

	theme, err = s.SetTheme("sepia")
	require.NoError(t, err)
	assert.Equal(t, domainPreferences.ThemeLight, theme)

	got, err := s.Theme()
	require.NoError(t, err)
	assert.Equal(t, domainPreferences.ThemeLight, got)
}

func TestService_InstallPrompt(t *testing.T) {
	s := newTestService(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	show, err := s.ShouldPromptInstall()
	require.NoError(t, err)
	assert.True(t, show, "从未关闭过时显示")

	require.NoError(t, s.DismissInstall())

	now = now.Add(6 * 24 * time.Hour)
	show, err = s.ShouldPromptInstall()
	require.NoError(t, err)
	assert.False(t, show)

	now = now.Add(24 * time.Hour)
	show, err = s.ShouldPromptInstall()
	require.NoError(t, err)
	assert.True(t, show, "7 天后再次显示")
}
