package prompts

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amica/backend/internal/infrastructure/config"
)

func TestDefaults(t *testing.T) {
	d := Defaults()
	assert.Contains(t, d.Persona, "Tu sei AMICA")
	assert.Contains(t, d.SearchDecision, `"search"`)
	assert.Contains(t, d.DateLine, "%s")
	assert.Contains(t, d.WebContextHeader, "%s")
	assert.NotEmpty(t, d.Summarizer)
}

func TestLoadFile_MergesWithDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.yaml")
	require.NoError(t, os.WriteFile(path, []byte("persona: Sei una guida turistica.\n"), 0644))

	tpl, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Sei una guida turistica.", tpl.Persona)
	assert.Equal(t, Defaults().Summarizer, tpl.Summarizer, "未覆盖的字段使用内置值")
}

func TestLoadFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.yaml")
	require.NoError(t, os.WriteFile(path, []byte("persona: [unclosed"), 0644))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLoadFile_RejectsFormatWithoutPlaceholder(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"date line without verb", "date_line: \"Data di oggi\"\n"},
		{"web header with two verbs", "web_context_header: \"%s e %s\"\n"},
		{"web header with other verb", "web_context_header: \"fonte %d\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "prompts.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0644))

			_, err := LoadFile(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadFile_AllowsEscapedPercent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.yaml")
	require.NoError(t, os.WriteFile(path, []byte("date_line: \"Oggi (100%%): %s\"\n"), 0644))

	tpl, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Oggi (100%%): %s", tpl.DateLine)
}

func TestNewStore_WithoutFile(t *testing.T) {
	store, err := NewStore(&config.PromptsConfig{})
	require.NoError(t, err)
	require.NoError(t, store.Start())
	defer store.Stop()

	assert.Equal(t, Defaults().Persona, store.Get().Persona)
}

func TestStore_HotReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.yaml")
	require.NoError(t, os.WriteFile(path, []byte("persona: prima\n"), 0644))

	store, err := NewStore(&config.PromptsConfig{File: path})
	require.NoError(t, err)
	assert.Equal(t, "prima", store.Get().Persona)

	require.NoError(t, store.Start())
	defer store.Stop()

	require.NoError(t, os.WriteFile(path, []byte("persona: dopo\n"), 0644))

	assert.Eventually(t, func() bool {
		return store.Get().Persona == "dopo"
	}, 3*time.Second, 20*time.Millisecond)
}

func TestStore_ReloadKeepsPreviousOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.yaml")
	require.NoError(t, os.WriteFile(path, []byte("persona: stabile\n"), 0644))

	store, err := NewStore(&config.PromptsConfig{File: path})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("persona: [broken"), 0644))
	store.reload()

	assert.Equal(t, "stabile", store.Get().Persona)

	require.NoError(t, os.WriteFile(path, []byte("persona: nuova\ndate_line: senza data\n"), 0644))
	store.reload()

	assert.Equal(t, "stabile", store.Get().Persona, "模板缺少占位符时保留旧版本")
	assert.Contains(t, store.Get().DateLine, "%s")
}
