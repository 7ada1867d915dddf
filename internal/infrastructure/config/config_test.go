package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestNewConfig_Defaults(t *testing.T) {
	t.Setenv(EnvHTTPPort, "")
	t.Setenv(EnvChatModel, "")
	t.Setenv(EnvOpenAIBaseURL, "")
	t.Setenv(EnvRedisAddr, "")

	cfg := load(viper.New(), "")
	assert.Equal(t, ":3001", cfg.Server.HTTPPort)
	assert.Equal(t, "gpt-4o", cfg.OpenAI.ChatModel)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.AuxModel)
	assert.Equal(t, "tts-1", cfg.OpenAI.TTSModel)
	assert.Equal(t, "nova", cfg.OpenAI.TTSVoice)
	assert.Equal(t, "https://api.openai.com/v1", cfg.OpenAI.BaseURL)
	assert.Equal(t, "https://r.jina.ai/", cfg.Jina.ReaderURL)
	assert.Equal(t, 20, cfg.Memory.SummaryWindow)
	assert.Equal(t, 20, cfg.Memory.RecentCycles)
	assert.Empty(t, cfg.RateLimit.RedisAddr, "未配置 Redis 时不应启用限流")
}

func TestNewConfig_EnvOverride(t *testing.T) {
	t.Setenv(EnvHTTPPort, "4000")
	t.Setenv(EnvOpenAIKey, "sk-test")
	t.Setenv(EnvOpenAIBaseURL, "http://localhost:9999/v1/")

	cfg := load(viper.New(), "")
	assert.Equal(t, ":4000", cfg.Server.HTTPPort, "端口应自动补全冒号")
	assert.Equal(t, "sk-test", cfg.OpenAI.APIKey)
	assert.Equal(t, "http://localhost:9999/v1", cfg.OpenAI.BaseURL, "末尾斜杠应被去除")
}

func TestNewConfig_EnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	err := os.WriteFile(envFile, []byte("OPENAI_API_KEY=sk-from-file\nAMICA_TTS_VOICE=alloy\n"), 0644)
	assert.NoError(t, err)

	t.Setenv(EnvOpenAIKey, "")
	t.Setenv(EnvTTSVoice, "shimmer")
	cfg := load(viper.New(), envFile)
	assert.Equal(t, "sk-from-file", cfg.OpenAI.APIKey)
	assert.Equal(t, "shimmer", cfg.OpenAI.TTSVoice, "环境变量优先于 .env")
}

func TestNewConfig_MissingEnvFile(t *testing.T) {
	t.Setenv(EnvHTTPPort, "")
	cfg := load(viper.New(), filepath.Join(t.TempDir(), "missing.env"))
	assert.Equal(t, ":3001", cfg.Server.HTTPPort)
}
