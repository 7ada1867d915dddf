package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// 环境变量名
const (
	EnvHTTPPort       = "PORT"
	EnvOpenAIKey      = "OPENAI_API_KEY"
	EnvOpenAIBaseURL  = "OPENAI_BASE_URL"
	EnvChatModel      = "AMICA_CHAT_MODEL"
	EnvFallbackModel  = "AMICA_FALLBACK_MODEL"
	EnvAuxModel       = "AMICA_AUX_MODEL"
	EnvTTSModel       = "AMICA_TTS_MODEL"
	EnvTTSVoice       = "AMICA_TTS_VOICE"
	EnvJinaKey        = "JINA_API_KEY"
	EnvJinaReaderURL  = "JINA_READER_URL"
	EnvJinaSearchURL  = "JINA_SEARCH_URL"
	EnvRedisAddr      = "REDIS_ADDR"
	EnvRateLimitQPS   = "AMICA_RATE_LIMIT_QPS"
	EnvPromptsFile    = "AMICA_PROMPTS_FILE"
	EnvAPIURL         = "AMICA_API_URL"
	EnvAudioPlayer    = "AMICA_AUDIO_PLAYER"
	defaultEnvFile    = ".env"
	defaultHTTPPort   = "3001"
	defaultOpenAIBase = "https://api.openai.com/v1"
)

// Config 应用配置
type Config struct {
	Server    ServerConfig
	OpenAI    OpenAIConfig
	Jina      JinaConfig
	Memory    MemoryConfig
	Database  DatabaseConfig
	RateLimit RateLimitConfig
	Prompts   PromptsConfig
	Client    ClientConfig
}

// ServerConfig 服务器配置
type ServerConfig struct {
	HTTPPort string // 形如 ":3001"
}

// OpenAIConfig OpenAI 上游配置
type OpenAIConfig struct {
	APIKey        string
	BaseURL       string
	ChatModel     string // 主模型（Responses API）
	FallbackModel string // 回退模型（Chat Completions）
	AuxModel      string // 决策与摘要使用的轻量模型
	TTSModel      string
	TTSVoice      string
	Timeout       time.Duration
}

// JinaConfig Jina Reader / Search 配置
type JinaConfig struct {
	APIKey    string // 可选
	ReaderURL string
	SearchURL string
	Timeout   time.Duration
}

// MemoryConfig 记忆与窗口配置
type MemoryConfig struct {
	SummaryWindow int // 每 N 轮触发一次摘要
	RecentCycles  int // prompt 中保留的最近轮数
	WebBudget     int // 网页上下文字符预算
}

// DatabaseConfig 数据库配置（客户端本地存储）
type DatabaseConfig struct {
	Path string // 留空表示 <DataDir>/amica.db
}

// RateLimitConfig 限流配置，RedisAddr 为空时不启用
type RateLimitConfig struct {
	RedisAddr string
	QPS       int
}

// PromptsConfig prompt 模板配置
type PromptsConfig struct {
	File string // 留空表示使用内置模板
}

// ClientConfig 终端客户端配置
type ClientConfig struct {
	APIURL      string
	AudioPlayer string // 播放 mp3 的外部命令，留空表示不朗读
}

// NewConfig 创建配置
// 优先级：环境变量 > 当前目录 .env 文件 > 默认值
func NewConfig() *Config {
	return load(viper.New(), defaultEnvFile)
}

func load(v *viper.Viper, envFile string) *Config {
	setDefaults(v)

	if envFile != "" {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
		// .env 不存在或不可读时只使用环境变量
		_ = v.ReadInConfig()
	}
	v.AutomaticEnv()

	port := v.GetString(EnvHTTPPort)
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	return &Config{
		Server: ServerConfig{
			HTTPPort: port,
		},
		OpenAI: OpenAIConfig{
			APIKey:        v.GetString(EnvOpenAIKey),
			BaseURL:       strings.TrimSuffix(v.GetString(EnvOpenAIBaseURL), "/"),
			ChatModel:     v.GetString(EnvChatModel),
			FallbackModel: v.GetString(EnvFallbackModel),
			AuxModel:      v.GetString(EnvAuxModel),
			TTSModel:      v.GetString(EnvTTSModel),
			TTSVoice:      v.GetString(EnvTTSVoice),
			Timeout:       60 * time.Second,
		},
		Jina: JinaConfig{
			APIKey:    v.GetString(EnvJinaKey),
			ReaderURL: v.GetString(EnvJinaReaderURL),
			SearchURL: v.GetString(EnvJinaSearchURL),
			Timeout:   20 * time.Second,
		},
		Memory: MemoryConfig{
			SummaryWindow: 20,
			RecentCycles:  20,
			WebBudget:     6000,
		},
		RateLimit: RateLimitConfig{
			RedisAddr: v.GetString(EnvRedisAddr),
			QPS:       v.GetInt(EnvRateLimitQPS),
		},
		Prompts: PromptsConfig{
			File: v.GetString(EnvPromptsFile),
		},
		Client: ClientConfig{
			APIURL:      strings.TrimSuffix(v.GetString(EnvAPIURL), "/"),
			AudioPlayer: v.GetString(EnvAudioPlayer),
		},
	}
}

// setDefaults 设置默认值
func setDefaults(v *viper.Viper) {
	v.SetDefault(EnvHTTPPort, defaultHTTPPort)
	v.SetDefault(EnvOpenAIKey, "")
	v.SetDefault(EnvOpenAIBaseURL, defaultOpenAIBase)
	v.SetDefault(EnvChatModel, "gpt-4o")
	v.SetDefault(EnvFallbackModel, "gpt-4o")
	v.SetDefault(EnvAuxModel, "gpt-4o-mini")
	v.SetDefault(EnvTTSModel, "tts-1")
	v.SetDefault(EnvTTSVoice, "nova")
	v.SetDefault(EnvJinaKey, "")
	v.SetDefault(EnvJinaReaderURL, "https://r.jina.ai/")
	v.SetDefault(EnvJinaSearchURL, "https://s.jina.ai/")
	v.SetDefault(EnvRedisAddr, "")
	v.SetDefault(EnvRateLimitQPS, 5)
	v.SetDefault(EnvPromptsFile, "")
	v.SetDefault(EnvAPIURL, "http://localhost:"+defaultHTTPPort)
	v.SetDefault(EnvAudioPlayer, "")
}

// NewOpenAIConfig 提供 OpenAI 配置
func NewOpenAIConfig(cfg *Config) *OpenAIConfig {
	return &cfg.OpenAI
}

// NewJinaConfig 提供 Jina 配置
func NewJinaConfig(cfg *Config) *JinaConfig {
	return &cfg.Jina
}

// NewMemoryConfig 提供记忆配置
func NewMemoryConfig(cfg *Config) *MemoryConfig {
	return &cfg.Memory
}

// NewServerConfig 提供服务器配置
func NewServerConfig(cfg *Config) *ServerConfig {
	return &cfg.Server
}

// NewRateLimitConfig 提供限流配置
func NewRateLimitConfig(cfg *Config) *RateLimitConfig {
	return &cfg.RateLimit
}

// NewPromptsConfig 提供 prompt 配置
func NewPromptsConfig(cfg *Config) *PromptsConfig {
	return &cfg.Prompts
}

// NewDatabaseConfig 提供数据库配置
func NewDatabaseConfig(cfg *Config) *DatabaseConfig {
	return &cfg.Database
}

// NewClientConfig 提供终端客户端配置
func NewClientConfig(cfg *Config) *ClientConfig {
	return &cfg.Client
}
