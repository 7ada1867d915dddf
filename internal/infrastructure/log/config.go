package log

import (
	"os"
	"strconv"
	"strings"
)

// Config 日志配置
type Config struct {
	// Level debug, info, warn, error
	Level string `json:"level" env:"LOG_LEVEL"`

	// Format console（彩色）, text, json
	Format string `json:"format" env:"LOG_FORMAT"`

	// Output stdout, stderr 或 file:/path/to/amica.log
	// 终端客户端默认 stderr，避免日志混入对话输出
	Output string `json:"output" env:"LOG_OUTPUT"`

	// AddSource 输出源文件位置
	AddSource bool `json:"add_source" env:"LOG_ADD_SOURCE"`
}

// NewConfigFromEnv 服务端日志配置，ENV=development 时强制 debug
func NewConfigFromEnv() *Config {
	cfg := fromEnv(Config{Level: "info", Format: "console", Output: "stdout"})
	if isDevelopment() {
		cfg.Level = "debug"
		cfg.AddSource = true
	}
	return cfg
}

// NewCLIConfig 终端客户端日志配置
// 默认只输出 warn 以上到 stderr；verbose 时为 debug，环境变量仍可覆盖格式与输出
func NewCLIConfig(verbose bool) *Config {
	cfg := fromEnv(Config{Level: "warn", Format: "console", Output: "stderr"})
	if verbose {
		cfg.Level = "debug"
	}
	return cfg
}

func fromEnv(defaults Config) *Config {
	return &Config{
		Level:     getEnvWithDefault("LOG_LEVEL", defaults.Level),
		Format:    getEnvWithDefault("LOG_FORMAT", defaults.Format),
		Output:    getEnvWithDefault("LOG_OUTPUT", defaults.Output),
		AddSource: getEnvBool("LOG_ADD_SOURCE", defaults.AddSource),
	}
}

func isDevelopment() bool {
	return strings.EqualFold(os.Getenv("ENV"), "development")
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}
