package chat

import "errors"

var (
	// ErrInvalidRequest 请求体缺失或格式错误
	ErrInvalidRequest = errors.New("messages array required")

	// ErrMissingCredential 上游凭证未配置
	ErrMissingCredential = errors.New("OpenAI API key not configured")
)
