package response

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

// 客户端依赖的固定错误文案
const (
	MsgMessagesRequired = "Messages array required"
	MsgTextRequired     = "Text is required"
	MsgMissingAPIKey    = "OpenAI API key not configured"
	MsgOpenAIError      = "OpenAI API error"
	MsgOpenAITTSError   = "OpenAI TTS error"
	MsgInternalError    = "Internal server error"
	MsgMethodNotAllowed = "Method not allowed"
	MsgTooManyRequests  = "Too many requests"
)

// ErrorResponse 错误响应
type ErrorResponse struct {
	Error   string          `json:"error"`
	Details json.RawMessage `json:"details,omitempty" swaggertype:"object"`
}

// Success 成功响应，直接输出数据本身
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Error 错误响应
func Error(c *gin.Context, httpCode int, message string) {
	c.AbortWithStatusJSON(httpCode, ErrorResponse{Error: message})
}

// ErrorWithDetails 带上游详情的错误响应
func ErrorWithDetails(c *gin.Context, httpCode int, message string, details json.RawMessage) {
	c.AbortWithStatusJSON(httpCode, ErrorResponse{
		Error:   message,
		Details: details,
	})
}

// MethodNotAllowed 405 响应
func MethodNotAllowed(c *gin.Context) {
	Error(c, http.StatusMethodNotAllowed, MsgMethodNotAllowed)
}
