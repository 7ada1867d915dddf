package handler

import (
	"context"
	"errors"
	"net/http"

	domainChat "github.com/amica/backend/internal/domain/chat"
	"github.com/amica/backend/internal/infrastructure/log"
	"github.com/amica/backend/internal/infrastructure/openai"
	"github.com/amica/backend/internal/interfaces/http/response"
	"github.com/gin-gonic/gin"
)

// TurnRunner 执行一轮对话
type TurnRunner interface {
	Run(ctx context.Context, req *domainChat.TurnRequest) (*domainChat.TurnResult, error)
}

// ChatHandler 对话处理器
type ChatHandler struct {
	runner TurnRunner
}

// NewChatHandler 创建对话处理器
func NewChatHandler(runner TurnRunner) *ChatHandler {
	return &ChatHandler{runner: runner}
}

// Chat 执行一轮对话
// @Summary 对话
// @Description 客户端携带完整历史与摘要，服务端不保存会话状态
// @Tags 对话
// @Accept json
// @Produce json
// @Param body body chat.TurnRequest true "对话请求"
// @Success 200 {object} chat.TurnResult
// @Failure 400 {object} response.ErrorResponse
// @Failure 405 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /chat [post]
func (h *ChatHandler) Chat(c *gin.Context) {
	var req domainChat.TurnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.MsgMessagesRequired)
		return
	}

	result, err := h.runner.Run(c.Request.Context(), &req)
	if err != nil {
		writeChatError(c, err)
		return
	}

	response.Success(c, result)
}

func writeChatError(c *gin.Context, err error) {
	var apiErr *openai.APIError
	switch {
	case errors.Is(err, domainChat.ErrInvalidRequest):
		response.Error(c, http.StatusBadRequest, response.MsgMessagesRequired)
	case errors.Is(err, domainChat.ErrMissingCredential):
		response.Error(c, http.StatusInternalServerError, response.MsgMissingAPIKey)
	case errors.As(err, &apiErr):
		response.ErrorWithDetails(c, apiErr.StatusCode, response.MsgOpenAIError, apiErr.Body)
	default:
		log.FromContext(c.Request.Context(), log.NewModuleLogger("http", "chat")).Error("Chat request failed",
			"error", err,
		)
		response.Error(c, http.StatusInternalServerError, response.MsgInternalError)
	}
}
