package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/amica/backend/internal/application/speech"
	domainChat "github.com/amica/backend/internal/domain/chat"
	"github.com/amica/backend/internal/infrastructure/log"
	"github.com/amica/backend/internal/infrastructure/openai"
	"github.com/amica/backend/internal/interfaces/http/response"
	"github.com/gin-gonic/gin"
)

// SpeechSynthesizer 文本转语音
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text string) (*speech.Audio, error)
}

// TTSRequest 语音合成请求
type TTSRequest struct {
	Text string `json:"text"`
}

// TTSHandler 语音合成处理器
type TTSHandler struct {
	synthesizer SpeechSynthesizer
}

// NewTTSHandler 创建语音合成处理器
func NewTTSHandler(synthesizer SpeechSynthesizer) *TTSHandler {
	return &TTSHandler{synthesizer: synthesizer}
}

// Synthesize 文本转语音
// @Summary 语音合成
// @Description 文本超过 4096 个字符的部分会被截掉，返回 base64 编码的 mp3
// @Tags 语音
// @Accept json
// @Produce json
// @Param body body TTSRequest true "合成请求"
// @Success 200 {object} speech.Audio
// @Failure 400 {object} response.ErrorResponse
// @Failure 405 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /tts [post]
func (h *TTSHandler) Synthesize(c *gin.Context) {
	var req TTSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.MsgTextRequired)
		return
	}

	audio, err := h.synthesizer.Synthesize(c.Request.Context(), req.Text)
	if err != nil {
		var apiErr *openai.APIError
		switch {
		case errors.Is(err, speech.ErrEmptyText):
			response.Error(c, http.StatusBadRequest, response.MsgTextRequired)
		case errors.Is(err, domainChat.ErrMissingCredential):
			response.Error(c, http.StatusInternalServerError, response.MsgMissingAPIKey)
		case errors.As(err, &apiErr):
			response.Error(c, apiErr.StatusCode, response.MsgOpenAITTSError)
		default:
			log.FromContext(c.Request.Context(), log.NewModuleLogger("http", "tts")).Error("TTS request failed",
				"error", err,
			)
			response.Error(c, http.StatusInternalServerError, response.MsgInternalError)
		}
		return
	}

	response.Success(c, audio)
}
