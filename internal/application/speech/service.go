package speech

import (
	"context"
	"encoding/base64"
	"errors"
	"log/slog"
	"strings"

	domainChat "github.com/amica/backend/internal/domain/chat"
	"github.com/amica/backend/internal/infrastructure/config"
	"github.com/amica/backend/internal/infrastructure/log"
	"github.com/amica/backend/internal/infrastructure/openai"
)

const (
	// MaxInputChars TTS 输入上限
	MaxInputChars = 4096
	// AudioFormat 输出音频格式
	AudioFormat = "mp3"
)

// ErrEmptyText 文本为空
var ErrEmptyText = errors.New("text is required")

// Synthesizer TTS 上游
type Synthesizer interface {
	HasCredential() bool
	CreateSpeech(ctx context.Context, req openai.SpeechRequest) ([]byte, error)
}

// Audio 合成结果
type Audio struct {
	Audio  string `json:"audio"` // base64
	Format string `json:"format"`
}

// Service 语音合成服务
type Service struct {
	upstream Synthesizer
	model    string
	voice    string
	logger   *slog.Logger
}

// NewService 创建语音合成服务
func NewService(upstream Synthesizer, cfg *config.OpenAIConfig) *Service {
	return &Service{
		upstream: upstream,
		model:    cfg.TTSModel,
		voice:    cfg.TTSVoice,
		logger:   log.NewModuleLogger("speech", "service"),
	}
}

// Synthesize 合成语音，超过 4096 个字符的部分被截掉
func (s *Service) Synthesize(ctx context.Context, text string) (*Audio, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}
	if !s.upstream.HasCredential() {
		return nil, domainChat.ErrMissingCredential
	}

	input := domainChat.Truncate(text, MaxInputChars)
	audio, err := s.upstream.CreateSpeech(ctx, openai.SpeechRequest{
		Model:          s.model,
		Input:          input,
		Voice:          s.voice,
		ResponseFormat: AudioFormat,
		Speed:          1.0,
	})
	if err != nil {
		s.logger.Error("Speech synthesis failed",
			"chars", len([]rune(input)),
			"error", err,
		)
		return nil, err
	}

	s.logger.Debug("Speech synthesized",
		"chars", len([]rune(input)),
		"bytes", len(audio),
	)
	return &Audio{
		Audio:  base64.StdEncoding.EncodeToString(audio),
		Format: AudioFormat,
	}, nil
}
