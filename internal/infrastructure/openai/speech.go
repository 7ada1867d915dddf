package openai

import (
	"context"
	"fmt"
	"io"
)

// maxAudioBytes 音频响应读取上限
const maxAudioBytes = 32 * 1024 * 1024

// SpeechRequest TTS 请求
type SpeechRequest struct {
	Model          string  `json:"model"`
	Input          string  `json:"input"`
	Voice          string  `json:"voice"`
	ResponseFormat string  `json:"response_format"`
	Speed          float64 `json:"speed"`
}

// CreateSpeech 调用 /audio/speech，返回音频字节
func (c *Client) CreateSpeech(ctx context.Context, req SpeechRequest) ([]byte, error) {
	resp, err := c.post(ctx, "/audio/speech", req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	audio, err := io.ReadAll(io.LimitReader(resp.Body, maxAudioBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read speech audio: %w", err)
	}
	return audio, nil
}
