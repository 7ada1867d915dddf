package amicaapi

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	domainChat "github.com/amica/backend/internal/domain/chat"
	"github.com/amica/backend/internal/infrastructure/config"
	"github.com/amica/backend/internal/infrastructure/log"
)

const (
	defaultAPIURL = "http://localhost:3001"
	// 一轮对话可能包含搜索、摘要与模型调用
	requestTimeout = 120 * time.Second
)

// ResponseError 服务端返回的非 2xx 响应
type ResponseError struct {
	StatusCode int
	Message    string
	Details    json.RawMessage
}

func (e *ResponseError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("amica API returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("amica API returned status %d: %s", e.StatusCode, e.Message)
}

// Client AMICA 服务端 HTTP 客户端
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient 创建客户端
func NewClient(cfg *config.ClientConfig) *Client {
	baseURL := strings.TrimSuffix(cfg.APIURL, "/")
	if baseURL == "" {
		baseURL = defaultAPIURL
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		logger: log.NewModuleLogger("amicaapi", "client"),
	}
}

// Chat 调用 POST /api/chat
func (c *Client) Chat(ctx context.Context, req *domainChat.TurnRequest) (*domainChat.TurnResult, error) {
	var result domainChat.TurnResult
	if err := c.post(ctx, "/api/chat", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

type ttsRequest struct {
	Text string `json:"text"`
}

type ttsResponse struct {
	Audio  string `json:"audio"`
	Format string `json:"format"`
}

// Speak 调用 POST /api/tts，返回解码后的音频与格式
func (c *Client) Speak(ctx context.Context, text string) ([]byte, string, error) {
	var resp ttsResponse
	if err := c.post(ctx, "/api/tts", ttsRequest{Text: text}, &resp); err != nil {
		return nil, "", err
	}
	audio, err := base64.StdEncoding.DecodeString(resp.Audio)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode audio: %w", err)
	}
	return audio, resp.Format, nil
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if id := log.RequestIDFrom(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("amica request %s failed: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("AMICA request completed",
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return readError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

func readError(resp *http.Response) error {
	apiErr := &ResponseError{StatusCode: resp.StatusCode}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))

	var body struct {
		Error   string          `json:"error"`
		Details json.RawMessage `json:"details"`
	}
	if json.Unmarshal(data, &body) == nil {
		apiErr.Message = body.Error
		apiErr.Details = body.Details
	}
	return apiErr
}
