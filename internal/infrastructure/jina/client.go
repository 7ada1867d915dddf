package jina

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/amica/backend/internal/domain/chat"
	"github.com/amica/backend/internal/infrastructure/config"
	"github.com/amica/backend/internal/infrastructure/log"
)

const (
	// MaxContentChars 单个网页/搜索结果保留的字符数
	MaxContentChars = 6000
	// searchRetries 首次失败后的重试次数
	searchRetries = 2
	// maxBodyBytes 响应体读取上限
	maxBodyBytes = 2 * 1024 * 1024
)

// ErrEmptyContent 上游返回空内容
var ErrEmptyContent = errors.New("jina returned empty content")

// Client Jina Reader / Search 客户端
type Client struct {
	readerURL  string
	searchURL  string
	apiKey     string
	httpClient *http.Client
	// retryDelay 搜索重试间隔，测试中可调小
	retryDelay time.Duration
	logger     *slog.Logger
}

// NewClient 创建 Jina 客户端
func NewClient(cfg *config.JinaConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Client{
		readerURL: withTrailingSlash(cfg.ReaderURL, "https://r.jina.ai/"),
		searchURL: withTrailingSlash(cfg.SearchURL, "https://s.jina.ai/"),
		apiKey:    cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		retryDelay: time.Second,
		logger:     log.NewModuleLogger("jina", "client"),
	}
}

// Read 通过 Reader 抓取网页正文，不重试
func (c *Client) Read(ctx context.Context, pageURL string) (string, error) {
	body, contentType, err := c.get(ctx, c.readerURL+pageURL)
	if err != nil {
		return "", err
	}

	text := body
	if looksLikeHTML(contentType, body) {
		text, err = htmlToText(body)
		if err != nil {
			return "", fmt.Errorf("failed to parse HTML from %s: %w", pageURL, err)
		}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyContent
	}
	return chat.Truncate(text, MaxContentChars), nil
}

// Search 网页搜索；网络错误和非 2xx 时重试，耗尽后返回 ("", false)
func (c *Client) Search(ctx context.Context, query string) (string, bool) {
	target := c.searchURL + url.PathEscape(query)

	var lastErr error
	for attempt := 0; attempt <= searchRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				c.logger.Warn("Search cancelled during retry",
					"query", query,
					"error", ctx.Err(),
				)
				return "", false
			case <-time.After(c.retryDelay):
			}
		}

		body, _, err := c.get(ctx, target)
		if err == nil {
			text := strings.TrimSpace(body)
			if text == "" {
				return "", false
			}
			return chat.Truncate(text, MaxContentChars), true
		}

		lastErr = err
		c.logger.Warn("Search request failed",
			"query", query,
			"attempt", attempt+1,
			"max_attempts", searchRetries+1,
			"error", err,
		)
	}

	c.logger.Error("Search failed after all retries",
		"query", query,
		"error", lastErr,
	)
	return "", false
}

// get 发送 GET 请求，返回响应体和 Content-Type
func (c *Client) get(ctx context.Context, target string) (string, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/plain")
	if c.apiKey != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("jina request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", "", fmt.Errorf("jina returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", "", fmt.Errorf("failed to read jina response: %w", err)
	}
	return string(data), resp.Header.Get("Content-Type"), nil
}

func withTrailingSlash(raw, fallback string) string {
	if raw == "" {
		raw = fallback
	}
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	return raw
}
