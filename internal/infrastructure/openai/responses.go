package openai

import (
	"context"
	"strings"
)

// ToolWebSearchPreview Responses API 内置网页搜索工具
const ToolWebSearchPreview = "web_search_preview"

// ResponsesRequest Responses API 请求
type ResponsesRequest struct {
	Model           string      `json:"model"`
	Instructions    string      `json:"instructions,omitempty"`
	Input           []InputItem `json:"input"`
	Tools           []Tool      `json:"tools,omitempty"`
	Temperature     *float64    `json:"temperature,omitempty"`
	MaxOutputTokens int         `json:"max_output_tokens,omitempty"`
}

// InputItem 输入消息
type InputItem struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Tool 工具声明
type Tool struct {
	Type string `json:"type"`
}

// OutputItem 输出项：message、web_search_call 等
type OutputItem struct {
	Type    string          `json:"type"`
	ID      string          `json:"id,omitempty"`
	Status  string          `json:"status,omitempty"`
	Role    string          `json:"role,omitempty"`
	Content []OutputContent `json:"content,omitempty"`
}

// OutputContent 输出内容片段
type OutputContent struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// ResponsesUsage Responses API 用量
type ResponsesUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// ResponsesResponse Responses API 响应
type ResponsesResponse struct {
	ID         string          `json:"id,omitempty"`
	Status     string          `json:"status,omitempty"`
	Output     []OutputItem    `json:"output"`
	OutputText string          `json:"output_text,omitempty"`
	Usage      *ResponsesUsage `json:"usage,omitempty"`
}

// Text 拼接所有 message 输出中的 output_text
func (r *ResponsesResponse) Text() string {
	if r == nil {
		return ""
	}
	var parts []string
	for _, item := range r.Output {
		if item.Type != "message" {
			continue
		}
		for _, content := range item.Content {
			if content.Type == "output_text" && content.Text != "" {
				parts = append(parts, content.Text)
			}
		}
	}
	if len(parts) == 0 {
		return r.OutputText
	}
	return strings.Join(parts, "\n")
}

// UsedWebSearch 输出中是否包含 web_search_call
func (r *ResponsesResponse) UsedWebSearch() bool {
	if r == nil {
		return false
	}
	for _, item := range r.Output {
		if item.Type == "web_search_call" {
			return true
		}
	}
	return false
}

// CreateResponse 调用 /responses
func (c *Client) CreateResponse(ctx context.Context, req ResponsesRequest) (*ResponsesResponse, error) {
	var out ResponsesResponse
	if err := c.postJSON(ctx, "/responses", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
