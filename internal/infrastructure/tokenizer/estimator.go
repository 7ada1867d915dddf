package tokenizer

import (
	"sync"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"
)

// 在包初始化时设置离线加载器
func init() {
	tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
}

const (
	// perMessageOverhead 每条 chat 消息的格式开销
	perMessageOverhead = 4
	// replyPriming 回复起始标记开销
	replyPriming = 3
)

// Estimator 估算 prompt / completion 的 token 数
// 编码加载失败时退化为按字符数估算
type Estimator struct {
	encoding *tiktoken.Tiktoken
	mu       sync.Mutex
}

var (
	instance     *Estimator
	instanceOnce sync.Once
)

// NewEstimator 获取 Estimator 单例（cl100k_base 编码）
func NewEstimator() *Estimator {
	instanceOnce.Do(func() {
		instance = &Estimator{}
		if enc, err := tiktoken.GetEncoding("cl100k_base"); err == nil {
			instance.encoding = enc
		}
	})
	return instance
}

// CountTokens 计算文本的 token 数
func (e *Estimator) CountTokens(text string) int {
	if text == "" {
		return 0
	}
	if e.encoding == nil {
		return (utf8.RuneCountInString(text) + 3) / 4
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.encoding.Encode(text, nil, nil))
}

// CountMessages 估算一组 chat 消息的 prompt token 数
func (e *Estimator) CountMessages(contents []string) int {
	total := replyPriming
	for _, c := range contents {
		total += perMessageOverhead + e.CountTokens(c)
	}
	return total
}

// Method 返回计算方法标识
func (e *Estimator) Method() string {
	if e.encoding == nil {
		return "rune_estimate"
	}
	return "tiktoken"
}
