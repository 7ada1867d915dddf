package chat

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"golang.org/x/sync/errgroup"

	domainChat "github.com/amica/backend/internal/domain/chat"
	"github.com/amica/backend/internal/infrastructure/log"
)

const (
	// MaxURLsPerTurn 每轮最多抓取的链接数
	MaxURLsPerTurn = 2
	// fetchConcurrency 并发抓取上限
	fetchConcurrency = 2
)

var urlPattern = regexp.MustCompile(`https?://[^\s<>"'\]]+`)

// ExtractURLs 按出现顺序提取最多 limit 个不重复链接
func ExtractURLs(text string, limit int) []string {
	if limit <= 0 {
		return nil
	}

	seen := make(map[string]struct{})
	var urls []string
	for _, match := range urlPattern.FindAllString(text, -1) {
		u := trimURL(match)
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		urls = append(urls, u)
		if len(urls) == limit {
			break
		}
	}
	return urls
}

// trimURL 去掉末尾标点和没有配对 ( 的 )
func trimURL(u string) string {
	for {
		trimmed := strings.TrimRight(u, ".,;:!?")
		if strings.HasSuffix(trimmed, ")") && strings.Count(trimmed, ")") > strings.Count(trimmed, "(") {
			trimmed = trimmed[:len(trimmed)-1]
		}
		if trimmed == u {
			return u
		}
		u = trimmed
	}
}

// ContentFetcher 并发抓取用户分享的链接
type ContentFetcher struct {
	reader WebReader
	logger *slog.Logger
}

// NewContentFetcher 创建抓取器
func NewContentFetcher(reader WebReader) *ContentFetcher {
	return &ContentFetcher{
		reader: reader,
		logger: log.NewModuleLogger("chat", "content_fetcher"),
	}
}

// FetchAll 抓取所有链接，保持输入顺序；失败的链接被忽略，不重试
func (f *ContentFetcher) FetchAll(ctx context.Context, urls []string) []domainChat.WebSource {
	results := make([]*domainChat.WebSource, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)
	for i, u := range urls {
		g.Go(func() error {
			content, err := f.reader.Read(gctx, u)
			if err != nil {
				f.logger.Warn("Failed to fetch URL",
					"url", u,
					"error", err,
				)
				return nil
			}
			results[i] = &domainChat.WebSource{
				Kind:    domainChat.SourceURL,
				Origin:  u,
				Content: content,
			}
			return nil
		})
	}
	_ = g.Wait()

	sources := make([]domainChat.WebSource, 0, len(urls))
	for _, r := range results {
		if r != nil {
			sources = append(sources, *r)
		}
	}
	return sources
}
