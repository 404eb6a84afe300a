// Package quote 名言 API 客户端
//
// 从远程接口拉取一条励志名言，带单槽位的限时缓存。任何失败
// （超时、非 200、格式错误、空文本）都折叠为"无数据"，绝不向
// 调用方抛出错误，调用方据此渲染统一的失败提示。
package quote

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"task-telegram/internal/logger"
)

// Quote 一条名言：文本加署名
type Quote struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

// Client 名言 API 客户端
type Client struct {
	apiURL      string
	textField   string
	authorField string
	cacheTTL    time.Duration
	httpClient  *http.Client

	mu        sync.Mutex
	cached    *Quote
	fetchedAt time.Time

	// 测试中可替换的时间源
	now func() time.Time
}

// NewClient 创建名言客户端实例
// textField/authorField 是远程返回元素里的字段名，由配置提供
func NewClient(apiURL, textField, authorField string, cacheTTL, timeout time.Duration) *Client {
	return &Client{
		apiURL:      apiURL,
		textField:   textField,
		authorField: authorField,
		cacheTTL:    cacheTTL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		now: time.Now,
	}
}

// Random 获取一条名言
// 缓存未过期时直接返回缓存值，不发起网络请求；否则请求远程接口。
// 失败返回 nil，原因只记录在日志里。
func (c *Client) Random(ctx context.Context) *Quote {
	c.mu.Lock()
	if c.cached != nil && c.now().Sub(c.fetchedAt) < c.cacheTTL {
		q := *c.cached
		c.mu.Unlock()
		logger.Debug("returning cached quote")
		return &q
	}
	c.mu.Unlock()

	q := c.fetch(ctx)
	if q == nil {
		return nil
	}

	// 成功才覆盖缓存，容量恒为 1
	c.mu.Lock()
	c.cached = q
	c.fetchedAt = c.now()
	c.mu.Unlock()

	result := *q
	return &result
}

// fetch 发起单次 HTTP GET
func (c *Client) fetch(ctx context.Context) *Quote {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL, nil)
	if err != nil {
		logger.ErrorKV("create quote request", "url", c.apiURL, "error", err)
		return nil
	}
	req.Header.Set("Accept", "application/json")

	logger.InfoKV("quote API request", "url", c.apiURL)

	start := c.now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.WarnKV("quote API unreachable", "url", c.apiURL, "error", err, "duration", time.Since(start))
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.WarnKV("quote API returned non-200", "status_code", resp.StatusCode)
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.WarnKV("read quote response", "error", err)
		return nil
	}

	// 远程返回一个数组，取第一个元素
	var items []map[string]json.RawMessage
	if err := json.Unmarshal(body, &items); err != nil {
		logger.WarnKV("malformed quote payload", "error", err)
		return nil
	}

	if len(items) == 0 {
		logger.Warn("quote API returned empty array")
		return nil
	}

	text := strings.TrimSpace(stringField(items[0], c.textField))
	author := strings.TrimSpace(stringField(items[0], c.authorField))

	// 去除空白后没有文本视为无数据
	if text == "" {
		logger.Warn("quote API returned empty quote text")
		return nil
	}

	if author == "" {
		author = "Unknown"
	}

	logger.InfoKV("quote fetched", "author", author, "duration", time.Since(start))
	return &Quote{Text: text, Author: author}
}

// stringField 从元素中提取字符串字段，缺失或类型不符返回空串
func stringField(item map[string]json.RawMessage, field string) string {
	raw, ok := item[field]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// ClearCache 立即清空缓存
func (c *Client) ClearCache() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cached = nil
	c.fetchedAt = time.Time{}
	logger.Info("quote cache cleared")
}

// CacheStatus 当前缓存条目的诊断信息
type CacheStatus struct {
	Cached  bool
	Age     time.Duration
	TTL     time.Duration
	Expired bool
}

// Status 报告缓存条目的年龄和过期状态
func (c *Client) Status() CacheStatus {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cached == nil {
		return CacheStatus{TTL: c.cacheTTL}
	}

	age := c.now().Sub(c.fetchedAt)
	return CacheStatus{
		Cached:  true,
		Age:     age,
		TTL:     c.cacheTTL,
		Expired: age >= c.cacheTTL,
	}
}
