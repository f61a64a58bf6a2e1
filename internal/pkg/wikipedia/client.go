package wikipedia

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"wordsalad/internal/config"
	"wordsalad/internal/pkg/textutil"
)

// Client Wikipedia 摘要客户端（MediaWiki action API）
type Client struct {
	apiURL     string
	userAgent  string
	maxChars   int
	httpClient *http.Client
}

// NewClient 创建 Wikipedia 客户端
// maxChars 为返回摘要的最大字符数，<=0 表示不截断
func NewClient(cfg *config.WikipediaConfig, maxChars int) *Client {
	apiURL := cfg.BaseURL
	if apiURL == "" {
		lang := cfg.Language
		if lang == "" {
			lang = "en"
		}
		apiURL = fmt.Sprintf("https://%s.wikipedia.org/w/api.php", lang)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		apiURL:    apiURL,
		userAgent: cfg.UserAgent,
		maxChars:  maxChars,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type queryResponse struct {
	Query struct {
		Pages map[string]page `json:"pages"`
	} `json:"query"`
	Error *struct {
		Code string `json:"code"`
		Info string `json:"info"`
	} `json:"error"`
}

// page 查询结果中的页面
// Missing/Invalid 在 formatversion=1 时为 ""，formatversion=2 时为 true
type page struct {
	PageID  int             `json:"pageid"`
	Title   string          `json:"title"`
	Extract string          `json:"extract"`
	Missing json.RawMessage `json:"missing"`
	Invalid json.RawMessage `json:"invalid"`
}

func (p page) exists() bool {
	return len(p.Missing) == 0 && len(p.Invalid) == 0 && p.PageID > 0
}

// Summary 获取主题的摘要（首段纯文本）
// 页面不存在时返回 ("", false, nil)
func (c *Client) Summary(ctx context.Context, topic string) (string, bool, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("format", "json")
	params.Set("prop", "extracts")
	params.Set("exintro", "1")
	params.Set("explaintext", "1")
	params.Set("redirects", "1")
	params.Set("titles", topic)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", false, fmt.Errorf("create request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", false, fmt.Errorf("wikipedia request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", false, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", false, fmt.Errorf("wikipedia returned status %d: %s", resp.StatusCode, textutil.TruncateRunes(string(body), 200))
	}

	var qr queryResponse
	if err := json.Unmarshal(body, &qr); err != nil {
		return "", false, fmt.Errorf("decode response: %w", err)
	}
	if qr.Error != nil {
		return "", false, fmt.Errorf("wikipedia error %s: %s", qr.Error.Code, qr.Error.Info)
	}

	for _, p := range qr.Query.Pages {
		if !p.exists() {
			continue
		}
		extract := strings.TrimSpace(p.Extract)
		if extract == "" {
			continue
		}
		return textutil.TruncateRunes(extract, c.maxChars), true, nil
	}

	return "", false, nil
}
