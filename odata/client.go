package odata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/BerniceZTT/gwsample_end/service"
	"github.com/BerniceZTT/gwsample_end/utils"
)

const csrfHeader = "X-CSRF-Token"

// Client OData v2 服务客户端
type Client struct {
	baseURL  string
	user     string
	password string
	http     *http.Client

	csrfMu    sync.Mutex
	csrfToken string
}

// NewClient 创建OData客户端，CSRF令牌依赖会话Cookie，因此启用CookieJar
func NewClient(baseURL, user, password string, timeout time.Duration) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		user:     user,
		password: password,
		http: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
	}
}

// BaseURL 服务根地址
func (c *Client) BaseURL() string {
	return c.baseURL
}

// get 发送GET请求并解码JSON响应
func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	if query == nil {
		query = url.Values{}
	}
	query.Set("$format", "json")

	body, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("解析OData响应失败: %w", err)
	}
	return nil
}

// getRaw 发送GET请求并返回原始响应体
func (c *Client) getRaw(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, url.Values{}, nil)
}

// do 发送请求，修改类请求自动携带CSRF令牌，令牌失效时重新获取一次
func (c *Client) do(ctx context.Context, method, path string, query url.Values, headers map[string]string) ([]byte, error) {
	modifying := method != http.MethodGet && method != http.MethodHead

	for attempt := 0; ; attempt++ {
		req, err := c.newRequest(ctx, method, path, query)
		if err != nil {
			return nil, err
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		if modifying {
			token, err := c.token(ctx)
			if err != nil {
				return nil, err
			}
			req.Header.Set(csrfHeader, token)
		}

		start := time.Now()
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, &service.RemoteError{Err: err}
		}
		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		utils.Logger.Debug().
			Str("method", method).
			Str("url", req.URL.String()).
			Int("statusCode", resp.StatusCode).
			Dur("responseTime", time.Since(start)).
			Msg("OData请求")

		if readErr != nil {
			return nil, &service.RemoteError{StatusCode: resp.StatusCode, Err: readErr}
		}

		if modifying && attempt == 0 && resp.StatusCode == http.StatusForbidden &&
			strings.EqualFold(resp.Header.Get(csrfHeader), "required") {
			c.resetToken()
			continue
		}

		if resp.StatusCode == http.StatusNotFound && method == http.MethodGet {
			return nil, fmt.Errorf("%w: %s", service.ErrNotFound, path)
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, &service.RemoteError{StatusCode: resp.StatusCode, Body: string(body)}
		}
		return body, nil
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + encodeQuery(query)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, bytes.NewReader(nil))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.user != "" {
		req.SetBasicAuth(c.user, c.password)
	}
	return req, nil
}

// token 返回缓存的CSRF令牌，没有时向服务根地址获取
func (c *Client) token(ctx context.Context) (string, error) {
	c.csrfMu.Lock()
	defer c.csrfMu.Unlock()
	if c.csrfToken != "" {
		return c.csrfToken, nil
	}

	req, err := c.newRequest(ctx, http.MethodGet, "/", nil)
	if err != nil {
		return "", err
	}
	req.Header.Set(csrfHeader, "Fetch")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &service.RemoteError{Err: err}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	token := resp.Header.Get(csrfHeader)
	if token == "" {
		// 部分服务不启用CSRF保护
		utils.Logger.Debug().Int("statusCode", resp.StatusCode).Msg("服务未返回CSRF令牌")
		return "", nil
	}
	c.csrfToken = token
	return token, nil
}

func (c *Client) resetToken() {
	c.csrfMu.Lock()
	c.csrfToken = ""
	c.csrfMu.Unlock()
}

// encodeQuery 编码查询参数，保留 $ 前缀便于服务端识别系统查询选项
func encodeQuery(query url.Values) string {
	return strings.ReplaceAll(query.Encode(), "%24", "$")
}
