package rssdk

import (
	"context"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

var ErrEmptyBaseURL = errors.New("resource-server base url is empty")

// Client 是 SDK 对外入口：配置在构造时确定，之后不可变，可并发使用。
type Client struct {
	baseURL string
	url     ResourceURL
	http    *HTTPClient
}

// New 创建 resource-server 客户端。baseURL 不带 scheme 时按 https 处理。
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = normalizeBaseURL(baseURL)
	if baseURL == "" {
		return nil, ErrEmptyBaseURL
	}
	ru, err := ParseResourceURL(baseURL)
	if err != nil {
		return nil, err
	}

	hc, err := NewHTTPClient(opts...)
	if err != nil {
		return nil, err
	}
	return &Client{baseURL: baseURL, url: ru, http: hc}, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// URLFor 返回 {scheme}://{domain}:{port}/resource-server/v{version}。
func (c *Client) URLFor() string {
	return c.url.String()
}

// Params 返回 (domain, port, version)。
func (c *Client) Params() (string, string, string) {
	return c.url.Domain, c.url.Port, c.url.Version
}

// Search 直接向 {url}/search 发请求，返回原始响应，不解释状态码。
func (c *Client) Search(ctx context.Context, url string, body any) (*resty.Response, error) {
	return c.http.Search(ctx, url, body)
}
