package rssdk

import (
	"context"
	"crypto/tls"
	"io"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var ErrIncompleteCertPair = errors.New("tls client cert and key must be configured together")

// HTTPClient 是最原生的 HTTP 交互层：负责 resty client、证书、通用 search 请求。
type HTTPClient struct {
	http    *resty.Client
	ownHTTP bool
	log     logrus.FieldLogger
	headers map[string]string

	certFile string
	keyFile  string
	timeout  time.Duration
}

type Option func(*HTTPClient)

// NewHTTPClient 创建底层 HTTP 客户端。
// cert/key 必须成对出现，否则直接返回 ErrIncompleteCertPair。
func NewHTTPClient(opts ...Option) (*HTTPClient, error) {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	c := &HTTPClient{
		http:    resty.New(),
		ownHTTP: true,
		log:     discard,
		headers: map[string]string{"Accept": "application/json"},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if (c.certFile == "") != (c.keyFile == "") {
		return nil, ErrIncompleteCertPair
	}

	// header、超时都在单次请求上设置，不改动调用方注入的 resty client
	if c.ownHTTP {
		c.http.SetLogger(c.log)
	}
	if c.certFile != "" {
		cert, err := tls.LoadX509KeyPair(c.certFile, c.keyFile)
		if err != nil {
			return nil, errors.Wrapf(err, "load tls client cert %s", c.certFile)
		}
		c.http.SetCertificates(cert)
	}
	return c, nil
}

// WithRestyClient 使用调用方提供的 resty client。
// 注意：若同时配置了 WithCertificate，证书会追加到 rc 的 TLS 配置上（证书属于 transport 级别），
// 共享 rc 的其他调用方也会带上该证书；header 与超时只作用于本客户端发出的请求。
func WithRestyClient(rc *resty.Client) Option {
	return func(c *HTTPClient) {
		if rc != nil {
			c.http = rc
			c.ownHTTP = false
		}
	}
}

// WithCertificate 配置 mTLS 客户端证书（PEM 文件路径）。
func WithCertificate(certFile, keyFile string) Option {
	return func(c *HTTPClient) {
		c.certFile = strings.TrimSpace(certFile)
		c.keyFile = strings.TrimSpace(keyFile)
	}
}

// WithTimeout 设置单次请求超时（通过 context deadline 实现），0 表示不超时。
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		c.timeout = d
	}
}

func WithHeader(key, value string) Option {
	return func(c *HTTPClient) {
		if key != "" {
			c.headers[key] = value
		}
	}
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(c *HTTPClient) {
		if l != nil {
			c.log = l
		}
	}
}

// Search 向 {url}/search 发送 JSON POST，不做重试，也不解析状态码。
func (c *HTTPClient) Search(ctx context.Context, url string, body any) (*resty.Response, error) {
	target := strings.TrimRight(url, "/") + "/search"
	log := c.log.WithFields(logrus.Fields{
		"request_id": uuid.NewString(),
		"url":        target,
	})
	log.WithField("body", body).Debug("resource-server search request")

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeaders(c.headers).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(target)
	if err != nil {
		// 传输层错误（连接失败、TLS、超时）原样返回
		log.WithError(err).Debug("resource-server search failed")
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"status":  resp.StatusCode(),
		"elapsed": resp.Time(),
	}).Debug("resource-server search response")
	return resp, nil
}
