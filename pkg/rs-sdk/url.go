package rssdk

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

const DefaultVersion = "1"

var ErrInvalidBaseURL = errors.New("invalid resource-server base url")

var versionPattern = regexp.MustCompile(`/resource-server/v([0-9][0-9.]*)`)

// ResourceURL 是从 base url 拆出来的 domain/port/version。
type ResourceURL struct {
	Scheme  string
	Domain  string
	Port    string
	Version string
}

// normalizeBaseURL 未带 scheme 时补 https://，再去掉 :// 之后的尾部 /。
// 多次调用结果不变；"https://" 之类只有 scheme 的输入保持原样，由 ParseResourceURL 拒绝。
func normalizeBaseURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	scheme, rest, _ := strings.Cut(raw, "://")
	return scheme + "://" + strings.TrimRight(rest, "/")
}

// ParseResourceURL 解析 base url：
// - port 缺省时按 scheme 取 443/80
// - path 里有 /resource-server/v{N} 时取 N 作为 version，否则为 DefaultVersion
func ParseResourceURL(raw string) (ResourceURL, error) {
	u, err := url.Parse(normalizeBaseURL(raw))
	if err != nil {
		return ResourceURL{}, errors.Wrapf(ErrInvalidBaseURL, "%s: %v", raw, err)
	}
	if u.Hostname() == "" {
		return ResourceURL{}, errors.Wrapf(ErrInvalidBaseURL, "%s: missing host", raw)
	}

	port := u.Port()
	if port == "" {
		switch u.Scheme {
		case "http":
			port = "80"
		default:
			port = "443"
		}
	}

	version := DefaultVersion
	if m := versionPattern.FindStringSubmatch(u.Path); m != nil {
		version = m[1]
	}

	return ResourceURL{
		Scheme:  u.Scheme,
		Domain:  u.Hostname(),
		Port:    port,
		Version: version,
	}, nil
}

func (u ResourceURL) String() string {
	return fmt.Sprintf("%s://%s:%s/resource-server/v%s", u.Scheme, u.Domain, u.Port, u.Version)
}
