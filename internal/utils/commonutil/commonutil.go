package commonutil

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandHome 把以 ~ 开头的路径展开为 $HOME 下的绝对路径，其余路径原样返回（去掉首尾空白）。
func ExpandHome(p string) string {
	p = strings.TrimSpace(p)
	if !strings.HasPrefix(p, "~") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	rest := strings.TrimPrefix(p, "~")
	rest = strings.TrimPrefix(rest, string(filepath.Separator))
	return filepath.Join(home, rest)
}

// ParseKeyValues 把 ["k=v", ...] 解析为 map，v 中允许再出现 =。
func ParseKeyValues(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, kv := range pairs {
		k, v, ok := strings.Cut(kv, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, &InvalidPairError{Pair: kv}
		}
		out[k] = v
	}
	return out, nil
}

type InvalidPairError struct {
	Pair string
}

func (e *InvalidPairError) Error() string {
	return "参数格式应为 key=value: " + e.Pair
}
