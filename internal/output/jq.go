package output

import (
	"github.com/itchyny/gojq"
	"github.com/pkg/errors"

	rssdk "github.com/iudx/rs-client/pkg/rs-sdk"
)

// ToValues 把 SDK 返回的记录转换成 gojq/encoding 都能直接处理的 []any。
func ToValues(records []rssdk.Record) []any {
	out := make([]any, len(records))
	for i, r := range records {
		out[i] = map[string]any(r)
	}
	return out
}

// Filter 对整个结果数组执行 jq 表达式，expr 为空时原样返回。
// 例如 `.[] | {time: .LastUpdateDatetime, pm25: .PM2_5}`。
func Filter(values []any, expr string) ([]any, error) {
	if expr == "" {
		return values, nil
	}
	query, err := gojq.Parse(expr)
	if err != nil {
		return nil, errors.Wrap(err, "invalid jq expression")
	}
	code, err := gojq.Compile(query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to compile jq expression")
	}

	out := make([]any, 0, len(values))
	iter := code.Run(values)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := v.(error); isErr {
			return nil, errors.Wrap(err, "jq")
		}
		out = append(out, v)
	}
	return out, nil
}
