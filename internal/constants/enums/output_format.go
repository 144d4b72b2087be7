package enums

import (
	"strings"

	"github.com/nft-rainbow/rainbow-goutils/utils/enumutils"
)

// OutputFormat 表示 CLI 输出查询结果的格式，同时实现 pflag.Value，可直接作为命令行 flag 使用。
type OutputFormat int8

const (
	OutputFormatJSON OutputFormat = iota + 1
	OutputFormatTable
	OutputFormatCSV
)

// 按帮助信息中的展示顺序排列
var outputFormatNames = []string{"json", "table", "csv"}

var outputFormatEb = enumutils.NewEnumBase("OutputFormat", map[OutputFormat]string{
	OutputFormatJSON:  outputFormatNames[0],
	OutputFormatTable: outputFormatNames[1],
	OutputFormatCSV:   outputFormatNames[2],
})

// OutputFormatNames 返回所有可选格式名，顺序固定。
func OutputFormatNames() []string {
	return append([]string(nil), outputFormatNames...)
}

// ParseOutputFormat 忽略大小写与首尾空白，空串返回 OutputFormatJSON。
func ParseOutputFormat(s string) (OutputFormat, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return OutputFormatJSON, nil
	}
	return outputFormatEb.Parse(s)
}

func (f OutputFormat) String() string {
	return outputFormatEb.String(f)
}

// Set 实现 pflag.Value；解析失败时保持原值。
func (f *OutputFormat) Set(s string) error {
	val, err := ParseOutputFormat(s)
	if err != nil {
		return err
	}
	*f = val
	return nil
}

// Type 实现 pflag.Value，用于 --help 中的类型提示。
func (f *OutputFormat) Type() string {
	return "format"
}

func (f OutputFormat) MarshalText() ([]byte, error) {
	return outputFormatEb.MarshalText(f)
}

func (f *OutputFormat) UnmarshalText(data []byte) error {
	return f.Set(string(data))
}
