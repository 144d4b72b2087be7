// Package config 负责把 flag / 环境变量 / 配置文件 / .env 合并成 CLI 的运行配置。
// 优先级：显式 flag > 环境变量(IUDX_RS_*) > 配置文件 > flag 默认值。
package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/iudx/rs-client/internal/constants/enums"
	"github.com/iudx/rs-client/internal/utils/commonutil"
	rssdk "github.com/iudx/rs-client/pkg/rs-sdk"
)

const EnvPrefix = "IUDX_RS"

// viper key，与 flag 名一致
const (
	KeyConfig      = "config"
	KeyURL         = "url"
	KeyCert        = "cert"
	KeyKey         = "key"
	KeyToken       = "token"
	KeyTimeout     = "timeout"
	KeyOutput      = "output"
	KeyJQ          = "jq"
	KeyVerbose     = "verbose"
	KeyLogFile     = "log-file"
	KeyConcurrency = "concurrency"
)

type Config struct {
	URL         string
	Cert        string
	Key         string
	Token       string
	Timeout     time.Duration
	Output      enums.OutputFormat
	JQ          string
	Verbose     int
	LogFile     string
	Concurrency int
}

// NewViper 创建带环境变量绑定的 viper 实例：log-file 对应 IUDX_RS_LOG_FILE。
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// LoadDotEnv 加载 .env（不覆盖已存在的环境变量），文件不存在时忽略。
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return errors.Wrapf(err, "加载 %s 失败", p)
		}
	}
	return nil
}

// ReadConfigFile 读取配置文件。path 为空时在 . 和 $HOME/.iudx 下查找 rs-client.{yaml,toml,json}，找不到不算错误。
func ReadConfigFile(v *viper.Viper, path string, log logrus.FieldLogger) error {
	if path != "" {
		v.SetConfigFile(commonutil.ExpandHome(path))
	} else {
		v.SetConfigName("rs-client")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.iudx")
	}

	err := v.ReadInConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		log.Debug("未找到配置文件，使用 flag/环境变量")
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "读取配置文件失败")
	}
	log.WithField("file", v.ConfigFileUsed()).Debug("已加载配置文件")
	return nil
}

// Load 从 viper 中取出配置并校验。
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		URL:         strings.TrimSpace(v.GetString(KeyURL)),
		Cert:        commonutil.ExpandHome(v.GetString(KeyCert)),
		Key:         commonutil.ExpandHome(v.GetString(KeyKey)),
		Token:       strings.TrimSpace(v.GetString(KeyToken)),
		Timeout:     v.GetDuration(KeyTimeout),
		JQ:          strings.TrimSpace(v.GetString(KeyJQ)),
		Verbose:     v.GetInt(KeyVerbose),
		LogFile:     commonutil.ExpandHome(v.GetString(KeyLogFile)),
		Concurrency: v.GetInt(KeyConcurrency),
	}

	output := v.GetString(KeyOutput)
	format, err := enums.ParseOutputFormat(output)
	if err != nil {
		return nil, errors.Wrapf(err, "不支持的输出格式 %q", output)
	}
	cfg.Output = format

	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.URL == "" {
		return errors.New("url 不能为空（--url 或 IUDX_RS_URL）")
	}
	if (c.Cert == "") != (c.Key == "") {
		return errors.New("cert 与 key 必须同时配置")
	}
	if c.Timeout < 0 {
		return errors.New("timeout 不能为负数")
	}
	return nil
}

// NewClient 按配置创建 SDK 客户端。
func (c *Config) NewClient(log logrus.FieldLogger) (*rssdk.Client, error) {
	opts := []rssdk.Option{
		rssdk.WithTimeout(c.Timeout),
		rssdk.WithLogger(log),
	}
	if c.Cert != "" {
		opts = append(opts, rssdk.WithCertificate(c.Cert, c.Key))
	}
	return rssdk.New(c.URL, opts...)
}
