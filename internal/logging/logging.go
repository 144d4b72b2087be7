// Package logging 配置 CLI 使用的 logrus logger，可选输出到带轮转的日志文件。
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Config struct {
	// Verbosity: 0=info 1=debug 2+=trace
	Verbosity  int
	FilePath   string // 为空时只输出到 stderr
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

func DefaultConfig() Config {
	return Config{
		MaxSizeMB:  10,
		MaxBackups: 3,
		MaxAgeDays: 28,
		Compress:   true,
	}
}

// Setup 创建 logger，返回的 cleanup 需要在退出前调用。
func Setup(cfg Config) (*logrus.Logger, func() error, error) {
	logger := logrus.New()
	logger.SetLevel(Level(cfg.Verbosity))
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if cfg.FilePath == "" {
		logger.SetOutput(os.Stderr)
		return logger, func() error { return nil }, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
		return nil, nil, errors.Wrap(err, "创建日志目录失败")
	}
	lj := &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
		LocalTime:  true,
	}
	logger.SetOutput(io.MultiWriter(os.Stderr, lj))
	return logger, lj.Close, nil
}

func Level(verbosity int) logrus.Level {
	switch {
	case verbosity >= 2:
		return logrus.TraceLevel
	case verbosity == 1:
		return logrus.DebugLevel
	default:
		return logrus.InfoLevel
	}
}
