package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/iudx/rs-client/internal/config"
	"github.com/iudx/rs-client/internal/constants/enums"
	"github.com/iudx/rs-client/internal/logging"
	"github.com/iudx/rs-client/internal/output"
	rssdk "github.com/iudx/rs-client/pkg/rs-sdk"
)

// app 保存一次命令执行期间共享的配置、logger 与 SDK 客户端，在 PersistentPreRunE 中初始化。
type app struct {
	v       *viper.Viper
	cfg     *config.Config
	log     *logrus.Logger
	client  *rssdk.Client
	cleanup func() error
}

// NewRootCommand 构造完整的命令树，每次调用返回独立实例（测试中互不影响）。
func NewRootCommand() *cobra.Command {
	rootCmd, _ := newRootCommand()
	return rootCmd
}

func newRootCommand() (*cobra.Command, *app) {
	a := &app{v: config.NewViper()}

	rootCmd := &cobra.Command{
		Use:               "rs-client",
		Short:             "IUDX resource-server 查询客户端",
		Long:              "rs-client 是 resource-server 的命令行客户端：按 latest / 时间区间 / 地理半径 / 属性比较等方式查询数据，或检查资源状态。",
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringP(config.KeyConfig, "c", "", "配置文件路径（默认查找 ./rs-client.yaml 与 ~/.iudx/rs-client.yaml）")
	pf.StringP(config.KeyURL, "u", "", "resource-server 地址，例如 https://rs.example.org/resource-server/pscdcl/v1")
	pf.String(config.KeyCert, "", "mTLS 客户端证书路径（PEM），需与 --key 同时配置")
	pf.String(config.KeyKey, "", "mTLS 客户端私钥路径（PEM），需与 --cert 同时配置")
	pf.StringP(config.KeyToken, "t", "", "访问受保护资源的 token")
	pf.Duration(config.KeyTimeout, 0, "单次请求超时，0 表示不超时")
	format := enums.OutputFormatJSON
	pf.VarP(&format, config.KeyOutput, "o", "输出格式："+strings.Join(enums.OutputFormatNames(), " / "))
	pf.String(config.KeyJQ, "", "用 jq 表达式过滤结果，例如 '.[] | .temp'")
	pf.CountP(config.KeyVerbose, "v", "-v 输出 debug 日志（-vv 输出 trace）")
	pf.String(config.KeyLogFile, "", "日志文件路径（自动轮转），为空时只输出到 stderr")
	_ = a.v.BindPFlags(pf)

	rootCmd.AddCommand(a.queryCommands()...)
	rootCmd.AddCommand(a.searchCommand(), a.statusCommand(), a.urlCommand())
	return rootCmd, a
}

// Execute 入口
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd, a := newRootCommand()
	if err := execute(ctx, rootCmd, a); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// execute 运行命令，无论成功失败都会关闭日志文件等资源（cobra 在 RunE 出错时不会调用 PostRun）。
func execute(ctx context.Context, rootCmd *cobra.Command, a *app) error {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil && a.log != nil {
		a.log.WithError(err).Error("rs-client 执行失败")
	}
	if cerr := a.teardown(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	boot := logrus.New()
	boot.SetOutput(cmd.ErrOrStderr())
	boot.SetLevel(logging.Level(a.v.GetInt(config.KeyVerbose)))
	if err := config.ReadConfigFile(a.v, a.v.GetString(config.KeyConfig), boot); err != nil {
		return err
	}

	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}

	lc := logging.DefaultConfig()
	lc.Verbosity = cfg.Verbose
	lc.FilePath = cfg.LogFile
	log, cleanup, err := logging.Setup(lc)
	if err != nil {
		return err
	}
	a.cfg, a.log, a.cleanup = cfg, log, cleanup

	client, err := cfg.NewClient(log)
	if err != nil {
		return err
	}
	a.client = client

	log.WithFields(logrus.Fields{
		"url":     cfg.URL,
		"mtls":    cfg.Cert != "",
		"timeout": cfg.Timeout,
		"output":  cfg.Output.String(),
	}).Debug("rs-client 初始化完成")
	return nil
}

// teardown 只执行一次 cleanup。
func (a *app) teardown() error {
	if a.cleanup == nil {
		return nil
	}
	cleanup := a.cleanup
	a.cleanup = nil
	return cleanup()
}

// print 先做 jq 过滤再按 --output 输出。
func (a *app) print(cmd *cobra.Command, values []any) error {
	values, err := output.Filter(values, a.cfg.JQ)
	if err != nil {
		return err
	}
	return output.Write(cmd.OutOrStdout(), a.cfg.Output, values)
}
