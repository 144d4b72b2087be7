package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/iudx/rs-client/internal/config"
)

func (a *app) statusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status <id> [id ...]",
		Short: "检查一个或多个资源是否可用",
		Long:  "对每个 id 发起 options=status 查询，首条记录 status 为 down 时视为不可用。多个 id 按 --concurrency 并发查询，任一失败即返回错误。",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(a.cfg.Concurrency)

			results := make([]any, len(args))
			for i, id := range args {
				g.Go(func() error {
					ok, err := a.client.GetStatus(ctx, id, a.cfg.Token)
					if err != nil {
						return errors.Wrapf(err, "查询 %s 状态失败", id)
					}
					a.log.WithField("id", id).WithField("available", ok).Debug("状态查询完成")
					results[i] = map[string]any{"id": id, "available": ok}
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}
			return a.print(cmd, results)
		},
	}
	cmd.Flags().Int(config.KeyConcurrency, 4, "同时查询的最大 id 数")
	_ = a.v.BindPFlag(config.KeyConcurrency, cmd.Flags().Lookup(config.KeyConcurrency))
	return cmd
}
