package cmd

import (
	"context"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/iudx/rs-client/internal/output"
	"github.com/iudx/rs-client/internal/utils/commonutil"
	rssdk "github.com/iudx/rs-client/pkg/rs-sdk"
)

type queryFunc func(ctx context.Context, c *rssdk.Client, args []string, token string) ([]rssdk.Record, error)

// newQueryCommand 生成参数个数固定、结果为记录数组的子命令。
func (a *app) newQueryCommand(use, short string, nargs int, fn queryFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(nargs),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := fn(cmd.Context(), a.client, args, a.cfg.Token)
			if err != nil {
				return err
			}
			a.log.WithField("id", args[0]).WithField("count", len(records)).Debug("查询完成")
			return a.print(cmd, output.ToValues(records))
		},
	}
}

func (a *app) queryCommands() []*cobra.Command {
	return []*cobra.Command{
		a.newQueryCommand("latest <id>", "查询最新一条数据", 1,
			func(ctx context.Context, c *rssdk.Client, args []string, token string) ([]rssdk.Record, error) {
				return c.GetLatestData(ctx, args[0], token)
			}),
		a.newQueryCommand("during <id> <start> <end>", "查询 [start, end] 时间段内的数据", 3,
			func(ctx context.Context, c *rssdk.Client, args []string, token string) ([]rssdk.Record, error) {
				return c.GetDataDuring(ctx, args[0], args[1], args[2], token)
			}),
		a.newQueryCommand("before <id> <time>", "查询 time 之前的数据", 2,
			func(ctx context.Context, c *rssdk.Client, args []string, token string) ([]rssdk.Record, error) {
				return c.GetDataBefore(ctx, args[0], args[1], token)
			}),
		a.newQueryCommand("after <id> <time>", "查询 time 之后的数据", 2,
			func(ctx context.Context, c *rssdk.Client, args []string, token string) ([]rssdk.Record, error) {
				return c.GetDataAfter(ctx, args[0], args[1], token)
			}),
		a.newQueryCommand("around <id> <lat> <lon> <radius>", "查询以 (lat, lon) 为圆心、radius 米范围内的数据", 4,
			func(ctx context.Context, c *rssdk.Client, args []string, token string) ([]rssdk.Record, error) {
				nums, err := parseNumbers(args[1:], "lat", "lon", "radius")
				if err != nil {
					return nil, err
				}
				return c.GetDataAround(ctx, args[0], rssdk.Point{Lat: nums[0], Lon: nums[1]}, nums[2], token)
			}),
		a.newQueryCommand("like <id> <attribute> <value>", "查询属性值与 value 相似的最新数据", 3,
			func(ctx context.Context, c *rssdk.Client, args []string, token string) ([]rssdk.Record, error) {
				return c.GetDataValuesLike(ctx, args[0], args[1], args[2], token)
			}),
		a.newQueryCommand("greater <id> <attribute> <min>", "查询属性值 >= min 的最新数据", 3,
			func(ctx context.Context, c *rssdk.Client, args []string, token string) ([]rssdk.Record, error) {
				nums, err := parseNumbers(args[2:], "min")
				if err != nil {
					return nil, err
				}
				return c.GetDataValuesGreater(ctx, args[0], args[1], nums[0], token)
			}),
		a.newQueryCommand("lesser <id> <attribute> <max>", "查询属性值 <= max 的最新数据", 3,
			func(ctx context.Context, c *rssdk.Client, args []string, token string) ([]rssdk.Record, error) {
				nums, err := parseNumbers(args[2:], "max")
				if err != nil {
					return nil, err
				}
				return c.GetDataValuesLesser(ctx, args[0], args[1], nums[0], token)
			}),
		a.newQueryCommand("between <id> <attribute> <min> <max>", "查询属性值在 [min, max] 之间的最新数据", 4,
			func(ctx context.Context, c *rssdk.Client, args []string, token string) ([]rssdk.Record, error) {
				nums, err := parseNumbers(args[2:], "min", "max")
				if err != nil {
					return nil, err
				}
				return c.GetDataValuesBetween(ctx, args[0], args[1], nums[0], nums[1], token)
			}),
	}
}

func (a *app) searchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search <id> [key=value ...]",
		Short: "使用自定义 options 调用 search，例如 search <id> options=latest",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := commonutil.ParseKeyValues(args[1:])
			if err != nil {
				return err
			}
			records, err := a.client.GetData(cmd.Context(), args[0], rssdk.QueryOptions(opts), a.cfg.Token)
			if err != nil {
				return err
			}
			return a.print(cmd, output.ToValues(records))
		},
	}
}

// parseNumbers 按 names 顺序解析数值参数，出错时带上参数名。
func parseNumbers(args []string, names ...string) ([]float64, error) {
	out := make([]float64, len(names))
	for i, name := range names {
		v, err := strconv.ParseFloat(args[i], 64)
		if err != nil {
			return nil, errors.Errorf("%s 必须是数字: %q", name, args[i])
		}
		out[i] = v
	}
	return out, nil
}
