package cmd

import (
	"github.com/spf13/cobra"
)

func (a *app) urlCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "url",
		Short: "显示由 --url 解析出的 domain / port / version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			domain, port, version := a.client.Params()
			return a.print(cmd, []any{map[string]any{
				"base":     a.client.BaseURL(),
				"resource": a.client.URLFor(),
				"domain":   domain,
				"port":     port,
				"version":  version,
			}})
		},
	}
}
