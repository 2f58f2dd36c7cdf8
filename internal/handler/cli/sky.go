package cli

import (
	"fmt"

	"AstroInsight/pkg/util"

	"github.com/spf13/cobra"
)

func newSkyCmd(rt *runtime) *cobra.Command {
	var at string
	cmd := &cobra.Command{
		Use:   "sky",
		Short: "Print the sky at a moment (default now)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := rt.context(cmd)
			defer cancel()

			if at == "" {
				res, err := rt.toolkit.Charts.Today(ctx)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), res)
			}
			t, ok := util.ParseTime(at)
			if !ok {
				return fmt.Errorf("invalid --at %q: want RFC3339, 2006-01-02T15:04 or unix seconds", at)
			}
			res, err := rt.toolkit.Charts.SkyAt(ctx, t)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().StringVar(&at, "at", "", "moment in UTC (RFC3339, 2006-01-02T15:04 or unix seconds)")
	return cmd
}
