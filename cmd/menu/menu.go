package menu

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Alijeyrad/hospital_records/cmd/cmdutil"
	"github.com/Alijeyrad/hospital_records/internal/cli"
)

func NewMenuCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Work through numbered interactive menus",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdutil.Run(cmd, func(ctx context.Context, a *cli.Actions) {
				cli.NewMenu(a, cmd.InOrStdin()).Run(ctx)
			})
		},
	}
}
