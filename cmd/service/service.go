package service

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Alijeyrad/hospital_records/cmd/cmdutil"
	"github.com/Alijeyrad/hospital_records/internal/cli"
	"github.com/Alijeyrad/hospital_records/internal/service/catalog"
)

func NewServiceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "service",
		Short: "Manage the catalog of billable services",
	}

	cmd.AddCommand(newAddCommand())
	cmd.AddCommand(newUpdateCommand())
	cmd.AddCommand(newDeleteCommand())
	cmd.AddCommand(newListCommand())

	return cmd
}

func bindInput(cmd *cobra.Command, in *catalog.Input) {
	cmd.Flags().StringVar(&in.Name, "name", "", "service name")
	cmd.Flags().StringVar(&in.Cost, "cost", "", "cost between 0 and 5000")
}

func newAddCommand() *cobra.Command {
	var (
		id string
		in catalog.Input
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a catalog service",
		Long:  "Add a catalog service. Without --id the next free S-prefixed ID is used.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdutil.Run(cmd, func(ctx context.Context, a *cli.Actions) {
				if id == "" {
					next, ok := a.NextServiceID(ctx)
					if !ok {
						return
					}
					id = next
				}
				a.AddService(ctx, id, in)
			})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "service ID, e.g. S04")
	bindInput(cmd, &in)

	return cmd
}

func newUpdateCommand() *cobra.Command {
	var in catalog.Input

	cmd := &cobra.Command{
		Use:   "update <service-id>",
		Short: "Replace the name and cost of a service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdutil.Run(cmd, func(ctx context.Context, a *cli.Actions) {
				a.UpdateService(ctx, args[0], in)
			})
		},
	}
	bindInput(cmd, &in)

	return cmd
}

func newDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <service-id>",
		Short: "Delete a catalog service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdutil.Run(cmd, func(ctx context.Context, a *cli.Actions) {
				a.DeleteService(ctx, args[0])
			})
		},
	}
}

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the service catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdutil.Run(cmd, func(ctx context.Context, a *cli.Actions) {
				a.ViewServices(ctx)
			})
		},
	}
}
