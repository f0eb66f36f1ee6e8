package doctor

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Alijeyrad/hospital_records/cmd/cmdutil"
	"github.com/Alijeyrad/hospital_records/internal/cli"
	"github.com/Alijeyrad/hospital_records/internal/service/doctor"
)

func NewDoctorCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Manage the doctor roster",
	}

	cmd.AddCommand(newAddCommand())
	cmd.AddCommand(newUpdateCommand())
	cmd.AddCommand(newDeleteCommand())
	cmd.AddCommand(newListCommand())
	cmd.AddCommand(newSearchCommand())

	return cmd
}

func bindInput(cmd *cobra.Command, in *doctor.Input) {
	cmd.Flags().StringVar(&in.Name, "name", "", "full name (letters and spaces)")
	cmd.Flags().StringVar(&in.Specialization, "specialization", "", "specialization")
	cmd.Flags().StringVar(&in.ContactNo, "contact", "", "10 to 15 digit contact number")
}

func newAddCommand() *cobra.Command {
	var (
		id string
		in doctor.Input
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a doctor",
		Long:  "Add a doctor. Without --id the next free D-prefixed ID is used.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdutil.Run(cmd, func(ctx context.Context, a *cli.Actions) {
				if id == "" {
					next, ok := a.NextDoctorID(ctx)
					if !ok {
						return
					}
					id = next
				}
				a.AddDoctor(ctx, id, in)
			})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "doctor ID, e.g. D007")
	bindInput(cmd, &in)

	return cmd
}

func newUpdateCommand() *cobra.Command {
	var in doctor.Input

	cmd := &cobra.Command{
		Use:   "update <doctor-id>",
		Short: "Replace every field of a doctor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdutil.Run(cmd, func(ctx context.Context, a *cli.Actions) {
				a.UpdateDoctor(ctx, args[0], in)
			})
		},
	}
	bindInput(cmd, &in)

	return cmd
}

func newDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <doctor-id>",
		Short: "Delete a doctor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdutil.Run(cmd, func(ctx context.Context, a *cli.Actions) {
				a.DeleteDoctor(ctx, args[0])
			})
		},
	}
}

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every doctor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdutil.Run(cmd, func(ctx context.Context, a *cli.Actions) {
				a.ViewDoctors(ctx)
			})
		},
	}
}

func newSearchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search <name-fragment>",
		Short: "Find doctors whose name contains a fragment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdutil.Run(cmd, func(ctx context.Context, a *cli.Actions) {
				a.SearchDoctors(ctx, args[0])
			})
		},
	}
}
