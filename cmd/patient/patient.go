package patient

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Alijeyrad/hospital_records/cmd/cmdutil"
	"github.com/Alijeyrad/hospital_records/internal/cli"
	"github.com/Alijeyrad/hospital_records/internal/service/patient"
)

func NewPatientCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patient",
		Short: "Admit, update and look up patients",
	}

	cmd.AddCommand(newAddCommand())
	cmd.AddCommand(newUpdateCommand())
	cmd.AddCommand(newDeleteCommand())
	cmd.AddCommand(newListCommand())
	cmd.AddCommand(newSearchCommand())
	cmd.AddCommand(newDaysCommand())
	cmd.AddCommand(newUsageCommand())

	return cmd
}

// bindInput registers the patient fields as flags on cmd.
func bindInput(cmd *cobra.Command, in *patient.Input) {
	cmd.Flags().StringVar(&in.Name, "name", "", "full name (letters and spaces)")
	cmd.Flags().StringVar(&in.Age, "age", "", "age in years (0-120)")
	cmd.Flags().StringVar(&in.Gender, "gender", "", "Male, Female or Other")
	cmd.Flags().StringVar(&in.AdmissionDate, "admission-date", "", "admission date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&in.ContactNo, "contact", "", "10 to 15 digit contact number")
}

func newAddCommand() *cobra.Command {
	var in patient.Input

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Admit a patient under the next free patient ID",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdutil.Run(cmd, func(ctx context.Context, a *cli.Actions) {
				id, ok := a.NextPatientID(ctx)
				if !ok {
					return
				}
				a.AddPatient(ctx, id, in)
			})
		},
	}
	bindInput(cmd, &in)

	return cmd
}

func newUpdateCommand() *cobra.Command {
	var in patient.Input

	cmd := &cobra.Command{
		Use:   "update <patient-id>",
		Short: "Replace every field of a patient",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdutil.Run(cmd, func(ctx context.Context, a *cli.Actions) {
				a.UpdatePatient(ctx, args[0], in)
			})
		},
	}
	bindInput(cmd, &in)

	return cmd
}

func newDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <patient-id>",
		Short: "Delete a patient",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdutil.Run(cmd, func(ctx context.Context, a *cli.Actions) {
				a.DeletePatient(ctx, args[0])
			})
		},
	}
}

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every patient",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdutil.Run(cmd, func(ctx context.Context, a *cli.Actions) {
				a.ViewPatients(ctx)
			})
		},
	}
}

func newSearchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search <name-fragment>",
		Short: "Find patients whose name contains a fragment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdutil.Run(cmd, func(ctx context.Context, a *cli.Actions) {
				a.SearchPatients(ctx, args[0])
			})
		},
	}
}

func newDaysCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "days <patient-id>",
		Short: "Show how many days a patient has been admitted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdutil.Run(cmd, func(ctx context.Context, a *cli.Actions) {
				a.DaysAdmitted(ctx, args[0])
			})
		},
	}
}
