package appointment

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Alijeyrad/hospital_records/cmd/cmdutil"
	"github.com/Alijeyrad/hospital_records/internal/cli"
	"github.com/Alijeyrad/hospital_records/internal/service/appointment"
)

func NewAppointmentCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "appointment",
		Short: "Record and query consultations",
	}

	cmd.AddCommand(newAddCommand())
	cmd.AddCommand(newUpdateCommand())
	cmd.AddCommand(newDeleteCommand())
	cmd.AddCommand(newListCommand())
	cmd.AddCommand(newFilterCommand())
	cmd.AddCommand(newDaysCommand())

	return cmd
}

func bindInput(cmd *cobra.Command, in *appointment.Input) {
	cmd.Flags().StringVar(&in.PatientID, "patient", "", "patient ID")
	cmd.Flags().StringVar(&in.DoctorID, "doctor", "", "doctor ID")
	cmd.Flags().StringVar(&in.Date, "date", "", "appointment date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&in.Diagnosis, "diagnosis", "", "diagnosis")
	cmd.Flags().StringVar(&in.ConsultingCharge, "charge", "", "consulting charge, empty means 0")
}

func newAddCommand() *cobra.Command {
	var (
		id string
		in appointment.Input
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an appointment",
		Long:  "Record an appointment. Without --id the next free A-prefixed ID is used.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdutil.Run(cmd, func(ctx context.Context, a *cli.Actions) {
				if id == "" {
					next, ok := a.NextAppointmentID(ctx)
					if !ok {
						return
					}
					id = next
				}
				a.AddAppointment(ctx, id, in)
			})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "appointment ID, e.g. A012")
	bindInput(cmd, &in)

	return cmd
}

func newUpdateCommand() *cobra.Command {
	var in appointment.Input

	cmd := &cobra.Command{
		Use:   "update <appointment-id>",
		Short: "Replace every field of an appointment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdutil.Run(cmd, func(ctx context.Context, a *cli.Actions) {
				a.UpdateAppointment(ctx, args[0], in)
			})
		},
	}
	bindInput(cmd, &in)

	return cmd
}

func newDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <appointment-id>",
		Short: "Delete an appointment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdutil.Run(cmd, func(ctx context.Context, a *cli.Actions) {
				a.DeleteAppointment(ctx, args[0])
			})
		},
	}
}

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every appointment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdutil.Run(cmd, func(ctx context.Context, a *cli.Actions) {
				a.ViewAppointments(ctx)
			})
		},
	}
}

func newFilterCommand() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "List appointments dated within a range, both ends inclusive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdutil.Run(cmd, func(ctx context.Context, a *cli.Actions) {
				a.FilterAppointments(ctx, from, to)
			})
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "first date of the range")
	cmd.Flags().StringVar(&to, "to", "", "last date of the range")

	return cmd
}

func newDaysCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "days <patient-id>",
		Short: "Show the days between a patient's consecutive appointments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdutil.Run(cmd, func(ctx context.Context, a *cli.Actions) {
				a.DaysBetween(ctx, args[0])
			})
		},
	}
}
