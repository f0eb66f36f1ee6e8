package billing

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Alijeyrad/hospital_records/cmd/cmdutil"
	"github.com/Alijeyrad/hospital_records/internal/cli"
	"github.com/Alijeyrad/hospital_records/internal/service/billing"
)

func NewBillingCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "billing",
		Short: "Bill staged services and produce invoices",
	}

	cmd.AddCommand(newAddCommand())
	cmd.AddCommand(newUpdateCommand())
	cmd.AddCommand(newDeleteCommand())
	cmd.AddCommand(newListCommand())
	cmd.AddCommand(newTotalCommand())
	cmd.AddCommand(newInvoiceCommand())

	return cmd
}

func newAddCommand() *cobra.Command {
	var in billing.Input

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Bill every service staged for a patient",
		Long: `Bill every service staged for a patient, record the billed lines,
clear the staging rows and write the invoice file.
Without --id the next free B-prefixed ID is used; without --date today is used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdutil.Run(cmd, func(ctx context.Context, a *cli.Actions) {
				if in.ID == "" {
					next, ok := a.NextBillID(ctx)
					if !ok {
						return
					}
					in.ID = next
				}
				a.AddBill(ctx, in)
			})
		},
	}
	cmd.Flags().StringVar(&in.ID, "id", "", "bill ID, e.g. B004")
	cmd.Flags().StringVar(&in.PatientID, "patient", "", "patient ID")
	cmd.Flags().StringVar(&in.BillingDate, "date", "", "billing date (YYYY-MM-DD)")

	return cmd
}

func newUpdateCommand() *cobra.Command {
	var in billing.Input

	cmd := &cobra.Command{
		Use:   "update <bill-id>",
		Short: "Move a bill to another patient or date",
		Long:  "Move a bill to another patient or date. The total recorded at creation is kept.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.ID = args[0]
			return cmdutil.Run(cmd, func(ctx context.Context, a *cli.Actions) {
				a.UpdateBill(ctx, in)
			})
		},
	}
	cmd.Flags().StringVar(&in.PatientID, "patient", "", "patient ID")
	cmd.Flags().StringVar(&in.BillingDate, "date", "", "billing date (YYYY-MM-DD)")

	return cmd
}

func newDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <bill-id>",
		Short: "Delete a bill and its billed services",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdutil.Run(cmd, func(ctx context.Context, a *cli.Actions) {
				a.DeleteBill(ctx, args[0])
			})
		},
	}
}

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every bill",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdutil.Run(cmd, func(ctx context.Context, a *cli.Actions) {
				a.ViewBills(ctx)
			})
		},
	}
}

func newTotalCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "total <patient-id>",
		Short: "Compute a patient's live total of staged services and consultations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdutil.Run(cmd, func(ctx context.Context, a *cli.Actions) {
				a.ComputeTotal(ctx, args[0])
			})
		},
	}
}

func newInvoiceCommand() *cobra.Command {
	var (
		billID    string
		patientID string
		pick      int
		opts      cli.InvoiceOptions
	)

	cmd := &cobra.Command{
		Use:   "invoice",
		Short: "Write the invoice of a bill",
		Long: `Write the invoice of a bill to the invoice directory.
Select the bill with --bill, or with --patient when the patient has a single
bill. Patients with several bills need --pick with the listed number.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdutil.Run(cmd, func(ctx context.Context, a *cli.Actions) {
				if billID != "" {
					a.InvoiceForBill(ctx, billID, opts)
					return
				}
				a.InvoiceForPatient(ctx, patientID, pick, opts)
			})
		},
	}
	cmd.Flags().StringVar(&billID, "bill", "", "bill ID")
	cmd.Flags().StringVar(&patientID, "patient", "", "patient ID")
	cmd.Flags().IntVar(&pick, "pick", 0, "number of the bill to use when the patient has several")
	cmd.Flags().StringVar(&opts.MailTo, "mail-to", "", "also e-mail the invoice to this address")
	cmd.Flags().BoolVar(&opts.Archive, "archive", false, "also upload the invoice to the archive bucket")
	cmd.MarkFlagsMutuallyExclusive("bill", "patient")
	cmd.MarkFlagsOneRequired("bill", "patient")

	return cmd
}
