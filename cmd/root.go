package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	appointmentcmd "github.com/Alijeyrad/hospital_records/cmd/appointment"
	billingcmd "github.com/Alijeyrad/hospital_records/cmd/billing"
	doctorcmd "github.com/Alijeyrad/hospital_records/cmd/doctor"
	exportcmd "github.com/Alijeyrad/hospital_records/cmd/export"
	menucmd "github.com/Alijeyrad/hospital_records/cmd/menu"
	patientcmd "github.com/Alijeyrad/hospital_records/cmd/patient"
	servicecmd "github.com/Alijeyrad/hospital_records/cmd/service"
	systemcmd "github.com/Alijeyrad/hospital_records/cmd/system"
)

var (
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "hospital",
	Short: "Hospital records: patients, doctors, appointments and billing.",
	Long: `hospital keeps the records of a small hospital in a relational database:
patients, doctors, a catalog of billable services, appointments and bills.
Run "hospital menu" for the numbered interactive menus.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global config flag, available for all commands.
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")

	// Attach top-level command trees.
	rootCmd.AddCommand(systemcmd.NewSystemCommand())
	rootCmd.AddCommand(patientcmd.NewPatientCommand())
	rootCmd.AddCommand(doctorcmd.NewDoctorCommand())
	rootCmd.AddCommand(servicecmd.NewServiceCommand())
	rootCmd.AddCommand(appointmentcmd.NewAppointmentCommand())
	rootCmd.AddCommand(billingcmd.NewBillingCommand())
	rootCmd.AddCommand(exportcmd.NewExportCommand())
	rootCmd.AddCommand(menucmd.NewMenuCommand())
}
