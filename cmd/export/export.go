package export

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Alijeyrad/hospital_records/cmd/cmdutil"
	"github.com/Alijeyrad/hospital_records/internal/cli"
	"github.com/Alijeyrad/hospital_records/internal/service/export"
)

func NewExportCommand() *cobra.Command {
	var (
		file    string
		format  string
		archive bool
	)

	kinds := make([]string, 0, len(export.Kinds))
	for _, k := range export.Kinds {
		kinds = append(kinds, string(k))
	}

	cmd := &cobra.Command{
		Use:       fmt.Sprintf("export <%s>", strings.Join(kinds, "|")),
		Short:     "Dump a table to a CSV or XLSX file",
		Long:      "Dump a table to a file with a fixed header row. An empty table produces no file.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: kinds,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdutil.Run(cmd, func(ctx context.Context, a *cli.Actions) {
				a.Export(ctx, args[0], file, format, archive)
			})
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "output file; the extension is appended when missing")
	cmd.Flags().StringVar(&format, "format", "csv", "csv or xlsx")
	cmd.Flags().BoolVar(&archive, "archive", false, "also upload the file to the archive bucket")

	return cmd
}
