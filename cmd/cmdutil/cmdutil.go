// Package cmdutil holds the plumbing every record command shares: reading
// the configuration, installing the logger and running a body against the
// application graph.
package cmdutil

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Alijeyrad/hospital_records/config"
	"github.com/Alijeyrad/hospital_records/internal/app"
	"github.com/Alijeyrad/hospital_records/internal/cli"
	"github.com/Alijeyrad/hospital_records/internal/console"
	"github.com/Alijeyrad/hospital_records/pkg/logs"
)

// LoadConfig reads the configuration next to the --config path and installs
// the structured logger it describes.
func LoadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfgPath, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	cfg, err := config.ReadConfig(filepath.Dir(cfgPath))
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	slog.SetDefault(logs.New(cfg))
	return cfg, nil
}

// Run executes fn with actions bound to the command's output. Domain errors
// are printed by the actions themselves, so only configuration and startup
// failures are returned.
func Run(cmd *cobra.Command, fn func(ctx context.Context, a *cli.Actions)) error {
	return RunRuntime(cmd, func(ctx context.Context, rt app.Runtime) error {
		fn(ctx, cli.NewActions(rt, console.New(cmd.OutOrStdout())))
		return nil
	})
}

// RunRuntime is Run for bodies that need the raw services.
func RunRuntime(cmd *cobra.Command, fn func(ctx context.Context, rt app.Runtime) error) error {
	cfg, err := LoadConfig(cmd)
	if err != nil {
		return err
	}
	return app.Run(cmd.Context(), cfg, cmd.CommandPath(), fn)
}
