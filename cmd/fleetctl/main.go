package main

import (
	"context"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/Shamanth-8/drones/internal/api"
	"github.com/Shamanth-8/drones/internal/config"
	"github.com/Shamanth-8/drones/internal/constants"
	"github.com/Shamanth-8/drones/internal/logging"
	"github.com/Shamanth-8/drones/internal/metrics"
)

// Version info set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// loadDeps opens the record store described by the environment. Tests
// replace it with an in-memory store.
var loadDeps = func(ctx context.Context) (*api.Dependencies, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := logging.Init(cfg.AppEnv); err != nil {
		return nil, err
	}
	// A private registry keeps CLI runs off the default one.
	return api.InitDependencies(ctx, cfg, metrics.NewMetricsRegistry(prometheus.NewRegistry()))
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "fleetctl",
		Short:         "Drone fleet operations from the command line",
		Long:          "fleetctl queries pilot and drone availability, validates assignments and updates fleet records.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newPilotsCmd())
	cmd.AddCommand(newDronesCmd())
	cmd.AddCommand(newCostCmd())
	cmd.AddCommand(newWeatherCmd())
	cmd.AddCommand(newCheckCmd())
	cmd.AddCommand(newConflictsCmd())
	cmd.AddCommand(newSetStatusCmd("set-pilot-status", "pilot"))
	cmd.AddCommand(newSetStatusCmd("set-drone-status", "drone"))
	cmd.AddCommand(newSyncCmd())
	cmd.AddCommand(newWarningsCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "fleetctl %s (commit: %s, built: %s)\n", Version, Commit, Date)
		},
	}
}

// withDeps loads dependencies for one command run and closes them afterwards.
func withDeps(cmd *cobra.Command, fn func(ctx context.Context, deps *api.Dependencies) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	deps, err := loadDeps(ctx)
	if err != nil {
		return err
	}
	defer deps.Close()

	deps.Services.Status.WithSource(constants.RequestSourceCLI)
	return fn(ctx, deps)
}

func execute(cmd *cobra.Command) int {
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func main() {
	os.Exit(execute(newRootCmd()))
}
