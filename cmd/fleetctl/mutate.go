package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Shamanth-8/drones/internal/api"
)

func newSetStatusCmd(use, entity string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id> <status>",
		Short: fmt.Sprintf("Set a %s's status and push to the remote provider", entity),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status := strings.TrimSpace(args[1])
			if status == "" {
				return fmt.Errorf("status must not be blank")
			}

			return withDeps(cmd, func(ctx context.Context, deps *api.Dependencies) error {
				var result string
				if entity == "pilot" {
					result = deps.Services.Status.UpdatePilotStatus(ctx, args[0], status)
				} else {
					result = deps.Services.Status.UpdateDroneStatus(ctx, args[0], status)
				}
				fmt.Fprintln(cmd.OutOrStdout(), result)
				return nil
			})
		},
	}
}

func newSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Synchronise tables with the remote provider",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "push",
		Short: "Overwrite remote tables with the local copy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd, func(ctx context.Context, deps *api.Dependencies) error {
				fmt.Fprintln(cmd.OutOrStdout(), deps.Services.Sync.PushAll(ctx))
				return nil
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "pull",
		Short: "Replace local tables with non-empty remote tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd, func(ctx context.Context, deps *api.Dependencies) error {
				fmt.Fprintln(cmd.OutOrStdout(), deps.Services.Sync.PullAll(ctx))
				return nil
			})
		},
	})
	return cmd
}
