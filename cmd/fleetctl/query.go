package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Shamanth-8/drones/internal/api"
	"github.com/Shamanth-8/drones/internal/constants"
	"github.com/Shamanth-8/drones/internal/models/entities"
	"github.com/Shamanth-8/drones/internal/services"
)

func newPilotsCmd() *cobra.Command {
	var (
		filter services.PilotFilter
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "pilots",
		Short: "List available pilots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd, func(_ context.Context, deps *api.Dependencies) error {
				t, err := deps.Services.Roster.AvailablePilotTable(filter)
				if err != nil {
					return err
				}
				return printRecords(cmd, t, limitOr(limit, deps), constants.MsgNoPilotsAvailable)
			})
		},
	}

	cmd.Flags().StringVarP(&filter.Location, "location", "l", "", "location substring")
	cmd.Flags().StringVarP(&filter.Skill, "skill", "s", "", "skill substring")
	cmd.Flags().StringVar(&filter.Date, "date", "", "only pilots available on or before this date")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "max rows to print (default RESULT_LIMIT)")
	return cmd
}

func newDronesCmd() *cobra.Command {
	var (
		filter services.DroneFilter
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "drones",
		Short: "List available drones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd, func(_ context.Context, deps *api.Dependencies) error {
				t, err := deps.Services.Fleet.AvailableDroneTable(filter)
				if err != nil {
					return err
				}
				return printRecords(cmd, t, limitOr(limit, deps), constants.MsgNoDronesAvailable)
			})
		},
	}

	cmd.Flags().StringVarP(&filter.Location, "location", "l", "", "location substring")
	cmd.Flags().StringVarP(&filter.Capability, "capability", "c", "", "capability substring")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "max rows to print (default RESULT_LIMIT)")
	return cmd
}

func newCostCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cost <pilot_id> <days>",
		Short: "Estimate a pilot's cost for a number of days",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			days, err := strconv.Atoi(args[1])
			if err != nil || days < 0 {
				return fmt.Errorf("days must be a non-negative integer, got %q", args[1])
			}

			return withDeps(cmd, func(_ context.Context, deps *api.Dependencies) error {
				est, err := deps.Services.Roster.EstimateCost(args[0], days)
				if err != nil {
					return err
				}
				if !est.Found {
					return fmt.Errorf("pilot %s not found", args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s for %d days: %s INR\n", est.PilotID, est.Days, entities.FormatAmount(est.Amount))
				return nil
			})
		},
	}
}

func newWeatherCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "weather <drone_id> <condition>",
		Short: "Check whether a drone is rated for a weather condition",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd, func(_ context.Context, deps *api.Dependencies) error {
				v := deps.Services.Fleet.CheckWeather(args[0], args[1])
				verdict := "compatible"
				if !v.Compatible {
					verdict = "NOT compatible"
				}
				note := ""
				if !v.DroneFound {
					note = " (drone not found)"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s is %s with %s%s\n", v.DroneID, verdict, v.Condition, note)
				return nil
			})
		},
	}
}

func newCheckCmd() *cobra.Command {
	var weather string

	cmd := &cobra.Command{
		Use:   "check <pilot_id> <drone_id> <mission_id>",
		Short: "Validate one pilot/drone/mission assignment",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd, func(_ context.Context, deps *api.Dependencies) error {
				issues, err := deps.Services.Detector.CheckAssignmentInWeather(args[0], args[1], args[2], weather)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(issues) == 0 {
					fmt.Fprintln(out, "✅ Assignment is valid.")
					return nil
				}
				for _, issue := range issues {
					fmt.Fprintf(out, "- %s\n", issue)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&weather, "weather", "w", "", "also check the drone against this weather condition")
	return cmd
}

func newConflictsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "conflicts",
		Short: "Sweep every active assignment for conflicts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd, func(_ context.Context, deps *api.Dependencies) error {
				fmt.Fprintln(cmd.OutOrStdout(), deps.Services.Ops.ConflictReport())
				return nil
			})
		},
	}
}

func newWarningsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "warnings",
		Short: "List rows that failed validation at load time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd, func(_ context.Context, deps *api.Dependencies) error {
				warnings, err := deps.Services.Ops.LoadWarnings()
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(warnings) == 0 {
					fmt.Fprintln(out, "No load warnings.")
					return nil
				}
				for _, w := range warnings {
					fmt.Fprintln(out, w.String())
				}
				return nil
			})
		},
	}
}

func limitOr(limit int, deps *api.Dependencies) int {
	if limit > 0 {
		return limit
	}
	return deps.Services.Ops.Limit()
}

func printRecords(cmd *cobra.Command, t entities.Table, limit int, empty string) error {
	if len(t.Rows) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), empty)
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), services.RenderRecords(t, limit))
	return nil
}
