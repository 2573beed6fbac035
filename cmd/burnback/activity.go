package burnback

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redrazor111/burn-back/internal/burn"
	"github.com/redrazor111/burn-back/internal/service"
	"github.com/spf13/cobra"
)

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Log workouts and manage today's activity",
}

var (
	activityType    string
	activityMinutes int
)

var activityLogCmd = &cobra.Command{
	Use:   "log",
	Short: "Log a workout; burned calories are computed from your weight",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB, now time.Time) error {
			isPro, err := service.IsPro(sqldb)
			if err != nil {
				return err
			}
			entry, err := service.RecordActivity(sqldb, activityType, activityMinutes, isPro, now)
			if errors.Is(err, service.ErrActivityQuotaExceeded) {
				return fmt.Errorf("daily free activity limit reached; upgrade with `burnback config set --tier pro` or try again tomorrow")
			}
			if errors.Is(err, service.ErrInvalidDuration) {
				return fmt.Errorf("duration must be a positive number of minutes")
			}
			if err != nil && !errors.Is(err, service.ErrArchiveAppend) {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %d min of %s, burned %d kcal (%s)\n", entry.DurationMin, entry.ActivityType, entry.CaloriesBurned, entry.ID)
			if errors.Is(err, service.ErrArchiveAppend) {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning: activity recorded but history append failed")
			}
			return nil
		})
	},
}

var activityListCmd = &cobra.Command{
	Use:   "list",
	Short: "List today's activities, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB, now time.Time) error {
			items, err := service.TodayActivities(sqldb)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tTIME\tTYPE\tMIN\tKCAL_BURNED")
			for _, item := range items {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%d\t%d\n", item.ID, item.RecordedAt.Local().Format("15:04"), item.ActivityType, item.DurationMin, item.CaloriesBurned)
			}
			return nil
		})
	},
}

var activityDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an activity from today and from history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB, now time.Time) error {
			if err := service.DeleteActivity(sqldb, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted activity %s\n", args[0])
			return nil
		})
	},
}

var activityTypesCmd = &cobra.Command{
	Use:   "types",
	Short: "List supported activity types and their intensity",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "TYPE\tLABEL\tMET")
		for _, a := range burn.Activities {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%.1f\n", a.Key, a.Label, a.MET)
		}
	},
}

func init() {
	rootCmd.AddCommand(activityCmd)
	activityCmd.AddCommand(activityLogCmd, activityListCmd, activityDeleteCmd, activityTypesCmd)

	activityLogCmd.Flags().StringVar(&activityType, "type", "", "Activity type ("+strings.Join(burn.ActivityKeys(), ", ")+")")
	activityLogCmd.Flags().IntVar(&activityMinutes, "minutes", 0, "Duration in minutes")
	_ = activityLogCmd.MarkFlagRequired("type")
	_ = activityLogCmd.MarkFlagRequired("minutes")
}
