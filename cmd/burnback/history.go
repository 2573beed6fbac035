package burnback

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/redrazor111/burn-back/internal/service"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse the permanent scan and activity archives",
}

var historyGrouped bool

var historyScansCmd = &cobra.Command{
	Use:   "scans",
	Short: "List archived scans, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB, now time.Time) error {
			if historyGrouped {
				groups, err := service.GroupScanRecordsByDay(sqldb)
				if err != nil {
					return err
				}
				for _, g := range groups {
					fmt.Fprintf(cmd.OutOrStdout(), "%s (%d kcal)\n", g.Day, g.TotalCalories)
					for _, r := range g.Records {
						fmt.Fprintf(cmd.OutOrStdout(), "  %s\t%s\t%d kcal\n", r.ID, r.ProductName, r.Calories)
					}
				}
				return nil
			}
			records, err := service.ScanRecords(sqldb)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tDATE\tPRODUCT\tKCAL")
			for _, r := range records {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%d\n", r.ID, r.RecordedAt.Local().Format("2006-01-02 15:04"), r.ProductName, r.Calories)
			}
			return nil
		})
	},
}

var historyActivitiesCmd = &cobra.Command{
	Use:   "activities",
	Short: "List archived activities, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB, now time.Time) error {
			if historyGrouped {
				groups, err := service.GroupActivityRecordsByDay(sqldb)
				if err != nil {
					return err
				}
				for _, g := range groups {
					fmt.Fprintf(cmd.OutOrStdout(), "%s (%d kcal burned)\n", g.Day, g.TotalBurned)
					for _, r := range g.Records {
						fmt.Fprintf(cmd.OutOrStdout(), "  %s\t%s\t%d min\t%d kcal\n", r.ID, r.ActivityType, r.DurationMin, r.CaloriesBurned)
					}
				}
				return nil
			}
			records, err := service.ActivityRecords(sqldb)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tDATE\tTYPE\tMIN\tKCAL_BURNED")
			for _, r := range records {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%d\t%d\n", r.ID, r.RecordedAt.Local().Format("2006-01-02 15:04"), r.ActivityType, r.DurationMin, r.CaloriesBurned)
			}
			return nil
		})
	},
}

var historyDeleteScanCmd = &cobra.Command{
	Use:   "delete-scan <id>",
	Short: "Delete one archived scan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB, now time.Time) error {
			if err := service.RemoveScanRecord(sqldb, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted archived scan %s\n", args[0])
			return nil
		})
	},
}

var historyDeleteActivityCmd = &cobra.Command{
	Use:   "delete-activity <id>",
	Short: "Delete one archived activity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB, now time.Time) error {
			if err := service.RemoveActivityRecord(sqldb, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted archived activity %s\n", args[0])
			return nil
		})
	},
}

var historyClearYes bool

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete both archives permanently",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !historyClearYes {
			return fmt.Errorf("this deletes all history permanently; re-run with --yes to confirm")
		}
		return withDB(func(sqldb *sql.DB, now time.Time) error {
			if err := service.ClearHistory(sqldb); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "History cleared")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyScansCmd, historyActivitiesCmd, historyDeleteScanCmd, historyDeleteActivityCmd, historyClearCmd)

	historyScansCmd.Flags().BoolVar(&historyGrouped, "grouped", false, "Group by day with daily totals")
	historyActivitiesCmd.Flags().BoolVar(&historyGrouped, "grouped", false, "Group by day with daily totals")
	historyClearCmd.Flags().BoolVar(&historyClearYes, "yes", false, "Confirm permanent deletion")
}
