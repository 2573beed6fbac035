package burnback

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/redrazor111/burn-back/internal/service"
	"github.com/spf13/cobra"
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's balance: consumed, burned, and what's left",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB, now time.Time) error {
			status, err := service.Today(sqldb, now)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Date: %s\n", status.Date)
			fmt.Fprintf(cmd.OutOrStdout(), "Goal: %d kcal\n", status.GoalCalories)
			fmt.Fprintf(cmd.OutOrStdout(), "Consumed: %d kcal (%d scans)\n", status.ConsumedCalories, status.ScanCount)
			fmt.Fprintf(cmd.OutOrStdout(), "Burned: %d kcal (%d activities)\n", status.BurnedCalories, status.ActivityCount)
			fmt.Fprintf(cmd.OutOrStdout(), "Remaining: %d kcal\n", status.Remaining)
			fmt.Fprintf(cmd.OutOrStdout(), "Water: %d cups\n", status.WaterCups)
			return nil
		})
	},
}

var clearYes bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear today's scans, activities, and water (history is kept)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !clearYes {
			return fmt.Errorf("this clears today's ledger; re-run with --yes to confirm")
		}
		return withDB(func(sqldb *sql.DB, now time.Time) error {
			if err := service.ClearToday(sqldb, now); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cleared today's ledger")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(todayCmd, clearCmd)
	clearCmd.Flags().BoolVar(&clearYes, "yes", false, "Confirm clearing today's ledger")
}
