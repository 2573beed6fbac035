package burnback

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var dbPath string

var rootCmd = &cobra.Command{
	Use:   "burnback",
	Short: "burnback tracks calories in and calories burned from your terminal",
	Long:  "burnback is a local-first calorie balance tracker: scan meals, log workouts, and see how much of today's budget is left.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database")
}
