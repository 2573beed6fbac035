package burnback

import (
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/redrazor111/burn-back/internal/burn"
	"github.com/redrazor111/burn-back/internal/service"
	"github.com/spf13/cobra"
)

var burnCalories int

var burnCmd = &cobra.Command{
	Use:   "burn",
	Short: "Show how long each activity takes to burn a calorie amount",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB, now time.Time) error {
			profile, err := service.LoadProfile(sqldb)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Burning %d kcal at %.1f kg:\n", burnCalories, profile.WeightKg)
			fmt.Fprintln(cmd.OutOrStdout(), "ACTIVITY\tMINUTES")
			for _, a := range burn.Activities {
				minutes, err := burn.DurationToBurn(a.MET, profile.WeightKg, float64(burnCalories))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", a.Label, int(math.Round(minutes)))
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(burnCmd)
	burnCmd.Flags().IntVar(&burnCalories, "calories", 0, "Calorie amount to burn")
	_ = burnCmd.MarkFlagRequired("calories")
}
