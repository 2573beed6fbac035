package burnback

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/redrazor111/burn-back/internal/model"
	"github.com/redrazor111/burn-back/internal/service"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage your profile",
}

var (
	profileGender string
	profileAge    int
	profileWeight float64
	profileGoal   int
)

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB, now time.Time) error {
			p, err := service.LoadProfile(sqldb)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Gender: %s\n", p.Gender)
			fmt.Fprintf(cmd.OutOrStdout(), "Age: %d\n", p.AgeYears)
			fmt.Fprintf(cmd.OutOrStdout(), "Weight: %.1f kg\n", p.WeightKg)
			fmt.Fprintf(cmd.OutOrStdout(), "Daily goal: %d kcal\n", p.DailyGoalCalories)
			return nil
		})
	},
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update profile fields; unchanged fields keep their value",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB, now time.Time) error {
			p, err := service.LoadProfile(sqldb)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("gender") {
				p.Gender = model.Gender(profileGender)
			}
			if cmd.Flags().Changed("age") {
				p.AgeYears = profileAge
			}
			if cmd.Flags().Changed("weight") {
				p.WeightKg = profileWeight
			}
			if cmd.Flags().Changed("goal") {
				p.DailyGoalCalories = profileGoal
			}
			if err := service.SaveProfile(sqldb, p); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Profile updated")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileShowCmd, profileSetCmd)

	profileSetCmd.Flags().StringVar(&profileGender, "gender", "", "Gender: male or female")
	profileSetCmd.Flags().IntVar(&profileAge, "age", 0, "Age in years (1-120)")
	profileSetCmd.Flags().Float64Var(&profileWeight, "weight", 0, "Weight in kg (min 30)")
	profileSetCmd.Flags().IntVar(&profileGoal, "goal", 0, "Daily calorie goal (500-10000)")
}
