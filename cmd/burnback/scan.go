package burnback

import (
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/redrazor111/burn-back/internal/model"
	"github.com/redrazor111/burn-back/internal/provider/vision"
	"github.com/redrazor111/burn-back/internal/service"
	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan meals and manage today's scans",
}

var (
	scanImagePath string
	scanAPIKey    string
	scanName      string
	scanCalories  int
)

var scanAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Analyze a meal photo and record the result",
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(scanImagePath)
		if err != nil {
			return fmt.Errorf("read image %s: %w", scanImagePath, err)
		}
		image := base64.StdEncoding.EncodeToString(raw)

		return withDB(func(sqldb *sql.DB, now time.Time) error {
			isPro, err := service.IsPro(sqldb)
			if err != nil {
				return err
			}
			profile, err := service.LoadProfile(sqldb)
			if err != nil {
				return err
			}

			client := &vision.Client{APIKey: resolveVisionAPIKey(scanAPIKey)}
			if baseURL, ok, err := service.GetConfig(sqldb, service.ConfigVisionBaseURL); err != nil {
				return err
			} else if ok {
				client.BaseURL = baseURL
			}

			analysis, err := client.Analyze(cmd.Context(), image, isPro, vision.UserContext{
				Gender:            string(profile.Gender),
				AgeYears:          profile.AgeYears,
				WeightKg:          profile.WeightKg,
				DailyGoalCalories: profile.DailyGoalCalories,
			})
			if err != nil {
				return err
			}

			if analysis.Single != nil {
				entry, err := service.RecordScan(sqldb, service.ScanInput{
					ProductName: analysis.Single.ProductName,
					Calories:    analysis.Single.Calories,
					Activities:  analysis.Single.Activities,
				}, isPro, now)
				if err := reportScanResult(cmd, entry, err); err != nil {
					return err
				}
				return nil
			}

			candidates := make([]service.PendingCandidate, 0, len(analysis.Candidates))
			for _, c := range analysis.Candidates {
				candidates = append(candidates, service.PendingCandidate{
					ProductName: c.ProductName,
					Calories:    c.Calories,
					Activities:  c.Activities,
				})
			}
			if err := service.SavePendingCandidates(sqldb, candidates); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Ambiguous photo, %d possible matches:\n", len(candidates))
			for i, c := range candidates {
				fmt.Fprintf(cmd.OutOrStdout(), "%d. %s (%d kcal)\n", i+1, c.ProductName, c.Calories)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Run `burnback scan confirm <n>` to record one.")
			return nil
		})
	},
}

var scanLogCmd = &cobra.Command{
	Use:   "log",
	Short: "Record a meal manually by name and calories",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB, now time.Time) error {
			isPro, err := service.IsPro(sqldb)
			if err != nil {
				return err
			}
			entry, err := service.RecordScan(sqldb, service.ScanInput{
				ProductName: scanName,
				Calories:    scanCalories,
			}, isPro, now)
			return reportScanResult(cmd, entry, err)
		})
	},
}

var scanConfirmCmd = &cobra.Command{
	Use:   "confirm <n>",
	Short: "Record one candidate from the last ambiguous scan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		choice, err := parseIntArg("choice", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB, now time.Time) error {
			isPro, err := service.IsPro(sqldb)
			if err != nil {
				return err
			}
			entry, err := service.ConfirmPendingCandidate(sqldb, choice, isPro, now)
			return reportScanResult(cmd, entry, err)
		})
	},
}

var scanListCmd = &cobra.Command{
	Use:   "list",
	Short: "List today's scans, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB, now time.Time) error {
			items, err := service.TodayScans(sqldb)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tTIME\tPRODUCT\tKCAL")
			for _, item := range items {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%d\n", item.ID, item.RecordedAt.Local().Format("15:04"), item.ProductName, item.Calories)
			}
			return nil
		})
	},
}

var scanShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one scan with its burn equivalents",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB, now time.Time) error {
			items, err := service.TodayScans(sqldb)
			if err != nil {
				return err
			}
			for _, item := range items {
				if item.ID != strings.TrimSpace(args[0]) {
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Product: %s\nCalories: %d\nRecorded: %s\n", item.ProductName, item.Calories, item.RecordedAt.Local().Format("2006-01-02 15:04"))
				printSlots(cmd, item.Activities)
				return nil
			}
			return fmt.Errorf("no scan with id %s in today's ledger", args[0])
		})
	},
}

var scanDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a scan from today and from history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB, now time.Time) error {
			if err := service.DeleteScan(sqldb, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted scan %s\n", args[0])
			return nil
		})
	},
}

// reportScanResult prints the recorded entry, treating a failed archive
// append as a warning: the scan itself is already in today's ledger.
func reportScanResult(cmd *cobra.Command, entry model.ScanEntry, err error) error {
	if errors.Is(err, service.ErrScanQuotaExceeded) {
		return fmt.Errorf("daily free scan limit reached; upgrade with `burnback config set --tier pro` or try again tomorrow")
	}
	if err != nil && !errors.Is(err, service.ErrArchiveAppend) {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s (%d kcal) as %s\n", entry.ProductName, entry.Calories, entry.ID)
	printSlots(cmd, entry.Activities)
	if errors.Is(err, service.ErrArchiveAppend) {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning: scan recorded but history append failed")
	}
	return nil
}

func printSlots(cmd *cobra.Command, slots []model.ActivitySlot) {
	for _, slot := range slots {
		fmt.Fprintf(cmd.OutOrStdout(), "  [%s] %s: %s\n", slot.Status, slot.Label, slot.Summary)
	}
}

func resolveVisionAPIKey(flagValue string) string {
	if v := strings.TrimSpace(flagValue); v != "" {
		return v
	}
	return strings.TrimSpace(os.Getenv("BURNBACK_API_KEY"))
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.AddCommand(scanAddCmd, scanLogCmd, scanConfirmCmd, scanListCmd, scanShowCmd, scanDeleteCmd)

	scanAddCmd.Flags().StringVar(&scanImagePath, "image", "", "Path to meal photo")
	scanAddCmd.Flags().StringVar(&scanAPIKey, "api-key", "", "Vision API key (fallback: BURNBACK_API_KEY)")
	_ = scanAddCmd.MarkFlagRequired("image")

	scanLogCmd.Flags().StringVar(&scanName, "name", "", "Product name")
	scanLogCmd.Flags().IntVar(&scanCalories, "calories", 0, "Calories")
	_ = scanLogCmd.MarkFlagRequired("name")
	_ = scanLogCmd.MarkFlagRequired("calories")
}
