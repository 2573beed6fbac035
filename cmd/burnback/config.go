package burnback

import (
	"database/sql"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/redrazor111/burn-back/internal/service"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage burnback local configuration",
}

var (
	cfgTier          string
	cfgScanLimit     int
	cfgActivityLimit int
	cfgMaxHistory    int
	cfgVisionURL     string
)

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set configuration values",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB, now time.Time) error {
			updates := 0
			if cmd.Flags().Changed("tier") {
				if err := service.SetTier(sqldb, cfgTier); err != nil {
					return err
				}
				updates++
			}
			if cmd.Flags().Changed("free-scan-limit") {
				if err := service.SetConfig(sqldb, service.ConfigFreeScanLimit, strconv.Itoa(cfgScanLimit)); err != nil {
					return err
				}
				updates++
			}
			if cmd.Flags().Changed("free-activity-limit") {
				if err := service.SetConfig(sqldb, service.ConfigFreeActivityLimit, strconv.Itoa(cfgActivityLimit)); err != nil {
					return err
				}
				updates++
			}
			if cmd.Flags().Changed("max-history") {
				if err := service.SetConfig(sqldb, service.ConfigMaxHistory, strconv.Itoa(cfgMaxHistory)); err != nil {
					return err
				}
				updates++
			}
			if cmd.Flags().Changed("vision-url") {
				if err := service.SetConfig(sqldb, service.ConfigVisionBaseURL, cfgVisionURL); err != nil {
					return err
				}
				updates++
			}
			if updates == 0 {
				return fmt.Errorf("set at least one flag")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %d config value(s)\n", updates)
			return nil
		})
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB, now time.Time) error {
			cfg, err := service.ListConfig(sqldb)
			if err != nil {
				return err
			}
			keys := make([]string, 0, len(cfg))
			for k := range cfg {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintln(cmd.OutOrStdout(), "KEY\tVALUE")
			for _, k := range keys {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", k, cfg[k])
			}
			return nil
		})
	},
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Remove a configuration value, restoring its default",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB, now time.Time) error {
			if err := service.DeleteConfig(sqldb, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Unset %s\n", args[0])
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetCmd, configGetCmd, configUnsetCmd)

	configSetCmd.Flags().StringVar(&cfgTier, "tier", "", "Subscription tier: free or pro")
	configSetCmd.Flags().IntVar(&cfgScanLimit, "free-scan-limit", 0, "Daily free scan limit")
	configSetCmd.Flags().IntVar(&cfgActivityLimit, "free-activity-limit", 0, "Daily free activity limit")
	configSetCmd.Flags().IntVar(&cfgMaxHistory, "max-history", 0, "Archive retention cap")
	configSetCmd.Flags().StringVar(&cfgVisionURL, "vision-url", "", "Vision service base URL")
}
