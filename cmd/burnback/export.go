package burnback

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/redrazor111/burn-back/internal/service"
	"github.com/spf13/cobra"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export profile, today's ledger, and history as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB, now time.Time) error {
			snapshot, err := service.BuildExport(sqldb, now)
			if err != nil {
				return err
			}
			b, err := json.MarshalIndent(snapshot, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal export: %w", err)
			}
			if exportOut == "" {
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return nil
			}
			if err := os.WriteFile(exportOut, append(b, '\n'), 0o600); err != nil {
				return fmt.Errorf("write export %s: %w", exportOut, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", exportOut)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Write JSON to file instead of stdout")
}
