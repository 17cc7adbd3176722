package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jole/ivsb/internal/db"
	"github.com/jole/ivsb/internal/query"
)

var (
	exportDB    string
	exportQuery string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Save the schedule to a SQLite file",
	Long: `Download the schedule and write the sessions, in chronological order, to a SQLite
file. Previous contents of the file are replaced.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportDB, "db", "", "Snapshot file path (.db is appended when there is no extension)")
	exportCmd.Flags().StringVarP(&exportQuery, "query", "q", "", "Only export sessions matching this filter expression")
	_ = exportCmd.MarkFlagRequired("db")
}

func runExport(cmd *cobra.Command, args []string) error {
	env, err := setup(cmd)
	if err != nil {
		return err
	}
	defer env.cleanup()

	srcs, err := env.sources()
	if err != nil {
		return err
	}
	sessions, err := env.fetch(cmd)
	if err != nil {
		return err
	}
	sessions = query.Filter(sessions, exportQuery)

	database, err := db.New(exportDB)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	if err := database.ReplaceSessions(sessions, sourceList(srcs), now().UTC()); err != nil {
		return fmt.Errorf("failed to export sessions: %w", err)
	}
	env.logger.Info("exported sessions", "path", database.Path(), "count", len(sessions))

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d sessions to %s\n", len(sessions), database.Path())
	return nil
}
