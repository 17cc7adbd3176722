package cmd

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/ncruces/go-strftime"
	"github.com/spf13/cobra"

	"github.com/jole/ivsb/internal/chrono"
	"github.com/jole/ivsb/internal/query"
	"github.com/jole/ivsb/pkg/models"
)

var (
	listQuery      string
	listLimit      int
	listTimeFormat string
	listRemoved    bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the schedule as a table",
	Long:  "Download the schedule and print the sessions in chronological order, without the interactive browser",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVarP(&listQuery, "query", "q", "", "Filter expression, as in the browser")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 0, "Maximum number of sessions to print (0 for all)")
	listCmd.Flags().StringVar(&listTimeFormat, "time-format", "", "strftime format for the start column, e.g. '%a %d %b %H:%M'")
	listCmd.Flags().BoolVar(&listRemoved, "removed", false, "Include removed stations in brackets")
}

func runList(cmd *cobra.Command, args []string) error {
	if listLimit < 0 {
		return fmt.Errorf("invalid limit %d: must not be negative", listLimit)
	}

	env, err := setup(cmd)
	if err != nil {
		return err
	}
	defer env.cleanup()

	sessions, err := env.fetch(cmd)
	if err != nil {
		return err
	}
	sessions = query.Filter(sessions, listQuery)
	if listLimit > 0 && len(sessions) > listLimit {
		sessions = sessions[:listLimit]
	}
	env.logger.Debug("listing sessions", "query", listQuery, "count", len(sessions))

	out := cmd.OutOrStdout()
	t := table.NewWriter()
	t.SetOutputMirror(out)
	if isTerminal(out) && !noColor {
		t.SetStyle(table.StyleRounded)
	}

	header := make(table.Row, 0, models.FieldCount)
	for f := range models.FieldCount {
		header = append(header, f.Title())
	}
	t.AppendHeader(header)
	for _, s := range sessions {
		t.AppendRow(listRow(s))
	}
	t.Render()
	return nil
}

func listRow(s models.Session) table.Row {
	row := make(table.Row, 0, models.FieldCount)
	for f := range models.FieldCount {
		v := s.Field(f)
		switch f {
		case models.FieldStart:
			if listTimeFormat != "" {
				if ts, ok := chrono.ParseStart(v); ok {
					v = strftime.Format(listTimeFormat, ts)
				}
			}
		case models.FieldStations:
			if !listRemoved {
				v = models.StationsDisplay(s.Active, nil)
			}
		}
		row = append(row, v)
	}
	return row
}
