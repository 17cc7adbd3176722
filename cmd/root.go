package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/jole/ivsb/internal/browse"
	"github.com/jole/ivsb/internal/tui"
)

// ErrNoTerminal is returned when the browser is started without a terminal.
var ErrNoTerminal = errors.New("the session browser needs a terminal; use 'ivsb list' for plain output")

var (
	// Persistent flags
	configPath     string
	debugFile      string
	baseURL        string
	timeoutSeconds int
	retries        int
	noColor        bool
	year           int
	scope          string
	sessionCode    string
	antenna        string

	// Browser flags
	initialFilter string
)

var rootCmd = &cobra.Command{
	Use:   "ivsb",
	Short: "Browse the IVS observing session schedule",
	Long: `Download the IVS master and intensive session schedules for a year and browse
them in the terminal. The session nearest to today is selected on start.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runBrowse,
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "Config file path (default: $XDG_CONFIG_HOME/ivsb/config.json5)")
	pf.StringVar(&debugFile, "debug", "", "Write a debug log to this file")
	pf.StringVar(&baseURL, "base-url", "", "Schedule site base URL (default from config)")
	pf.IntVar(&timeoutSeconds, "timeout", 0, "Per-source download timeout in seconds (default from config)")
	pf.IntVar(&retries, "retries", 0, "Download retries per source (default from config)")
	pf.BoolVar(&noColor, "no-color", false, "Disable colours")
	pf.IntVar(&year, "year", 0, "Schedule year (default: current UTC year)")
	pf.StringVar(&scope, "scope", "", "Schedules to load: ordinary, master, intensive or both (default from config)")
	pf.StringVar(&sessionCode, "session", "", "Only keep sessions whose code contains this text")
	pf.StringVar(&antenna, "antenna", "", "Only keep sessions in which this station takes part")

	rootCmd.Flags().StringVar(&initialFilter, "filter", "", "Initial filter expression")
}

func runBrowse(cmd *cobra.Command, args []string) error {
	if !isTerminal(cmd.InOrStdin()) || !isTerminal(cmd.OutOrStdout()) {
		return ErrNoTerminal
	}

	env, err := setup(cmd)
	if err != nil {
		return err
	}
	defer env.cleanup()

	if noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	sessions, err := env.fetch(cmd)
	if err != nil {
		return err
	}

	state := browse.New(browse.WithShowRemoved(env.cfg.ShowRemovedStations()))
	state.Load(sessions)
	if initialFilter != "" {
		state.ApplyFilter(initialFilter)
	}

	model := tui.New(state, tui.WithLogger(env.logger))
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("failed to run session browser: %w", err)
	}
	return nil
}
