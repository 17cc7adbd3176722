package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jole/ivsb/internal/chrono"
	"github.com/jole/ivsb/internal/config"
	"github.com/jole/ivsb/internal/logging"
	"github.com/jole/ivsb/internal/schedule"
	"github.com/jole/ivsb/pkg/models"
)

// now is the clock used for the default year
var now = time.Now

// environment is what every command that downloads the schedule needs.
type environment struct {
	cfg     config.Config
	logger  *slog.Logger
	cleanup func()
}

// setup opens the debug log and resolves settings from the config file and
// the command line, flags winning.
func setup(cmd *cobra.Command) (*environment, error) {
	logger, cleanup, err := logging.Setup(debugFile)
	if err != nil {
		return nil, err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		cleanup()
		return nil, err
	}
	logger.Debug("settings", "base_url", cfg.BaseURL, "timeout", cfg.Timeout(), "retries", cfg.RetryCount(), "scope", cfg.Scope)

	return &environment{cfg: cfg, logger: logger, cleanup: cleanup}, nil
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path := configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return config.Config{}, err
		}
		path = p
	}

	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("base-url") {
		cfg.BaseURL = baseURL
	}
	if flags.Changed("timeout") {
		if timeoutSeconds < 0 {
			return config.Config{}, fmt.Errorf("invalid timeout %d: must not be negative", timeoutSeconds)
		}
		cfg.TimeoutSeconds = timeoutSeconds
	}
	if flags.Changed("retries") {
		if retries < 0 {
			return config.Config{}, fmt.Errorf("invalid retries %d: must not be negative", retries)
		}
		r := retries
		cfg.Retries = &r
	}
	if flags.Changed("scope") {
		cfg.Scope = scope
	}
	return cfg, nil
}

// sources lists the schedule pages for the selected year and scope.
func (e *environment) sources() ([]schedule.Source, error) {
	sc, err := schedule.ParseScope(e.cfg.Scope)
	if err != nil {
		return nil, err
	}

	y := year
	if y == 0 {
		y = now().UTC().Year()
	}
	if y < 1 {
		return nil, fmt.Errorf("invalid year %d", y)
	}
	return schedule.Sources(e.cfg.BaseURL, y, sc), nil
}

// fetch downloads every source and returns the sessions in chronological
// order. Failed sources are reported on stderr and skipped.
func (e *environment) fetch(cmd *cobra.Command) ([]models.Session, error) {
	srcs, err := e.sources()
	if err != nil {
		return nil, err
	}

	loader := &schedule.Loader{
		Fetcher: schedule.NewFetcher(schedule.FetchOptions{
			Timeout:   e.cfg.Timeout(),
			Retries:   e.cfg.RetryCount(),
			UserAgent: e.cfg.UserAgent,
		}),
		Prefilter: schedule.Prefilter{Session: sessionCode, Antenna: antenna},
		Status:    cmd.ErrOrStderr(),
		Logger:    e.logger,
	}

	sessions, errs := loader.Load(cmd.Context(), srcs)
	if len(errs) > 0 {
		e.logger.Warn("some schedules could not be loaded", "err", errors.Join(errs...))
	}
	chrono.Sort(sessions)
	return sessions, nil
}

// sourceList is the comma separated URLs of srcs.
func sourceList(srcs []schedule.Source) string {
	urls := make([]string, 0, len(srcs))
	for _, s := range srcs {
		urls = append(urls, s.URL)
	}
	return strings.Join(urls, ",")
}

func isTerminal(v any) bool {
	if f, ok := v.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}
