package logging

import (
	"fmt"
	"log/slog"
	"os"
)

// Setup installs the default slog logger and returns it.
// If filename is empty, logs are discarded so nothing reaches the terminal.
// If filename is set, text-formatted records at debug level and above are
// appended to it.
func Setup(filename string) (logger *slog.Logger, cleanup func(), err error) {
	if filename == "" {
		logger = slog.New(slog.DiscardHandler)
		slog.SetDefault(logger)
		return logger, func() {}, nil
	}

	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	slog.SetDefault(logger)

	cleanup = func() {
		f.Close()
	}
	return logger, cleanup, nil
}
