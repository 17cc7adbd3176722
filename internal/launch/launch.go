// Package launch opens URLs with the platform's default handler.
package launch

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
)

var ErrToolNotFound = errors.New("url opener not found")

type Command struct {
	Path string
	Args []string
}

// SelectCommand picks the opener for goos. The URL is appended to Args.
func SelectCommand(goos string, lookPath func(string) (string, error)) (Command, error) {
	switch goos {
	case "darwin":
		path, err := lookPath("open")
		if err != nil {
			return Command{}, ErrToolNotFound
		}
		return Command{Path: path}, nil
	case "windows":
		path, err := lookPath("rundll32")
		if err != nil {
			return Command{}, ErrToolNotFound
		}
		return Command{Path: path, Args: []string{"url.dll,FileProtocolHandler"}}, nil
	default:
		if path, err := lookPath("xdg-open"); err == nil {
			return Command{Path: path}, nil
		}
		if path, err := lookPath("wslview"); err == nil {
			return Command{Path: path}, nil
		}
		return Command{}, ErrToolNotFound
	}
}

// Open starts the opener for url and returns without waiting for it. The
// opener's exit status is never inspected.
func Open(url string) error {
	cmdDef, err := SelectCommand(runtime.GOOS, exec.LookPath)
	if err != nil {
		return err
	}

	cmd := exec.Command(cmdDef.Path, append(cmdDef.Args, url)...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start url opener: %w", err)
	}
	return cmd.Process.Release()
}
