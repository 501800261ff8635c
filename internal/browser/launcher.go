// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package browser

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// Launcher opens a URL in a browser.
type Launcher interface {
	Launch(url string) error
}

// LauncherFunc adapts a function to Launcher.
type LauncherFunc func(url string) error

// Launch calls f(url).
func (f LauncherFunc) Launch(url string) error {
	return f(url)
}

// OSLauncher opens URLs with the platform's default handler, or with
// Command when set. Command may carry arguments; the URL is appended.
type OSLauncher struct {
	Command string
}

// Launch starts the browser without waiting for it to exit.
func (l OSLauncher) Launch(url string) error {
	cmd, err := launchCommand(runtime.GOOS, l.Command, url)
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", cmd.Path, err)
	}
	// Reap the child; the browser may outlive us.
	go func() { _ = cmd.Wait() }()
	return nil
}

// launchCommand builds the command that opens url on goos.
func launchCommand(goos, command, url string) (*exec.Cmd, error) {
	if fields := strings.Fields(command); len(fields) > 0 {
		args := append(fields[1:], url)
		return exec.Command(fields[0], args...), nil
	}

	switch goos {
	case "windows":
		// Empty quoted title so start does not treat the URL as one.
		return exec.Command("cmd", "/c", "start", `""`, url), nil
	case "darwin":
		return exec.Command("open", url), nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return exec.Command("xdg-open", url), nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", goos)
	}
}
