// Package cmd implements the command-line interface for streamplay.
package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/viper"
	"github.com/streamplay-cli/streamplay/icon"
	"github.com/streamplay-cli/streamplay/key"
	"github.com/streamplay-cli/streamplay/style"
)

// CheckDependencies verifies the availability of the configured playback
// backend in the system PATH.
func CheckDependencies() {
	backend := viper.GetString(key.Player)
	if backend == "" || backend == "iina" {
		// IINA is launched through LaunchServices, not PATH
		if backend == "iina" {
			return
		}
		backend = "mpv"
	}

	if _, err := exec.LookPath(backend); err != nil {
		printMissingDependencyError(backend)
		os.Exit(1)
	}
}

func printMissingDependencyError(dep string) {
	var installCmd string
	switch runtime.GOOS {
	case "darwin":
		installCmd = fmt.Sprintf("brew install %s", dep)
	case "linux":
		installCmd = fmt.Sprintf("sudo apt install %s", dep)
	case "windows":
		installCmd = fmt.Sprintf("scoop install %s", dep)
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(style.ErrorColor).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(style.ErrorColor).Render(fmt.Sprintf("%s Error: Missing Dependency", icon.Get(icon.Fail)))
	body := style.New().Foreground(style.Text).Render(fmt.Sprintf("The required dependency '%s' was not found in your PATH.", dep))

	suggestion := ""
	if installCmd != "" {
		suggestion = fmt.Sprintf("\n\nTo install it, try running:\n  %s", style.New().Foreground(style.AccentColor).Bold(true).Render(installCmd))
	}

	fmt.Println(box.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title,
			"\n",
			body,
			suggestion,
		),
	))
}
