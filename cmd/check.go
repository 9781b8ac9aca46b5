// Package cmd implements the command-line interface for kyoku.
package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/kyoku-cli/kyoku/icon"
	"github.com/kyoku-cli/kyoku/key"
	"github.com/kyoku-cli/kyoku/provider/youtube"
	"github.com/kyoku-cli/kyoku/style"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// CheckDependencies verifies the availability of required system dependencies.
// The player is always required, yt-dlp only when the YouTube backend is active.
func CheckDependencies() {
	player := viper.GetString(key.Player)
	if _, err := exec.LookPath(player); err != nil {
		printMissingDependencyError(player)
		os.Exit(1)
	}

	if lo.Contains(viper.GetStringSlice(key.DefaultSources), youtube.Name) {
		if _, err := exec.LookPath(youtube.Executable); err != nil {
			printMissingDependencyError(youtube.Executable)
			os.Exit(1)
		}
	}
}

func printMissingDependencyError(dep string) {
	var installCmd string
	switch runtime.GOOS {
	case "darwin":
		installCmd = "brew install " + dep
	case "linux":
		installCmd = "sudo apt install " + dep
	case "windows":
		installCmd = "scoop install " + dep
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(style.HiRed).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(style.HiRed).Render(fmt.Sprintf("%s Error: Missing Dependency", icon.Get(icon.Fail)))
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
