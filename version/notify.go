// Package version provides application version tracking and update discovery.
package version

import (
	"fmt"

	"github.com/kyoku-cli/kyoku/color"
	"github.com/kyoku-cli/kyoku/constant"
	"github.com/kyoku-cli/kyoku/icon"
	"github.com/kyoku-cli/kyoku/key"
	"github.com/kyoku-cli/kyoku/style"
	"github.com/kyoku-cli/kyoku/util"
	"github.com/spf13/viper"
)

// Notify displays a terminal alert when a more recent stable version exists.
func Notify() {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	erase := util.PrintErasable(fmt.Sprintf("%s Checking if new version is available...", icon.Get(icon.Progress)))
	version, err := Latest()
	erase()
	if err == nil {
		comp, err := Compare(version, constant.Version)
		if err == nil && comp <= 0 {
			return
		}
	}

	fmt.Printf(`
%s New version is available %s %s
%s

`,
		style.Fg(color.Green)("▇▇▇"),
		style.Bold(version),
		style.Faint(fmt.Sprintf("(You're on %s)", constant.Version)),
		style.Faint("https://github.com/kyoku-cli/kyoku/releases/tag/v"+version),
	)
}
