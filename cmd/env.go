// Package cmd implements the command-line interface for kyoku.
package cmd

import (
	"os"
	"strings"

	"github.com/kyoku-cli/kyoku/color"
	"github.com/kyoku-cli/kyoku/config"
	"github.com/kyoku-cli/kyoku/constant"
	"github.com/kyoku-cli/kyoku/style"
	"github.com/kyoku-cli/kyoku/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
)

func init() {
	rootCmd.AddCommand(envCmd)
	envCmd.Flags().BoolP("set-only", "s", false, "Show only variables that are set")
	envCmd.Flags().BoolP("unset-only", "u", false, "Show only variables that are unset")

	envCmd.MarkFlagsMutuallyExclusive("set-only", "unset-only")
}

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "List the environment variables this application reads",
	Long:  `List the environment variables this application reads together with their current values.`,
	Run: func(cmd *cobra.Command, args []string) {
		setOnly := lo.Must(cmd.Flags().GetBool("set-only"))
		unsetOnly := lo.Must(cmd.Flags().GetBool("unset-only"))

		names := make([]string, 0, len(config.EnvExposed)+1)
		for _, name := range config.EnvExposed {
			names = append(names, strings.ToUpper(constant.Kyoku+"_"+config.EnvKeyReplacer.Replace(name)))
		}
		names = append(names, where.EnvConfigPath)
		slices.Sort(names)

		for _, env := range names {
			value := os.Getenv(env)
			present := value != ""

			if setOnly && !present {
				continue
			}
			if unsetOnly && present {
				continue
			}

			cmd.Print(style.New().Bold(true).Foreground(color.Purple).Render(env))
			cmd.Print("=")

			if present {
				cmd.Println(style.Fg(color.Green)(value))
			} else {
				cmd.Println(style.Fg(color.Red)("unset"))
			}
		}
	},
}
