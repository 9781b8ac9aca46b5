// Package cmd implements the command-line interface for kyoku.
package cmd

import (
	"github.com/kyoku-cli/kyoku/provider/custom"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(runCmd)
}

// runCmd facilitates the execution of local Lua backend files for development and debugging.
var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Execute a local Lua backend file",
	Long: `Initialize the Lua 5.1 virtual machine to load and validate a backend script.
Useful for backend development and debugging.`,
	Args:    cobra.ExactArgs(1),
	Example: "  kyoku run ./test.lua",
	Run: func(cmd *cobra.Command, args []string) {
		sourcePath := args[0]

		_, err := custom.LoadSource(sourcePath)
		handleErr(err)
	},
}
