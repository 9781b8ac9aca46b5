// Package cmd implements the command-line interface for kyoku.
package cmd

import (
	"os"

	"github.com/kyoku-cli/kyoku/color"
	"github.com/kyoku-cli/kyoku/style"
	"github.com/kyoku-cli/kyoku/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

// whereTarget is one resolvable application path with its flag spelling.
type whereTarget struct {
	name     string
	where    func() string
	argLong  string
	argShort mo.Option[string]
	hidden   bool
}

var wherePaths = []*whereTarget{
	{"Config", where.Config, "config", mo.Some("c"), false},
	{"Sources", where.Sources, "sources", mo.Some("s"), false},
	{"Logs", where.Logs, "logs", mo.Some("l"), false},
	{"Downloads", where.Downloads, "downloads", mo.Some("d"), false},
	{"Cache", where.Cache, "cache", mo.None[string](), true},
	{"Temp", where.Temp, "temp", mo.None[string](), true},
	{"History", where.History, "history", mo.None[string](), true},
	{"Queries", where.Queries, "queries", mo.None[string](), true},
}

func init() {
	rootCmd.AddCommand(whereCmd)

	for _, target := range wherePaths {
		if short, ok := target.argShort.Get(); ok {
			whereCmd.Flags().BoolP(target.argLong, short, false, target.name+" path")
		} else {
			whereCmd.Flags().Bool(target.argLong, false, target.name+" path")
		}

		if target.hidden {
			lo.Must0(whereCmd.Flags().MarkHidden(target.argLong))
		}
	}

	whereCmd.MarkFlagsMutuallyExclusive(lo.Map(wherePaths, func(t *whereTarget, _ int) string {
		return t.argLong
	})...)

	whereCmd.SetOut(os.Stdout)
}

var whereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show where this application keeps its files",
	Run: func(cmd *cobra.Command, args []string) {
		// A single flag prints just that path, suitable for shell substitution.
		for _, target := range wherePaths {
			if lo.Must(cmd.Flags().GetBool(target.argLong)) {
				cmd.Println(target.where())
				return
			}
		}

		header := style.New().Bold(true).Foreground(color.HiPurple).Render
		visible := lo.Filter(wherePaths, func(t *whereTarget, _ int) bool {
			return !t.hidden
		})

		for i, target := range visible {
			cmd.Printf("%s %s\n", header(target.name+"?"), style.Fg(color.Yellow)("--"+target.argLong))
			cmd.Println(target.where())

			if i < len(visible)-1 {
				cmd.Println()
			}
		}
	},
}
