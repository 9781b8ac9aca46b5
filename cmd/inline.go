// Package cmd implements the command-line interface for kyoku.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kyoku-cli/kyoku/filesystem"
	"github.com/kyoku-cli/kyoku/inline"
	"github.com/kyoku-cli/kyoku/key"
	"github.com/kyoku-cli/kyoku/provider"
	"github.com/kyoku-cli/kyoku/query"
	"github.com/kyoku-cli/kyoku/source"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(inlineCmd)

	inlineCmd.Flags().StringP("query", "q", "", "The search query to execute for song discovery")
	inlineCmd.Flags().StringP("song", "s", "", "Criteria for selecting a specific song from the search results")
	inlineCmd.Flags().StringP("performer", "p", "", "The performer to resolve the selected songs for")
	inlineCmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON object")
	inlineCmd.Flags().BoolP("resolve", "r", false, "Resolve the selected songs into playable entries")
	inlineCmd.Flags().BoolP("download", "d", false, "Buffer the selected songs and report their media locations")
	inlineCmd.Flags().BoolP("play", "P", false, "Play the first selected song")

	inlineCmd.Flags().StringP("output", "o", "", "Specify a file path to write the command output")

	lo.Must0(inlineCmd.MarkFlagRequired("query"))

	_ = inlineCmd.RegisterFlagCompletionFunc("query", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
	})
}

// parsePickerFlag maps the CLI selector syntax onto a result picker.
func parsePickerFlag(flag string) (inline.ResultPicker, error) {
	switch {
	case flag == "first" || flag == "last":
		return inline.ParseResultPicker(flag, "")
	case strings.HasPrefix(flag, "exact="):
		return inline.ParseResultPicker("exact", strings.TrimPrefix(flag, "exact="))
	default:
		return inline.ParseResultPicker("index", flag)
	}
}

// inlineCmd executes the application in non-interactive, scriptable inline mode.
var inlineCmd = &cobra.Command{
	Use:   "inline",
	Short: "Execute the application in non-interactive, scriptable inline mode",
	Long: `Initialize the application for automated execution and data extraction using inline mode.

Song selectors:
  first - first song in the list
  last - last song in the list
  exact=[title] - select a song by exact title
  [number] - select a song by index (starting from 0)

When using the json flag the song selector can be omitted. That way, all results are included`,
	PreRun: func(cmd *cobra.Command, args []string) {
		asJson, _ := cmd.Flags().GetBool("json")

		if !asJson && lo.Must(cmd.Flags().GetString("song")) == "" {
			handleErr(errors.New("song selector is required unless --json is set"))
		}

		if lo.Must(cmd.Flags().GetBool("play")) && lo.Must(cmd.Flags().GetString("song")) == "" {
			handleErr(errors.New("song selector is required with --play"))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		var sources []source.Source

		names := viper.GetStringSlice(key.DefaultSources)
		if len(names) == 0 {
			handleErr(errors.New("source not set"))
		}

		for _, name := range names {
			p, ok := provider.Get(name)
			if !ok {
				handleErr(fmt.Errorf("source not found: %s", name))
			}

			src, err := p.CreateSource()
			handleErr(err)

			sources = append(sources, src)
		}

		output := lo.Must(cmd.Flags().GetString("output"))
		var writer io.Writer
		if output != "" {
			f, err := filesystem.API().Create(output)
			handleErr(err)
			writer = f
		} else {
			writer = os.Stdout
		}

		pickerFlag := lo.Must(cmd.Flags().GetString("song"))
		picker := mo.None[inline.ResultPicker]()
		if pickerFlag != "" {
			fn, err := parsePickerFlag(pickerFlag)
			handleErr(err)
			picker = mo.Some(fn)
		}

		options := &inline.Options{
			Out:          writer,
			Sources:      sources,
			Query:        lo.Must(cmd.Flags().GetString("query")),
			Performer:    lo.Must(cmd.Flags().GetString("performer")),
			Json:         lo.Must(cmd.Flags().GetBool("json")),
			ResultPicker: picker,
			Resolve:      lo.Must(cmd.Flags().GetBool("resolve")),
			Download:     lo.Must(cmd.Flags().GetBool("download")),
			Play:         lo.Must(cmd.Flags().GetBool("play")),
		}

		if options.Play {
			CheckDependencies()
		}

		handleErr(inline.Run(options))
	},
}

func init() {
	inlineCmd.AddCommand(inlineSchemaCmd)
	inlineSchemaCmd.SetOut(os.Stdout)
}

// inlineSchemaCmd generates the JSON schema for structured inline mode output.
var inlineSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate the JSON schema for structured inline mode output",
	Run: func(cmd *cobra.Command, args []string) {
		schema, err := inline.Schema()
		handleErr(err)

		cmd.Println(string(schema))
	},
}
