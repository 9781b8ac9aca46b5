// Package cmd implements the command-line interface for kyoku.
package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/kyoku-cli/kyoku/color"
	"github.com/kyoku-cli/kyoku/config"
	"github.com/kyoku-cli/kyoku/constant"
	"github.com/kyoku-cli/kyoku/filesystem"
	"github.com/kyoku-cli/kyoku/icon"
	"github.com/kyoku-cli/kyoku/style"
	"github.com/kyoku-cli/kyoku/where"
	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// errUnknownKey suggests the registered key closest to the misspelled one.
func errUnknownKey(name string) error {
	closest := lo.MinBy(lo.Keys(config.Default), func(a, b string) bool {
		return levenshtein.Distance(name, a) < levenshtein.Distance(name, b)
	})

	return fmt.Errorf(
		"unknown key %s, did you mean %s?",
		style.Fg(color.Red)(name),
		style.Fg(color.Yellow)(closest),
	)
}

func completionConfigKeys(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return lo.Keys(config.Default), cobra.ShellCompDirectiveNoFileComp
}

func configFilePath() string {
	return filepath.Join(where.Config(), constant.Kyoku+".toml")
}

// flushConfig persists viper's state, creating the file on first write.
func flushConfig() error {
	err := viper.WriteConfig()
	if _, notFound := err.(viper.ConfigFileNotFoundError); notFound {
		return viper.SafeWriteConfig()
	}
	return err
}

func printConfigSuccess(format string, args ...any) {
	mark := style.Fg(color.Green)(icon.Get(icon.Success))
	fmt.Printf("%s "+format+"\n", append([]any{mark}, args...)...)
}

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and change configuration values",
}

func init() {
	configCmd.AddCommand(configInfoCmd)
	configInfoCmd.Flags().StringSliceP("key", "k", []string{}, "Limit output to these keys")
	configInfoCmd.Flags().BoolP("json", "j", false, "Print as JSON")
	_ = configInfoCmd.RegisterFlagCompletionFunc("key", completionConfigKeys)

	configInfoCmd.SetOut(os.Stdout)
}

var configInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show every configuration field with its description and default",
	Run: func(cmd *cobra.Command, args []string) {
		var (
			keys   = lo.Must(cmd.Flags().GetStringSlice("key"))
			asJson = lo.Must(cmd.Flags().GetBool("json"))
			fields = lo.Values(config.Default)
		)

		if len(keys) > 0 {
			fields = fields[:0]
			for _, name := range keys {
				field, ok := config.Default[name]
				if !ok {
					handleErr(errUnknownKey(name))
				}
				fields = append(fields, field)
			}
		}

		sort.Slice(fields, func(i, j int) bool {
			return fields[i].Key < fields[j].Key
		})

		if asJson {
			lo.Must0(json.NewEncoder(cmd.OutOrStdout()).Encode(fields))
			return
		}

		for i, field := range fields {
			fmt.Print(field.Pretty())
			if i < len(fields)-1 {
				fmt.Print("\n\n")
			}
		}
	},
}

func init() {
	configCmd.AddCommand(configSetCmd)
	configSetCmd.Flags().StringSliceP("value", "v", []string{}, "Value to assign")
}

var configSetCmd = &cobra.Command{
	Use:               "set [key] [value]",
	Short:             "Assign a value to a configuration key",
	Args:              cobra.MaximumNArgs(2),
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		flagValue := lo.Must(cmd.Flags().GetStringSlice("value"))

		if len(args) == 0 {
			handleErr(errors.New("key is required as an argument"))
		}
		name := args[0]

		var raw []string
		switch {
		case len(args) >= 2:
			raw = args[1:]
		case len(flagValue) > 0:
			raw = flagValue
		default:
			handleErr(errors.New("value is required as an argument or --value flag"))
		}

		field, ok := config.Default[name]
		if !ok {
			handleErr(errUnknownKey(name))
		}

		// The default's type decides how the raw input is parsed.
		var parsed any
		switch field.Value.(type) {
		case string:
			parsed = raw[0]
		case int:
			n, err := strconv.ParseInt(raw[0], 10, 64)
			if err != nil {
				handleErr(fmt.Errorf("invalid integer value: %s", raw[0]))
			}
			parsed = int(n)
		case bool:
			b, err := strconv.ParseBool(raw[0])
			if err != nil {
				handleErr(fmt.Errorf("invalid boolean value: %s", raw[0]))
			}
			parsed = b
		case []string:
			parsed = raw
		}

		viper.Set(name, parsed)
		handleErr(flushConfig())

		printConfigSuccess(
			"set %s to %s",
			style.Fg(color.Purple)(name),
			style.Fg(color.Yellow)(fmt.Sprintf("%v", parsed)),
		)
	},
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configGetCmd.Flags().StringP("key", "k", "", "Key to read")
	_ = configGetCmd.RegisterFlagCompletionFunc("key", completionConfigKeys)
}

var configGetCmd = &cobra.Command{
	Use:               "get [key]",
	Short:             "Print the current value of a configuration key",
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		name := lo.Must(cmd.Flags().GetString("key"))
		if len(args) >= 1 {
			name = args[0]
		}
		if name == "" {
			handleErr(errors.New("key is required as an argument or --key flag"))
		}

		if _, ok := config.Default[name]; !ok {
			handleErr(errUnknownKey(name))
		}

		fmt.Println(viper.Get(name))
	},
}

func init() {
	configCmd.AddCommand(configWriteCmd)
	configWriteCmd.Flags().BoolP("force", "f", false, "Overwrite an existing configuration file")
}

var configWriteCmd = &cobra.Command{
	Use:   "write",
	Short: "Write the active configuration to disk",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("force")) {
			handleErr(filesystem.API().Remove(configFilePath()))
		}

		handleErr(viper.SafeWriteConfig())
		printConfigSuccess("wrote config to %s", configFilePath())
	},
}

func init() {
	configCmd.AddCommand(configDeleteCmd)
}

var configDeleteCmd = &cobra.Command{
	Use:     "delete",
	Short:   "Delete the configuration file",
	Aliases: []string{"remove"},
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(filesystem.API().Remove(configFilePath()))
		printConfigSuccess("deleted config")
	},
}

func init() {
	configCmd.AddCommand(configResetCmd)

	configResetCmd.Flags().StringP("key", "k", "", "Key to restore to its default")
	configResetCmd.Flags().BoolP("all", "a", false, "Restore every key to its default")
	configResetCmd.MarkFlagsMutuallyExclusive("key", "all")
	_ = configResetCmd.RegisterFlagCompletionFunc("key", completionConfigKeys)
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore configuration keys to their defaults",
	PreRun: func(cmd *cobra.Command, args []string) {
		if !cmd.Flags().Changed("key") && !cmd.Flags().Changed("all") {
			handleErr(errors.New("either --key or --all must be set"))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		var (
			name = lo.Must(cmd.Flags().GetString("key"))
			all  = lo.Must(cmd.Flags().GetBool("all"))
		)

		switch {
		case all:
			for name, field := range config.Default {
				viper.Set(name, field.Value)
			}
		default:
			field, ok := config.Default[name]
			if !ok {
				handleErr(errUnknownKey(name))
			}
			viper.Set(name, field.Value)
		}

		handleErr(flushConfig())

		if all {
			printConfigSuccess("reset all config values")
			return
		}

		printConfigSuccess(
			"reset %s to default value %s",
			style.Fg(color.Purple)(name),
			style.Fg(color.Yellow)(fmt.Sprintf("%v", config.Default[name].Value)),
		)
	},
}
