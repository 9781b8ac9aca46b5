// Package cmd implements the command-line interface for kyoku.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/kyoku-cli/kyoku/client"
	"github.com/kyoku-cli/kyoku/key"
	"github.com/kyoku-cli/kyoku/provider"
	"github.com/kyoku-cli/kyoku/source"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(clientCmd)

	clientCmd.Flags().StringP("server", "a", "", "Address of the shared queue server")
	lo.Must0(viper.BindPFlag(key.ServerAddress, clientCmd.Flags().Lookup("server")))

	clientCmd.Flags().StringP("room", "r", "", "Room code to join, empty lets the server assign one")
	lo.Must0(viper.BindPFlag(key.ServerRoom, clientCmd.Flags().Lookup("room")))
}

// clientCmd connects to a shared queue server and performs whatever the room queues.
var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Connect to a shared queue server and play songs queued by the room",
	Long: `Connect to a shared queue server as the playback client.
Guests queue songs through the server, this client buffers and plays them in order.
All configured default backends are offered to the room.`,
	Run: func(cmd *cobra.Command, args []string) {
		CheckDependencies()

		names := viper.GetStringSlice(key.DefaultSources)
		if len(names) == 0 {
			handleErr(errors.New("no backends configured, set sources.default first"))
		}

		coordinators := make(map[string]*source.Coordinator, len(names))
		for _, name := range names {
			p, ok := provider.Get(name)
			if !ok {
				handleErr(fmt.Errorf("backend not found: %s", name))
			}

			src, err := p.CreateSource()
			handleErr(err)

			coordinators[src.Name()] = source.NewCoordinator(src)
		}

		c, err := client.New(coordinators)
		handleErr(err)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err = c.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			handleErr(err)
		}
	},
}
