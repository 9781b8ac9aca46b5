// Package main is the entry point for the kyoku application.
package main

import (
	"github.com/kyoku-cli/kyoku/cmd"
	"github.com/kyoku-cli/kyoku/config"
	"github.com/kyoku-cli/kyoku/internal/cache"
	"github.com/kyoku-cli/kyoku/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	// Background cleanup of expired search result caches.
	go cache.CollectGarbage()

	cmd.Execute()
}
