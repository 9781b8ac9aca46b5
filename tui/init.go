// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"

	"github.com/kyoku-cli/kyoku/key"
	"github.com/kyoku-cli/kyoku/provider"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/viper"
)

// Init initializes the terminal user interface, triggering initial data loads.
func (b *statefulBubble) Init() tea.Cmd {
	if b.state == historyState {
		cmd, err := b.loadHistory()
		if err != nil {
			b.raiseError(err)
			return nil
		}
		return tea.Batch(cmd, provider.UpdateScripts())
	}

	// Skip the backend list when a single default backend is configured
	if names := viper.GetStringSlice(key.DefaultSources); len(names) == 1 {
		p, ok := provider.Get(names[0])
		if !ok {
			b.raiseError(fmt.Errorf("backend %s not found", names[0]))
			return nil
		}

		b.resultsC.Title = fmt.Sprintf("Search Results - %s", p.Name)
		b.progressStatus = fmt.Sprintf("Initializing %s", p.Name)
		b.setState(loadingState)
		return tea.Batch(b.startLoading(), b.loadSource(p), b.waitForSourceLoaded(), b.spinnerC.Tick, provider.UpdateScripts())
	}

	return tea.Batch(textinput.Blink, b.loadProviders(), provider.UpdateScripts())
}
