// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"
	"strings"

	"github.com/kyoku-cli/kyoku/history"
	"github.com/kyoku-cli/kyoku/icon"
	"github.com/kyoku-cli/kyoku/key"
	"github.com/kyoku-cli/kyoku/open"
	"github.com/kyoku-cli/kyoku/provider"
	"github.com/kyoku-cli/kyoku/query"
	"github.com/kyoku-cli/kyoku/source"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case provider.ScriptsUpdatedMsg:
		// Backend script updates are reloaded asynchronously.
		return b, b.loadProviders()
	case error:
		b.stopLoading()
		b.raiseError(msg)
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.forceQuit):
			return b, tea.Quit
		}

		// Input Guard: Ignore non-priority keys during asynchronous operations.
		if b.busy && b.state != playState && b.state != errorState {
			return b, nil
		}

		switch {
		case bubblesKey.Matches(msg, b.keymap.back) && b.state != playState:
			onListBack := func(l *list.Model) tea.Cmd {
				l.ResetSelected()
				l.ResetFilter()
				return tea.Batch(cmd, l.NewStatusMessage(""))
			}

			switch b.state {
			case searchState:
				b.inputC.SetValue("")
			case resultsState:
				if b.resultsC.FilterState() != list.Unfiltered {
					b.resultsC, cmd = b.resultsC.Update(msg)
					return b, cmd
				}
				cmd = onListBack(&b.resultsC)
			case historyState:
				if b.historyC.FilterState() != list.Unfiltered {
					b.historyC, cmd = b.historyC.Update(msg)
					return b, cmd
				}
				cmd = onListBack(&b.historyC)
			case sourcesState:
				if b.sourcesC.FilterState() != list.Unfiltered {
					b.sourcesC, cmd = b.sourcesC.Update(msg)
					return b, cmd
				}
				cmd = onListBack(&b.sourcesC)
			case performerState:
				b.performerC.Blur()
			}

			b.previousState()
			b.stopLoading()
			return b, cmd
		}
	}

	switch b.state {
	case loadingState:
		return b.updateLoading(msg)
	case historyState:
		return b.updateHistory(msg)
	case sourcesState:
		return b.updateSources(msg)
	case searchState:
		return b.updateSearch(msg)
	case resultsState:
		return b.updateResults(msg)
	case performerState:
		return b.updatePerformer(msg)
	case playState:
		return b.updatePlay(msg)
	case errorState:
		return b.updateError(msg)
	}

	return b, nil
}

func (b *statefulBubble) updateLoading(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds = make([]tea.Cmd, 0)
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.back):
			if b.statesHistory.Len() > 0 {
				b.previousState()
			} else {
				return b, tea.Quit
			}
		}
	case *source.Coordinator:
		b.coordinator = msg

		if b.statesHistory.Peek() == historyState {
			// Replaying a past performance skips search entirely.
			selected, ok := b.historyC.SelectedItem().(*listItem)
			if !ok {
				b.stopLoading()
				b.newState(historyState)
				return b, nil
			}

			entry := selected.internal.(*history.SavedEntry).Entry()
			b.progressStatus = "Buffering"
			b.newState(playState)
			return b, tea.Batch(b.playEntry(entry), b.waitForPlayback(), b.spinnerC.Tick)
		}

		b.stopLoading()
		b.newState(searchState)
		b.inputC.Focus()
		cmds = append(cmds, textinput.Blink)
	case []*source.Result:
		items := make([]list.Item, len(msg))
		for i, r := range msg {
			items[i] = &listItem{internal: r}
		}

		cmds = append(cmds, b.resultsC.SetItems(items))
		b.resultsC.ResetSelected()
		b.newState(resultsState)
		b.stopLoading()
	}

	b.spinnerC, cmd = b.spinnerC.Update(msg)
	return b, tea.Batch(append(cmds, cmd)...)
}

func (b *statefulBubble) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.up):
			if n := len(b.historyC.Items()); n > 0 && b.historyC.Index() == 0 {
				b.historyC.Select(n - 1)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.down):
			if n := len(b.historyC.Items()); n > 0 && b.historyC.Index() == n-1 {
				b.historyC.Select(0)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.remove):
			if b.historyC.SelectedItem() != nil {
				entry := b.historyC.SelectedItem().(*listItem).internal.(*history.SavedEntry)
				_ = history.Remove(entry)
				cmd, err := b.loadHistory()
				if err != nil {
					b.raiseError(err)
					return b, nil
				}
				return b, cmd
			}
		case bubblesKey.Matches(msg, b.keymap.confirm):
			if b.historyC.SelectedItem() != nil {
				selected := b.historyC.SelectedItem().(*listItem).internal.(*history.SavedEntry)

				p, ok := provider.Get(selected.SourceName)
				if !ok {
					b.raiseError(fmt.Errorf("backend %s not found (was used for %s)", selected.SourceName, selected))
					return b, nil
				}

				b.progressStatus = fmt.Sprintf("Initializing %s", p.Name)
				b.newState(loadingState)
				return b, tea.Batch(b.startLoading(), b.loadSource(p), b.waitForSourceLoaded(), b.spinnerC.Tick)
			}
		}
	}

	b.historyC, cmd = b.historyC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateSources(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.up):
			if n := len(b.sourcesC.Items()); n > 0 && b.sourcesC.Index() == 0 {
				b.sourcesC.Select(n - 1)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.down):
			if n := len(b.sourcesC.Items()); n > 0 && b.sourcesC.Index() == n-1 {
				b.sourcesC.Select(0)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.confirm):
			if b.sourcesC.SelectedItem() == nil {
				break
			}
			p := b.sourcesC.SelectedItem().(*listItem).internal.(*provider.Provider)

			b.resultsC.Title = fmt.Sprintf("Search Results - %s", p.Name)
			b.progressStatus = fmt.Sprintf("Initializing %s", p.Name)
			b.newState(loadingState)
			return b, tea.Batch(b.startLoading(), b.loadSource(p), b.waitForSourceLoaded(), b.spinnerC.Tick)
		}
	}

	b.sourcesC, cmd = b.sourcesC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.confirm) && b.inputC.Value() != "":
			b.progressStatus = fmt.Sprintf("Searching for %s", b.inputC.Value())
			b.startLoading()
			b.newState(loadingState)
			b.rememberQuery(b.inputC.Value())
			return b, tea.Batch(b.searchSongs(b.inputC.Value()), b.waitForResults(), b.spinnerC.Tick)
		case bubblesKey.Matches(msg, b.keymap.acceptSearchSuggestion) && b.searchSuggestion.IsPresent():
			b.inputC.SetValue(b.searchSuggestion.MustGet())
			b.searchSuggestion = mo.None[string]()
			b.inputC.SetCursor(len(b.inputC.Value()))
			return b, nil
		}
	}

	b.inputC, cmd = b.inputC.Update(msg)

	if b.inputC.Value() != "" && viper.GetBool(key.SearchShowQuerySuggestions) {
		if suggestion, ok := query.Suggest(b.inputC.Value()).Get(); ok && suggestion != b.inputC.Value() {
			b.searchSuggestion = mo.Some(suggestion)
		} else {
			b.searchSuggestion = mo.None[string]()
		}
	} else if b.searchSuggestion.IsPresent() {
		b.searchSuggestion = mo.None[string]()
	}

	return b, cmd
}

func (b *statefulBubble) updateResults(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.up):
			if n := len(b.resultsC.Items()); n > 0 && b.resultsC.Index() == 0 {
				b.resultsC.Select(n - 1)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.down):
			if n := len(b.resultsC.Items()); n > 0 && b.resultsC.Index() == n-1 {
				b.resultsC.Select(0)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.openURL):
			if b.resultsC.SelectedItem() == nil {
				break
			}
			result := b.resultsC.SelectedItem().(*listItem).internal.(*source.Result)
			if strings.HasPrefix(result.Ident, "http") {
				if err := open.Start(result.Ident); err != nil {
					b.raiseError(err)
				}
			}
		case bubblesKey.Matches(msg, b.keymap.confirm):
			if b.resultsC.SelectedItem() == nil {
				break
			}
			b.selectedResult = b.resultsC.SelectedItem().(*listItem).internal.(*source.Result)
			b.performerC.SetValue("")
			b.performerC.Focus()
			b.newState(performerState)
			return b, textinput.Blink
		}
	}

	b.resultsC, cmd = b.resultsC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updatePerformer(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.confirm):
			performer := b.performerC.Value()
			b.performerC.Blur()

			b.progressStatus = "Buffering"
			b.newState(playState)
			return b, tea.Batch(b.playResult(b.selectedResult, performer), b.waitForPlayback(), b.startLoading(), b.spinnerC.Tick)
		}
	}

	b.performerC, cmd = b.performerC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updatePlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case playbackDoneMsg:
		b.stopLoading()
		b.currentEntry = nil

		if b.statesHistory.Peek() == historyState {
			b.newState(searchState)
			b.inputC.Focus()
			return b, textinput.Blink
		}

		// Drop the performer prompt and the stale results frame from the
		// back stack so esc lands on the search input.
		for b.statesHistory.Len() > 0 {
			if s := b.statesHistory.Peek(); s == performerState || s == resultsState {
				b.statesHistory.Pop()
				continue
			}
			break
		}
		b.setState(resultsState)

		if msg.entry.Skip {
			cmd = b.resultsC.NewStatusMessage(fmt.Sprintf("%s Skipped %s", icon.Get(icon.Mark), msg.entry))
		} else {
			cmd = b.resultsC.NewStatusMessage(fmt.Sprintf("%s Finished %s", icon.Get(icon.Success), msg.entry))
		}
		return b, cmd
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.skip):
			if b.currentEntry != nil {
				b.coordinator.SkipCurrent(b.currentEntry)
			}
			return b, nil
		}
	}

	b.spinnerC, cmd = b.spinnerC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateError(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.quit):
			return b, tea.Quit
		case bubblesKey.Matches(msg, b.keymap.back):
			b.previousState()
			return b, nil
		}
	}
	return b, cmd
}
