// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"sort"
	"strings"

	"github.com/kyoku-cli/kyoku/history"
	"github.com/kyoku-cli/kyoku/key"
	"github.com/kyoku-cli/kyoku/log"
	"github.com/kyoku-cli/kyoku/provider"
	"github.com/kyoku-cli/kyoku/query"
	"github.com/kyoku-cli/kyoku/source"
	"github.com/kyoku-cli/kyoku/util"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

func (b *statefulBubble) loadProviders() tea.Cmd {
	providers := provider.Builtins()
	customProviders := provider.Customs()

	var items []list.Item
	for _, p := range providers {
		items = append(items, &listItem{
			internal: p,
		})
	}
	sort.Slice(items, func(i, j int) bool {
		return strings.Compare(items[i].FilterValue(), items[j].FilterValue()) < 0
	})

	var customItems []list.Item
	for _, p := range customProviders {
		customItems = append(customItems, &listItem{
			internal: p,
		})
	}
	sort.Slice(customItems, func(i, j int) bool {
		return strings.Compare(customItems[i].FilterValue(), customItems[j].FilterValue()) < 0
	})

	return b.sourcesC.SetItems(append(items, customItems...))
}

func (b *statefulBubble) loadHistory() (tea.Cmd, error) {
	saved, err := history.Get()
	if err != nil {
		return nil, err
	}

	entries := lo.Values(saved)
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].LastPlayedAt.After(entries[j].LastPlayedAt)
	})

	var items []list.Item
	for _, e := range entries {
		items = append(items, &listItem{
			internal: e,
		})
	}

	return tea.Batch(b.historyC.SetItems(items), b.loadProviders()), nil
}

func (b *statefulBubble) loadSource(p *provider.Provider) tea.Cmd {
	return func() tea.Msg {
		log.Info("loading backend " + p.ID)

		src, err := p.CreateSource()
		if err != nil {
			log.Error(err)
			b.errorChannel <- err
			return nil
		}

		log.Info("backend " + p.ID + " loaded")
		b.coordinatorLoadedChannel <- source.NewCoordinator(src)
		return nil
	}
}

func (b *statefulBubble) waitForSourceLoaded() tea.Cmd {
	return func() tea.Msg {
		select {
		case res := <-b.coordinatorLoadedChannel:
			return res
		case err := <-b.errorChannel:
			b.lastError = err
			return err
		}
	}
}

func (b *statefulBubble) searchSongs(q string) tea.Cmd {
	return func() tea.Msg {
		log.Info("searching for " + q)

		results, err := b.coordinator.Source().Search(q)
		if err != nil {
			log.Error(err)
			b.errorChannel <- err
			return nil
		}

		limit := util.Min(len(results), viper.GetInt(key.SearchLimit))
		results = results[:limit]

		log.Infof("found %s", util.Quantify(len(results), "song", "songs"))
		b.foundResultsChannel <- results
		return nil
	}
}

func (b *statefulBubble) waitForResults() tea.Cmd {
	return func() tea.Msg {
		select {
		case found := <-b.foundResultsChannel:
			return found
		case err := <-b.errorChannel:
			b.lastError = err
			return err
		}
	}
}

// playResult resolves the picked result for the performer and blocks through
// buffering and playback.
func (b *statefulBubble) playResult(result *source.Result, performer string) tea.Cmd {
	return func() tea.Msg {
		entry, err := b.coordinator.Source().Resolve(performer, result.Ident)
		if err != nil {
			log.Error(err)
			b.errorChannel <- err
			return nil
		}

		return b.playEntry(entry)()
	}
}

func (b *statefulBubble) playEntry(entry *source.Entry) tea.Cmd {
	return func() tea.Msg {
		b.currentEntry = entry

		if err := b.coordinator.CompleteMetadata(entry); err != nil {
			log.Warnf("metadata lookup for %s: %v", entry.Ident, err)
		}

		log.Infof("playing %s", entry)
		b.progressStatus = "Buffering"

		b.coordinator.Play(entry)

		if !entry.Skip && viper.GetBool(key.HistorySaveOnPlay) {
			if err := history.Save(entry); err != nil {
				log.Warnf("history save: %v", err)
			}
		}

		b.playbackDoneChannel <- entry
		return nil
	}
}

func (b *statefulBubble) waitForPlayback() tea.Cmd {
	return func() tea.Msg {
		select {
		case entry := <-b.playbackDoneChannel:
			return playbackDoneMsg{entry: entry}
		case err := <-b.errorChannel:
			b.lastError = err
			return err
		}
	}
}

type playbackDoneMsg struct {
	entry *source.Entry
}

func (b *statefulBubble) rememberQuery(q string) {
	go func() {
		if err := query.Remember(q, 1); err != nil {
			log.Warnf("query remember: %v", err)
		}
	}()
}
