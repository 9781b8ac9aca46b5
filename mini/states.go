// Package mini implements a lightweight prompt-driven interface for
// searching and performing songs.
package mini

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/kyoku-cli/kyoku/history"
	"github.com/kyoku-cli/kyoku/icon"
	"github.com/kyoku-cli/kyoku/key"
	"github.com/kyoku-cli/kyoku/provider"
	"github.com/kyoku-cli/kyoku/query"
	"github.com/kyoku-cli/kyoku/source"
	"github.com/kyoku-cli/kyoku/util"
	"github.com/samber/lo"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

type state int

const (
	sourceSelectState state = iota + 1
	searchState
	resultSelectState
	performerState
	playState
	historySelectState
	quitState
)

const (
	optionBack = "← back"
	optionQuit = "✕ quit"
)

func (m *mini) handleSourceSelectState() error {
	names := viper.GetStringSlice(key.DefaultSources)

	var chosen string
	switch len(names) {
	case 1:
		chosen = names[0]
	default:
		providers := provider.All()
		slices.SortFunc(providers, func(a, b *provider.Provider) int {
			return strings.Compare(a.String(), b.String())
		})

		options := lo.Map(providers, func(p *provider.Provider, _ int) string {
			return p.Name
		})
		options = append(options, optionQuit)

		prompt := &survey.Select{
			Message: "Select a backend",
			Options: options,
		}
		if err := survey.AskOne(prompt, &chosen); err != nil {
			return err
		}

		if chosen == optionQuit {
			m.newState(quitState)
			return nil
		}
	}

	p, ok := provider.Get(chosen)
	if !ok {
		return fmt.Errorf("unknown backend %q", chosen)
	}

	erase := util.PrintErasable(fmt.Sprintf("%s Initializing backend..", icon.Get(icon.Progress)))
	src, err := p.CreateSource()
	erase()
	if err != nil {
		return err
	}

	m.coordinator = source.NewCoordinator(src)
	m.newState(searchState)
	return nil
}

func (m *mini) handleSearchState() error {
	prompt := &survey.Input{
		Message: "Search a song",
		Suggest: query.SuggestMany,
	}

	var q string
	if err := survey.AskOne(prompt, &q, survey.WithValidator(survey.Required)); err != nil {
		return err
	}

	erase := util.PrintErasable(fmt.Sprintf("%s Searching..", icon.Get(icon.Progress)))
	results, err := m.coordinator.Source().Search(q)
	erase()
	if err != nil {
		return err
	}

	limit := util.Min(len(results), viper.GetInt(key.SearchLimit))
	results = results[:limit]

	if len(results) == 0 {
		fmt.Printf("%s No results found\n", icon.Get(icon.Fail))
		return nil
	}

	_ = query.Remember(q, 1)

	m.query = q
	m.cachedResults[q] = results
	m.newState(resultSelectState)
	return nil
}

func (m *mini) handleResultSelectState() error {
	results := m.cachedResults[m.query]

	options := lo.Map(results, func(r *source.Result, _ int) string {
		return r.String()
	})
	options = append(options, optionBack, optionQuit)

	var chosen string
	prompt := &survey.Select{
		Message:  "Pick a song",
		Options:  options,
		PageSize: 15,
	}
	if err := survey.AskOne(prompt, &chosen); err != nil {
		return err
	}

	switch chosen {
	case optionBack:
		m.setState(searchState)
		return nil
	case optionQuit:
		m.newState(quitState)
		return nil
	}

	idx := lo.IndexOf(options, chosen)
	m.selectedResult = results[idx]
	m.newState(performerState)
	return nil
}

func (m *mini) handlePerformerState() error {
	prompt := &survey.Input{
		Message: "Who is singing?",
	}

	if err := survey.AskOne(prompt, &m.performer); err != nil {
		return err
	}

	m.newState(playState)
	return nil
}

func (m *mini) handlePlayState() error {
	entry, err := m.coordinator.Source().Resolve(m.performer, m.selectedResult.Ident)
	if err != nil {
		return err
	}

	if err = m.coordinator.CompleteMetadata(entry); err != nil {
		fmt.Printf("%s Metadata lookup failed\n", icon.Get(icon.Fail))
	}

	m.play(entry)

	m.setState(searchState)
	return nil
}

func (m *mini) handleHistorySelectState() error {
	saved, err := history.Get()
	if err != nil {
		return err
	}

	records := lo.Values(saved)
	sort.Slice(records, func(i, j int) bool {
		return records[i].LastPlayedAt.After(records[j].LastPlayedAt)
	})

	if len(records) == 0 {
		fmt.Printf("%s History is empty\n", icon.Get(icon.Fail))
		m.setState(sourceSelectState)
		return nil
	}

	options := lo.Map(records, func(r *history.SavedEntry, _ int) string {
		return fmt.Sprintf("%s (%s)", r, r.SourceName)
	})
	options = append(options, optionQuit)

	var chosen string
	prompt := &survey.Select{
		Message:  "Play again",
		Options:  options,
		PageSize: 15,
	}
	if err = survey.AskOne(prompt, &chosen); err != nil {
		return err
	}

	if chosen == optionQuit {
		m.newState(quitState)
		return nil
	}

	record := records[lo.IndexOf(options, chosen)]

	p, ok := provider.Get(record.SourceName)
	if !ok {
		return fmt.Errorf("unknown backend %q", record.SourceName)
	}

	src, err := p.CreateSource()
	if err != nil {
		return err
	}
	m.coordinator = source.NewCoordinator(src)

	m.play(record.Entry())

	m.setState(searchState)
	return nil
}

// play blocks through buffering and playback. Pressing enter skips the song.
func (m *mini) play(entry *source.Entry) {
	fmt.Printf("%s Now playing %s. Press enter to skip\n", icon.Get(icon.Song), entry)

	stop := make(chan struct{})
	go func() {
		reader := bufio.NewReader(os.Stdin)
		for {
			select {
			case <-stop:
				return
			default:
			}

			if _, err := reader.ReadString('\n'); err != nil {
				return
			}
			m.coordinator.SkipCurrent(entry)
			return
		}
	}()

	m.coordinator.Play(entry)
	close(stop)

	if entry.Skip {
		fmt.Printf("%s Skipped %s\n", icon.Get(icon.Mark), entry)
	} else if viper.GetBool(key.HistorySaveOnPlay) {
		if err := history.Save(entry); err == nil {
			fmt.Printf("%s Finished %s\n", icon.Get(icon.Success), entry)
		}
	}
}
