// Package mini implements a lightweight prompt-driven interface for
// searching and performing songs.
package mini

import (
	"os"

	"github.com/kyoku-cli/kyoku/source"
	"github.com/kyoku-cli/kyoku/util"
)

type Options struct {
	// Continue starts in the history instead of a fresh search.
	Continue bool
}

type mini struct {
	state         state
	statesHistory util.Stack[state]

	coordinator *source.Coordinator

	cachedResults map[string][]*source.Result

	query          string
	selectedResult *source.Result
	performer      string
}

func newMini() *mini {
	return &mini{
		statesHistory: util.Stack[state]{},
		cachedResults: make(map[string][]*source.Result),
	}
}

func (m *mini) previousState() {
	if m.statesHistory.Len() > 0 {
		m.setState(m.statesHistory.Pop())
	}
}

func (m *mini) setState(s state) {
	m.state = s
}

func (m *mini) newState(s state) {
	if m.state == s {
		return
	}

	m.statesHistory.Push(m.state)
	m.setState(s)
}

func Run(options *Options) error {
	m := newMini()
	m.state = sourceSelectState
	if options.Continue {
		m.state = historySelectState
	}

	for {
		if err := m.handleState(); err != nil {
			return err
		}
	}
}

func (m *mini) handleState() error {
	switch m.state {
	case sourceSelectState:
		return m.handleSourceSelectState()
	case searchState:
		return m.handleSearchState()
	case resultSelectState:
		return m.handleResultSelectState()
	case performerState:
		return m.handlePerformerState()
	case playState:
		return m.handlePlayState()
	case historySelectState:
		return m.handleHistorySelectState()
	case quitState:
		os.Exit(0)
	}

	return nil
}
