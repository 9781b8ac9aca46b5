// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"
	"strings"

	"github.com/kyoku-cli/kyoku/color"
	"github.com/kyoku-cli/kyoku/icon"
	"github.com/kyoku-cli/kyoku/style"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"
)

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
)

func (b *statefulBubble) View() string {
	switch b.state {
	case loadingState:
		return b.viewLoading()
	case historyState:
		return b.viewHistory()
	case sourcesState:
		return b.viewSources()
	case searchState:
		return b.viewSearch()
	case resultsState:
		return b.viewResults()
	case performerState:
		return b.viewPerformer()
	case playState:
		return b.viewPlay()
	case errorState:
		return b.viewError()
	default:
		return "Unknown state"
	}
}

func (b *statefulBubble) viewLoading() string {
	return b.renderLines(
		true,
		[]string{
			style.Title("Loading"),
			"",
			b.spinnerC.View() + " " + b.progressStatus,
		},
	)
}

func (b *statefulBubble) viewHistory() string {
	return listExtraPaddingStyle.Render(b.historyC.View())
}

func (b *statefulBubble) viewSources() string {
	return listExtraPaddingStyle.Render(b.sourcesC.View())
}

func (b *statefulBubble) viewSearch() string {
	lines := []string{
		style.Title("Search a Song"),
		"",
		b.inputC.View(),
	}

	if suggestion, ok := b.searchSuggestion.Get(); ok {
		lines = append(lines, "", style.Faint(fmt.Sprintf("tab to complete: %s", suggestion)))
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewResults() string {
	return listExtraPaddingStyle.Render(b.resultsC.View())
}

func (b *statefulBubble) viewPerformer() string {
	lines := []string{
		style.Title("Performer"),
		"",
		style.Truncate(b.width)(fmt.Sprintf("%s %s", icon.Get(icon.Song), style.Fg(style.AccentColor)(b.selectedResult.String()))),
		"",
		b.performerC.View(),
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewPlay() string {
	var entryName string

	entry := b.currentEntry
	if entry != nil {
		entryName = entry.String()
	}

	return b.renderLines(
		true,
		[]string{
			style.Title("Now Singing"),
			"",
			style.Truncate(b.width)(fmt.Sprintf("%s %s", icon.Get(icon.Mic), style.Fg(color.Orange)(entryName))),
			"",
			style.Truncate(b.width)(b.spinnerC.View() + " " + b.progressStatus),
		},
	)
}

func (b *statefulBubble) viewError() string {
	errorBody := style.Bold(fmt.Sprintf("%v", b.lastError))
	errorMsg := wrap.String(errorBody, b.width)
	return b.renderLines(
		true,
		append([]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " An error occurred:",
			"",
		},
			errorMsg,
		),
	)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
