// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"

	"github.com/kyoku-cli/kyoku/history"
	"github.com/kyoku-cli/kyoku/key"
	"github.com/kyoku-cli/kyoku/provider"
	"github.com/kyoku-cli/kyoku/source"
	"github.com/kyoku-cli/kyoku/style"
	"github.com/spf13/viper"
)

// listItem implements the list.Item interface, wrapping domain models for
// terminal display.
type listItem struct {
	internal interface{}
}

// Title retrieves the primary display text for the list item.
func (t *listItem) Title() (title string) {
	switch e := t.internal.(type) {
	case *source.Result:
		title = e.String()
	case *history.SavedEntry:
		title = e.String()
	case *provider.Provider:
		title = e.Name
	case string:
		title = e
	default:
		title = t.FilterValue()
	}

	return
}

// Description retrieves the secondary metadata line for the list item.
func (t *listItem) Description() (description string) {
	switch e := t.internal.(type) {
	case *source.Result:
		if e.Album != "" && e.Album != "Unknown" {
			description = e.Album
		}
		if viper.GetBool(key.TUIShowIdents) {
			if description != "" {
				description += " "
			}
			description += style.Faint(e.Ident)
		}
	case *history.SavedEntry:
		description = fmt.Sprintf("%s · sung by %s · %d times", e.SourceName, e.Performer, e.TimesPlayed)
	case *provider.Provider:
		if e.IsCustom {
			description = "Lua backend"
		} else {
			description = "Built-in backend"
		}
	}

	return
}

// FilterValue returns the string used for real-time list filtering.
func (t *listItem) FilterValue() string {
	switch e := t.internal.(type) {
	case *source.Result:
		return e.String()
	case *history.SavedEntry:
		return e.String()
	case *provider.Provider:
		return e.Name
	case string:
		return e
	default:
		return ""
	}
}
