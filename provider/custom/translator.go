// Package custom bridges the Go core and user-written Lua backend scripts.
package custom

import (
	"fmt"

	"github.com/kyoku-cli/kyoku/source"
	"github.com/samber/mo"
	lua "github.com/yuin/gopher-lua"
)

func getString(table *lua.LTable, key string) string {
	val := table.RawGetString(key)
	if val.Type() == lua.LTString {
		return val.String()
	}
	return ""
}

func getInt(table *lua.LTable, key string) int {
	val := table.RawGetString(key)
	if val.Type() == lua.LTNumber {
		return int(val.(lua.LNumber))
	}
	return 0
}

func getBool(table *lua.LTable, key string) bool {
	val := table.RawGetString(key)
	if val.Type() == lua.LTBool {
		return bool(val.(lua.LBool))
	}
	return false
}

// resultFromTable converts a Lua search hit into a result. Ident and title
// are mandatory.
func resultFromTable(table *lua.LTable, sourceName string) (*source.Result, error) {
	ident := getString(table, "ident")
	title := getString(table, "title")

	if ident == "" || title == "" {
		return nil, fmt.Errorf("search hit must have ident and title")
	}

	return &source.Result{
		Ident:      ident,
		SourceName: sourceName,
		Title:      title,
		Artist:     getString(table, "artist"),
		Album:      getString(table, "album"),
	}, nil
}

// entryFromTable converts a Lua entry table into an entry.
func entryFromTable(table *lua.LTable, sourceName, performer, ident string) (*source.Entry, error) {
	title := getString(table, "title")
	if title == "" {
		return nil, fmt.Errorf("entry must have a title")
	}

	return &source.Entry{
		Ident:          ident,
		SourceName:     sourceName,
		Performer:      performer,
		Title:          title,
		Artist:         getString(table, "artist"),
		Album:          getString(table, "album"),
		Duration:       getInt(table, "duration"),
		IncompleteData: getBool(table, "incomplete"),
	}, nil
}

// mediaFromTable converts a Lua fetch response into media locations.
func mediaFromTable(table *lua.LTable) (source.Media, error) {
	video := getString(table, "video")
	if video == "" {
		return source.Media{}, fmt.Errorf("fetch response must have a video location")
	}

	audio := mo.None[string]()
	if a := getString(table, "audio"); a != "" {
		audio = mo.Some(a)
	}

	return source.Media{Video: video, Audio: audio}, nil
}

// metadataFromTable converts a Lua metadata table.
func metadataFromTable(table *lua.LTable) source.Metadata {
	return source.Metadata{
		Title:    getString(table, "title"),
		Artist:   getString(table, "artist"),
		Album:    getString(table, "album"),
		Duration: getInt(table, "duration"),
	}
}

// entryToTable exposes an entry to a Lua function.
func entryToTable(L *lua.LState, entry *source.Entry) *lua.LTable {
	table := L.NewTable()
	table.RawSetString("ident", lua.LString(entry.Ident))
	table.RawSetString("performer", lua.LString(entry.Performer))
	table.RawSetString("title", lua.LString(entry.Title))
	table.RawSetString("artist", lua.LString(entry.Artist))
	table.RawSetString("album", lua.LString(entry.Album))
	table.RawSetString("duration", lua.LNumber(entry.Duration))
	return table
}
