// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

// Backend Function Identifiers - these constants define the required global function signatures for Lua backend scripts.
const (
	SearchSongsFn  = "SearchSongs"
	ResolveEntryFn = "ResolveEntry"
	FetchEntryFn   = "FetchEntry"
)

// SourceTemplate is a Go text/template for scaffolding new Lua backend files.
const SourceTemplate = `{{ $divider := repeat "-" (plus (max (len .URL) (len .Name) (len .Author) 3) 12) }}{{ $divider }}
-- @name    {{ .Name }}
-- @url     {{ .URL }}
-- @author  {{ .Author }}
-- @license MIT
{{ $divider }}


---@alias result { ident: string, title: string, artist: string|nil, album: string|nil }
---@alias entry  { ident: string, title: string, artist: string|nil, album: string|nil, duration: number|nil }
---@alias media  { video: string, audio: string|nil }


----- IMPORTS -----
--- END IMPORTS ---



----- VARIABLES -----
--- END VARIABLES ---



----- MAIN -----

--- Searches the backend for songs matching the query.
-- @param query string Query to search for
-- @return result[] Table of search hits
function {{ .SearchSongsFn }}(query)
	return {}
end


--- Builds a playable entry from an identifier.
-- @param ident string Identifier of the song
-- @return entry Entry table with cheaply available metadata
function {{ .ResolveEntryFn }}(ident)
	return { ident = ident, title = ident }
end


--- Downloads the media for an entry and returns local locations.
-- @param ident string Identifier of the song
-- @return media Table with a video location and an optional audio location
function {{ .FetchEntryFn }}(ident)
	return { video = "" }
end

--- END MAIN ---




----- HELPERS -----
--- END HELPERS ---

-- ex: ts=4 sw=4 et filetype=lua
`
