// Package icon provides a flexible multi-variant rendering engine for UI symbols and feedback indicators.
package icon

// Icon identifies a symbol in the global registry.
type Icon int

const (
	Success Icon = iota
	Fail
	Progress
	Question
	Mark
	Song
	Mic
	Lua
)

// icons is the global registry mapping each Icon to its per-variant representations.
var icons = map[Icon]*iconDef{
	Success: {
		emoji:   "✅",
		nerd:    "",
		plain:   "[ok]",
		kaomoji: "(´• ω •`)",
		squares: "■",
	},
	Fail: {
		emoji:   "❌",
		nerd:    "",
		plain:   "[fail]",
		kaomoji: "(╯°□°）╯",
		squares: "□",
	},
	Progress: {
		emoji:   "⏳",
		nerd:    "",
		plain:   "...",
		kaomoji: "(￣ω￣;)",
		squares: "▱",
	},
	Question: {
		emoji:   "❓",
		nerd:    "",
		plain:   "[?]",
		kaomoji: "(・・ ) ?",
		squares: "▣",
	},
	Mark: {
		emoji:   "🔖",
		nerd:    "",
		plain:   "*",
		kaomoji: "(☆ω☆)",
		squares: "▪",
	},
	Song: {
		emoji:   "🎵",
		nerd:    "",
		plain:   "[s]",
		kaomoji: "(￣▽￣)ノ",
		squares: "▰",
	},
	Mic: {
		emoji:   "🎤",
		nerd:    "",
		plain:   "[m]",
		kaomoji: "(＾▽＾)",
		squares: "◆",
	},
	Lua: {
		emoji:   "🌙",
		nerd:    "",
		plain:   "[lua]",
		kaomoji: "(•̀ᴗ•́)و",
		squares: "◩",
	},
}
