package source

import (
	"path/filepath"
	"strings"

	"github.com/kyoku-cli/kyoku/util"
	"github.com/samber/lo"
)

// FilterByQuery keeps the paths whose basename contains every word of the
// query, case insensitively. Quoted query segments count as a single word.
func FilterByQuery(query string, paths []string) []string {
	words := util.SplitWords(strings.ToLower(query))

	return lo.Filter(paths, func(path string, _ int) bool {
		base := strings.ToLower(filepath.Base(path))
		for _, word := range words {
			if !strings.Contains(base, word) {
				return false
			}
		}
		return true
	})
}
