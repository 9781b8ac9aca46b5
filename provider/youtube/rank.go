package youtube

import (
	"sort"
	"strings"

	"github.com/kyoku-cli/kyoku/source"
	"github.com/kyoku-cli/kyoku/util"
)

// rankByQuery orders results by the share of query words found in the title
// or channel, best first. The sort is stable, so the original channel-first
// ordering breaks ties.
func rankByQuery(query string, results []*source.Result) {
	words := util.SplitWords(strings.ToLower(query))
	if len(words) == 0 {
		return
	}

	scores := make(map[*source.Result]float64, len(results))
	for _, result := range results {
		scores[result] = hitRatio(words, result)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return scores[results[i]] > scores[results[j]]
	})
}

func hitRatio(words []string, result *source.Result) float64 {
	haystack := strings.ToLower(result.Title + " " + result.Artist)

	var hits int
	for _, word := range words {
		if strings.Contains(haystack, word) {
			hits++
		}
	}
	return float64(hits) / float64(len(words))
}
