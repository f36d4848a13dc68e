package discovery

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Suggest ranks past search queries against a partial input. Matching is
// case-insensitive and fuzzy, closest matches first. An empty input returns
// the history unchanged so the dropdown can show recent queries.
func Suggest(input string, history []string, limit int) []string {
	input = strings.TrimSpace(input)
	if input == "" {
		if len(history) > limit {
			return history[:limit]
		}
		return history
	}

	ranks := fuzzy.RankFindFold(input, history)
	sort.Sort(ranks)

	out := make([]string, 0, len(ranks))
	for _, r := range ranks {
		out = append(out, r.Target)
		if len(out) == limit {
			break
		}
	}
	return out
}
