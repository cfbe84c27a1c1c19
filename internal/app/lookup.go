package app

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Match returns the popup names matching query, best match first. An empty
// query matches every popup in name order.
func (c *Catalog) Match(query string) []string {
	names := c.Store.Names()
	query = strings.TrimSpace(query)
	if query == "" {
		return names
	}
	ranks := fuzzy.RankFindNormalizedFold(query, names)
	sort.Stable(ranks)
	out := make([]string, len(ranks))
	for i, r := range ranks {
		out[i] = r.Target
	}
	return out
}

// Suggest returns the name closest to input when it is near enough to be a
// likely typo.
func Suggest(names []string, input string) (string, bool) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return "", false
	}
	limit := len(input) / 3
	if limit < 2 {
		limit = 2
	}
	best, bestDist := "", limit+1
	for _, name := range names {
		d := levenshtein.ComputeDistance(input, strings.ToLower(name))
		if d < bestDist {
			best, bestDist = name, d
		}
	}
	return best, best != ""
}
