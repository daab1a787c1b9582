package util

import "github.com/lithammer/fuzzysearch/fuzzy"

// SuggestName returns the closest match to name among candidates, or "" if
// none of them are a plausible fuzzy match. Used by the compiler to turn an
// unknown connective or net name into a "did you mean" hint.
func SuggestName(name string, candidates []string) string {
	ranked := fuzzy.RankFindFold(name, candidates)
	if len(ranked) == 0 {
		return ""
	}
	best := ranked[0]
	for _, r := range ranked[1:] {
		if r.Distance < best.Distance {
			best = r
		}
	}
	return best.Target
}
