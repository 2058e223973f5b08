package universe

import (
	"sort"
	"strings"
)

// Search filters results by a case-insensitive query and ranks them. A match
// in the title weighs more than one in the description, which weighs more
// than one in the URL; ties break on relevance. An empty query returns
// every result ordered by relevance.
func Search(results []Result, query string) []Result {
	terms := strings.Fields(strings.ToLower(query))

	type scored struct {
		Result
		score float64
	}
	var hits []scored
	for _, r := range results {
		score := matchScore(r, terms)
		if len(terms) > 0 && score == 0 {
			continue
		}
		hits = append(hits, scored{Result: r, score: score})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return hits[i].Relevance > hits[j].Relevance
	})

	out := make([]Result, len(hits))
	for i, h := range hits {
		out[i] = h.Result
	}
	return out
}

// matchScore requires every term to appear somewhere in r
func matchScore(r Result, terms []string) float64 {
	title := strings.ToLower(r.Title)
	desc := strings.ToLower(r.Description)
	url := strings.ToLower(r.URL)

	total := 0.0
	for _, t := range terms {
		s := 0.0
		if strings.Contains(title, t) {
			s += 3
		}
		if strings.Contains(desc, t) {
			s += 2
		}
		if strings.Contains(url, t) {
			s++
		}
		if s == 0 {
			return 0
		}
		total += s
	}
	return total
}
