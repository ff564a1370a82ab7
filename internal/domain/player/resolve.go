package player

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

const (
	DefaultSuggestionLimit = 5
	DefaultMinScore        = 70

	// partialWeight discounts matches that only align some tokens, so a
	// surname-only query never outranks a full-name near miss.
	partialWeight = 0.9
)

// Suggestion is a ranked candidate with a similarity score in [0, 100].
type Suggestion struct {
	Player Player
	Score  int
}

type ResolveOptions struct {
	Limit    int
	MinScore int
}

func DefaultResolveOptions() ResolveOptions {
	return ResolveOptions{Limit: DefaultSuggestionLimit, MinScore: DefaultMinScore}
}

func (o ResolveOptions) normalized() ResolveOptions {
	if o.Limit <= 0 {
		o.Limit = DefaultSuggestionLimit
	}
	if o.MinScore <= 0 || o.MinScore > 100 {
		o.MinScore = DefaultMinScore
	}
	return o
}

// Resolve finds query among candidates. An exact normalized match is
// returned as best with no suggestions. Otherwise best is nil and up to
// opts.Limit suggestions scoring at least opts.MinScore are returned,
// highest score first and pool order breaking ties.
func Resolve(query string, candidates []Player, opts ResolveOptions) (*Player, []Suggestion) {
	opts = opts.normalized()
	q := Normalize(query)
	if q == "" || len(candidates) == 0 {
		return nil, nil
	}

	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = Normalize(c.Name)
		if names[i] == q {
			best := candidates[i].Clone()
			return &best, nil
		}
	}

	queryTokens := strings.Fields(q)
	scored := make([]Suggestion, 0, len(candidates))
	for i, c := range candidates {
		if names[i] == "" {
			continue
		}
		score := Similarity(q, queryTokens, names[i])
		if score < opts.MinScore {
			continue
		}
		scored = append(scored, Suggestion{Player: c, Score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > opts.Limit {
		scored = scored[:opts.Limit]
	}
	for i := range scored {
		scored[i].Player = scored[i].Player.Clone()
	}
	return nil, scored
}

// Similarity scores two normalized names as the best of the full-string
// ratio, the token-sorted ratio and the discounted token alignment.
func Similarity(query string, queryTokens []string, candidate string) int {
	candidateTokens := strings.Fields(candidate)

	best := ratio(query, candidate)
	if s := ratio(sortedJoin(queryTokens), sortedJoin(candidateTokens)); s > best {
		best = s
	}
	if s := int(math.Round(float64(tokenAlignment(queryTokens, candidateTokens)) * partialWeight)); s > best {
		best = s
	}
	return best
}

func ratio(a, b string) int {
	longest := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > longest {
		longest = n
	}
	if longest == 0 {
		return 100
	}
	dist := levenshtein.ComputeDistance(a, b)
	return int(math.Round(100 * (1 - float64(dist)/float64(longest))))
}

// tokenAlignment averages, over query tokens, the best ratio each token
// reaches against any candidate token.
func tokenAlignment(queryTokens, candidateTokens []string) int {
	if len(queryTokens) == 0 || len(candidateTokens) == 0 {
		return 0
	}
	total := 0
	for _, qt := range queryTokens {
		best := 0
		for _, ct := range candidateTokens {
			if s := ratio(qt, ct); s > best {
				best = s
			}
		}
		total += best
	}
	return int(math.Round(float64(total) / float64(len(queryTokens))))
}

func sortedJoin(tokens []string) string {
	out := append([]string(nil), tokens...)
	sort.Strings(out)
	return strings.Join(out, " ")
}
