// Package text chooses the free-text strategy for a query string.
package text

import (
	"strings"

	"github.com/kailas-cloud/restodex/internal/domain/restaurant"
	"github.com/kailas-cloud/restodex/internal/domain/search/filter"
)

// Mode is the text search strategy.
type Mode string

// Text strategies.
const (
	// None means no free-text clause.
	None Mode = ""
	// Phrase is a quoted, case-insensitive exact phrase against the text index.
	Phrase Mode = "phrase"
	// AllTerms requires every token to appear in at least one searchable field.
	AllTerms Mode = "all_terms"
	// Relevance is a single token ranked by the store's text score.
	Relevance Mode = "relevance"
)

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == None || m == Phrase || m == AllTerms || m == Relevance
}

// Fields are matched by substring in AllTerms mode, and when a text-index
// strategy has to be degraded.
var Fields = []string{
	restaurant.FieldName,
	restaurant.FieldDescription,
	restaurant.FieldCategory,
	restaurant.FieldCuisineType,
}

// Search is a parsed free-text query.
type Search struct {
	mode  Mode
	raw   string
	terms []string
}

// Parse picks exactly one strategy for q.
func Parse(q string) Search {
	q = strings.TrimSpace(q)
	if q == "" {
		return Search{}
	}

	if len(q) >= 2 && strings.HasPrefix(q, `"`) && strings.HasSuffix(q, `"`) {
		inner := q[1 : len(q)-1]
		if !strings.Contains(inner, `"`) {
			phrase := strings.TrimSpace(inner)
			if phrase == "" {
				return Search{}
			}
			return Search{mode: Phrase, raw: q, terms: []string{phrase}}
		}
	}

	// Stray or multiple quotes never reach the text index.
	terms := strings.Fields(strings.ReplaceAll(q, `"`, " "))
	if len(terms) == 0 {
		return Search{}
	}
	if len(terms) > 1 {
		return Search{mode: AllTerms, raw: q, terms: terms}
	}
	return Search{mode: Relevance, raw: q, terms: terms}
}

// Mode returns the chosen strategy.
func (s Search) Mode() Mode { return s.mode }

// Raw returns the trimmed query as received.
func (s Search) Raw() string { return s.raw }

// IsActive reports whether any text clause applies.
func (s Search) IsActive() bool { return s.mode != None }

// UsesIndex reports whether the strategy relies on the store's text index.
func (s Search) UsesIndex() bool { return s.mode == Phrase || s.mode == Relevance }

// Phrase returns the unquoted phrase in Phrase mode.
func (s Search) Phrase() string {
	if s.mode != Phrase {
		return ""
	}
	return s.terms[0]
}

// Terms returns a copy of the whitespace-separated tokens.
func (s Search) Terms() []string {
	out := make([]string, len(s.terms))
	copy(out, s.terms)
	return out
}

// IndexQuery renders the query for the store's text index: phrases keep
// their quotes.
func (s Search) IndexQuery() string {
	switch s.mode {
	case Phrase:
		return `"` + s.terms[0] + `"`
	case Relevance:
		return s.terms[0]
	default:
		return ""
	}
}

// Predicates returns the substring form of the search: one field-OR
// predicate per token, joined by AND. Phrase and Relevance produce a single
// predicate, which is how they run when the text index cannot be used.
func (s Search) Predicates() []filter.Predicate {
	if !s.IsActive() {
		return nil
	}
	out := make([]filter.Predicate, 0, len(s.terms))
	for _, t := range s.terms {
		out = append(out, filter.AnyContains(t, Fields...))
	}
	return out
}
