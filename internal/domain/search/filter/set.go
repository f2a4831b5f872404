package filter

// Set is an immutable, ordered conjunction of predicates.
type Set struct {
	preds []Predicate
}

// NewSet builds a set from predicates.
func NewSet(preds ...Predicate) Set {
	return Set{}.With(preds...)
}

// With returns a new set with preds appended. The receiver is not modified.
func (s Set) With(preds ...Predicate) Set {
	if len(preds) == 0 {
		return s
	}
	out := make([]Predicate, 0, len(s.preds)+len(preds))
	out = append(out, s.preds...)
	out = append(out, preds...)
	return Set{preds: out}
}

// Predicates returns a copy of the predicates in compilation order.
func (s Set) Predicates() []Predicate {
	out := make([]Predicate, len(s.preds))
	copy(out, s.preds)
	return out
}

// Len returns the number of predicates.
func (s Set) Len() int { return len(s.preds) }

// IsEmpty reports whether the set has no predicates.
func (s Set) IsEmpty() bool { return len(s.preds) == 0 }

// Applied renders the set keyed by field. Multi-field substring terms are
// collected under "text_terms".
func (s Set) Applied() map[string]any {
	out := make(map[string]any, len(s.preds))
	var terms []any
	for _, p := range s.preds {
		if p.kind == KindAnyContains {
			terms = append(terms, p.Describe())
			continue
		}
		out[p.Field()] = p.Describe()
	}
	if len(terms) > 0 {
		out["text_terms"] = terms
	}
	return out
}
