package text

import (
	"strings"
	"testing"

	"github.com/kailas-cloud/restodex/internal/domain/search/filter"
)

func TestParse_Strategy(t *testing.T) {
	tests := []struct {
		in        string
		mode      Mode
		terms     int
		usesIndex bool
	}{
		{"", None, 0, false},
		{"   ", None, 0, false},
		{`""`, None, 0, false},
		{`"tacos al pastor"`, Phrase, 1, true},
		{"tacos al pastor", AllTerms, 3, false},
		{"  tacos   pastor ", AllTerms, 2, false},
		{"tacos", Relevance, 1, true},
		{`"tacos`, Relevance, 1, true},
		{`"tacos" "pastor"`, AllTerms, 2, false},
		{`"a "b" c"`, AllTerms, 3, false},
		{`""""`, None, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			s := Parse(tt.in)
			if s.Mode() != tt.mode {
				t.Errorf("Mode() = %q, want %q", s.Mode(), tt.mode)
			}
			if len(s.Terms()) != tt.terms {
				t.Errorf("Terms() = %q", s.Terms())
			}
			if s.UsesIndex() != tt.usesIndex {
				t.Errorf("UsesIndex() = %v", s.UsesIndex())
			}
		})
	}
}

func TestParse_PhraseKeepsInnerText(t *testing.T) {
	s := Parse(`"Tacos Al Pastor"`)
	if s.Phrase() != "Tacos Al Pastor" {
		t.Errorf("Phrase() = %q", s.Phrase())
	}
	if s.IndexQuery() != `"Tacos Al Pastor"` {
		t.Errorf("IndexQuery() = %q", s.IndexQuery())
	}
}

func TestParse_QuotesNeverReachIndexQuery(t *testing.T) {
	for _, in := range []string{`"tacos" "pastor"`, `"tacos`, `tacos"`, `"al "pastor"`} {
		s := Parse(in)
		for _, term := range s.Terms() {
			if strings.Contains(term, `"`) {
				t.Errorf("Parse(%q): term %q keeps a quote", in, term)
			}
		}
		if s.Mode() != Phrase && strings.Contains(s.IndexQuery(), `"`) {
			t.Errorf("Parse(%q): IndexQuery() = %q", in, s.IndexQuery())
		}
	}
}

func TestPredicates_AllTermsIsConjunctionOfFieldOr(t *testing.T) {
	s := Parse("sushi omakase roma")
	preds := s.Predicates()
	if len(preds) != 3 {
		t.Fatalf("expected one predicate per token, got %d", len(preds))
	}
	for i, p := range preds {
		if p.Kind() != filter.KindAnyContains {
			t.Errorf("pred %d kind = %v", i, p.Kind())
		}
		if len(p.Fields()) != len(Fields) {
			t.Errorf("pred %d fields = %v", i, p.Fields())
		}
	}
	if preds[2].Text() != "roma" {
		t.Errorf("Text() = %q", preds[2].Text())
	}
}

func TestPredicates_InactiveIsEmpty(t *testing.T) {
	if Parse("").Predicates() != nil {
		t.Error("expected no predicates")
	}
}

func TestModeIsValid(t *testing.T) {
	for _, m := range []Mode{None, Phrase, AllTerms, Relevance} {
		if !m.IsValid() {
			t.Errorf("%q.IsValid() = false", m)
		}
	}
	if Mode("semantic").IsValid() {
		t.Error("unexpected valid mode")
	}
}
