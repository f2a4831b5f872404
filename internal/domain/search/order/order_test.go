package order

import (
	"testing"

	"github.com/kailas-cloud/restodex/internal/domain/restaurant"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name  string
		by    string
		dir   string
		avail Availability
		want  []string
	}{
		{"default", "", "", Availability{}, []string{"name:asc"}},
		{"name desc", "name", "desc", Availability{}, []string{"name:desc"}},
		{"rating default desc", "rating", "", Availability{}, []string{"rating:desc", "name:asc"}},
		{"rating asc", "rating", "asc", Availability{}, []string{"rating:asc", "name:asc"}},
		{"price alias", "price", "", Availability{}, []string{"avg_cost_per_person:asc", "name:asc"}},
		{"reviews alias", "reviews", "", Availability{}, []string{"total_reviews:desc", "name:asc"}},
		{"unknown", "password", "desc", Availability{}, []string{"name:asc"}},
		{"distance without geo", "distance", "", Availability{}, []string{"name:asc"}},
		{"distance with geo", "distance", "", Availability{Distance: true}, []string{"distance:asc", "name:asc"}},
		{"relevance without index", "relevance", "", Availability{Distance: true}, []string{"name:asc"}},
		{"relevance", "relevance", "", Availability{Relevance: true}, []string{"text_score:desc", "name:asc"}},
		{"case-insensitive", " Rating ", "DESC", Availability{}, []string{"rating:desc", "name:asc"}},
		{"bogus order keeps default", "created_at", "sideways", Availability{}, []string{"created_at:desc", "name:asc"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.by, tt.dir, tt.avail).Describe()
			if len(got) != len(tt.want) {
				t.Fatalf("Resolve = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Resolve[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestBy_AddsTieBreak(t *testing.T) {
	s := By(restaurant.FieldRating, Desc)
	if len(s) != 2 || s[1].Field != restaurant.FieldName {
		t.Errorf("By = %v", s.Describe())
	}
	if p := Spec(nil).Primary(); p.Field != restaurant.FieldName || p.Dir != Asc {
		t.Errorf("empty Primary = %+v", p)
	}
}
