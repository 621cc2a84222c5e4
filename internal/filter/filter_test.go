package filter

import (
	"reflect"
	"testing"
	"time"

	"github.com/mmcdole/reel/internal/domain"
)

func ptr[T any](v T) *T { return &v }

func sample() []domain.Movie {
	return []domain.Movie{
		{ID: 1, Title: "One", ReleaseDate: "2024-02-01", VoteAverage: 8.1, GenreIDs: []int{28, 12}},
		{ID: 2, Title: "Two", ReleaseDate: "2023-07-14", VoteAverage: 6.4, GenreIDs: []int{18}},
		{ID: 3, Title: "Three", ReleaseDate: "", VoteAverage: 7.0, GenreIDs: []int{28}},
		{ID: 4, Title: "Four", ReleaseDate: "2024-11-30", VoteAverage: 5.0, GenreIDs: nil},
	}
}

func ids(movies []domain.Movie) []int {
	out := make([]int, 0, len(movies))
	for _, m := range movies {
		out = append(out, m.ID)
	}
	return out
}

func TestApply_GenreExample(t *testing.T) {
	list := []domain.Movie{
		{ID: 1, GenreIDs: []int{28}},
		{ID: 2, GenreIDs: []int{18}},
	}
	got := Apply(list, domain.FilterSelection{Genre: ptr(28)})
	if !reflect.DeepEqual(ids(got), []int{1}) {
		t.Fatalf("Apply = %v, want [1]", ids(got))
	}
}

func TestApply_Criteria(t *testing.T) {
	tests := []struct {
		name string
		sel  domain.FilterSelection
		want []int
	}{
		{"empty selection", domain.FilterSelection{}, []int{1, 2, 3, 4}},
		{"genre", domain.FilterSelection{Genre: ptr(28)}, []int{1, 3}},
		{"year", domain.FilterSelection{Year: ptr("2024")}, []int{1, 4}},
		{"rating is inclusive", domain.FilterSelection{MinRating: ptr(7.0)}, []int{1, 3}},
		{"zero rating keeps all", domain.FilterSelection{MinRating: ptr(0.0)}, []int{1, 2, 3, 4}},
		{"all criteria", domain.FilterSelection{Genre: ptr(28), Year: ptr("2024"), MinRating: ptr(8.0)}, []int{1}},
		{"no match", domain.FilterSelection{Genre: ptr(99)}, []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(sample(), tt.sel)
			if !reflect.DeepEqual(ids(got), tt.want) {
				t.Fatalf("Apply = %v, want %v", ids(got), tt.want)
			}
		})
	}
}

func TestApply_Idempotent(t *testing.T) {
	sels := []domain.FilterSelection{
		{},
		{Genre: ptr(28)},
		{Year: ptr("2024"), MinRating: ptr(6.0)},
	}
	for _, sel := range sels {
		once := Apply(sample(), sel)
		twice := Apply(once, sel)
		if !reflect.DeepEqual(once, twice) {
			t.Fatalf("Apply not idempotent for %+v: %v vs %v", sel, ids(once), ids(twice))
		}
	}
}

func TestApply_EmptySelectionIsNoOp(t *testing.T) {
	list := sample()
	if got := Apply(list, domain.FilterSelection{}); !reflect.DeepEqual(got, list) {
		t.Fatalf("Apply with empty selection changed the list: %v", ids(got))
	}
	if Apply(nil, domain.FilterSelection{}) != nil {
		t.Fatal("Apply(nil) should be nil")
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	list := sample()
	before := sample()

	got := Apply(list, domain.FilterSelection{Genre: ptr(28)})
	got[0].GenreIDs[0] = 0
	got[0].Title = "changed"

	if !reflect.DeepEqual(list, before) {
		t.Fatal("Apply result aliases its input")
	}
}

func TestCounts(t *testing.T) {
	shown, total := Counts(sample(), domain.FilterSelection{Genre: ptr(28)})
	if shown != 2 || total != 4 {
		t.Fatalf("Counts = %d of %d, want 2 of 4", shown, total)
	}
}

func TestYears(t *testing.T) {
	years := Years(time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC))
	if len(years) != 37 || years[0] != "2026" || years[len(years)-1] != "1990" {
		t.Fatalf("Years = %v", years)
	}
}

func TestGenreNames(t *testing.T) {
	if GenreName(878) != "Science Fiction" || GenreName(1) != "" {
		t.Fatal("GenreName lookup mismatch")
	}
	if got := GenreNames([]int{28, 1, 18}); !reflect.DeepEqual(got, []string{"Action", "Drama"}) {
		t.Fatalf("GenreNames = %v", got)
	}
	for _, g := range Genres {
		if GenreName(g.ID) != g.Name {
			t.Errorf("Genres entry %d %q disagrees with GenreName", g.ID, g.Name)
		}
	}
}

func TestRatingLabel(t *testing.T) {
	if RatingLabel(0) != "All Ratings" || RatingLabel(7) != "7+ Stars" {
		t.Fatalf("RatingLabel = %q, %q", RatingLabel(0), RatingLabel(7))
	}
}

func TestNextGenreCyclesAndWraps(t *testing.T) {
	var sel domain.FilterSelection
	seen := 0
	for {
		sel = sel.Merge(NextGenre(sel))
		if sel.Genre == nil {
			break
		}
		seen++
		if seen > len(Genres) {
			t.Fatal("NextGenre never wrapped")
		}
	}
	if seen != len(Genres) {
		t.Fatalf("visited %d genres, want %d", seen, len(Genres))
	}
}

func TestNextRatingSkipsZero(t *testing.T) {
	var got []float64
	var sel domain.FilterSelection
	for i := 0; i < 5; i++ {
		sel = sel.Merge(NextRating(sel))
		if sel.MinRating == nil {
			break
		}
		got = append(got, *sel.MinRating)
	}
	if !reflect.DeepEqual(got, []float64{8, 7, 6, 5}) {
		t.Fatalf("rating cycle = %v", got)
	}
}

func TestNextYearStartsAtCurrentYear(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	sel := domain.FilterSelection{}.Merge(NextYear(domain.FilterSelection{}, now))
	if sel.Year == nil || *sel.Year != "2026" {
		t.Fatalf("first year = %v", sel.Year)
	}
	sel = sel.Merge(NextYear(sel, now))
	if *sel.Year != "2025" {
		t.Fatalf("second year = %q", *sel.Year)
	}
	last := domain.FilterSelection{Year: ptr("1990")}
	if next := last.Merge(NextYear(last, now)); next.Year != nil {
		t.Fatalf("year after 1990 = %q, want absent", *next.Year)
	}
}
