// Package filter narrows an already fetched movie list by genre, release year
// and minimum rating. Everything here is pure; callers own the inputs.
package filter

import (
	"strconv"
	"time"

	"github.com/mmcdole/reel/internal/domain"
)

// Apply keeps the movies matching every criterion in sel, in input order.
// The input slice is not modified. The result is a new slice, non-nil
// whenever movies is non-nil.
func Apply(movies []domain.Movie, sel domain.FilterSelection) []domain.Movie {
	if movies == nil {
		return nil
	}
	out := make([]domain.Movie, 0, len(movies))
	for _, m := range movies {
		if Matches(m, sel) {
			out = append(out, m.Clone())
		}
	}
	return out
}

// Matches reports whether m satisfies sel. Absent criteria always match.
func Matches(m domain.Movie, sel domain.FilterSelection) bool {
	if sel.Genre != nil && !m.HasGenre(*sel.Genre) {
		return false
	}
	// A movie without a release date has no year and so never matches one.
	if sel.Year != nil && m.Year() != *sel.Year {
		return false
	}
	if sel.MinRating != nil && m.VoteAverage < *sel.MinRating {
		return false
	}
	return true
}

// Counts returns how many of all pass sel, and the size of all, for the
// "Showing X of Y movies" line.
func Counts(all []domain.Movie, sel domain.FilterSelection) (shown, total int) {
	for _, m := range all {
		if Matches(m, sel) {
			shown++
		}
	}
	return shown, len(all)
}

// genreNames covers the full TMDB movie genre list.
var genreNames = map[int]string{
	28:    "Action",
	12:    "Adventure",
	16:    "Animation",
	35:    "Comedy",
	80:    "Crime",
	99:    "Documentary",
	18:    "Drama",
	10751: "Family",
	14:    "Fantasy",
	36:    "History",
	27:    "Horror",
	10402: "Music",
	9648:  "Mystery",
	10749: "Romance",
	878:   "Science Fiction",
	10770: "TV Movie",
	53:    "Thriller",
	10752: "War",
	37:    "Western",
}

// Genres are the genre choices offered in the filter bar, in display order.
var Genres = []domain.Genre{
	{ID: 28, Name: "Action"},
	{ID: 12, Name: "Adventure"},
	{ID: 16, Name: "Animation"},
	{ID: 35, Name: "Comedy"},
	{ID: 80, Name: "Crime"},
	{ID: 18, Name: "Drama"},
	{ID: 14, Name: "Fantasy"},
	{ID: 27, Name: "Horror"},
	{ID: 10749, Name: "Romance"},
	{ID: 878, Name: "Science Fiction"},
	{ID: 53, Name: "Thriller"},
}

// Ratings are the minimum-rating choices, highest first. 0 means all ratings.
var Ratings = []float64{8, 7, 6, 5, 0}

// oldestYear is the last year offered by Years.
const oldestYear = 1990

// GenreName returns the display name of a genre id, or "" if unknown.
func GenreName(id int) string {
	return genreNames[id]
}

// GenreNames maps ids to names, skipping unknown ids.
func GenreNames(ids []int) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if n := GenreName(id); n != "" {
			names = append(names, n)
		}
	}
	return names
}

// Years returns the year choices from now's year down to 1990.
func Years(now time.Time) []string {
	current := now.Year()
	if current < oldestYear {
		return nil
	}
	years := make([]string, 0, current-oldestYear+1)
	for y := current; y >= oldestYear; y-- {
		years = append(years, strconv.Itoa(y))
	}
	return years
}

// RatingLabel renders a minimum rating choice, e.g. "7+ Stars".
func RatingLabel(r float64) string {
	if r <= 0 {
		return "All Ratings"
	}
	return strconv.FormatFloat(r, 'f', -1, 64) + "+ Stars"
}
