package filter

import (
	"time"

	"github.com/mmcdole/reel/internal/domain"
)

// The Next* helpers step one criterion through its option table and wrap
// back to "absent" after the last option. They return a patch that touches
// only that criterion.

// NextGenre advances the genre criterion.
func NextGenre(sel domain.FilterSelection) domain.FilterPatch {
	if sel.Genre == nil {
		return domain.FilterPatch{}.WithGenre(Genres[0].ID)
	}
	for i, g := range Genres {
		if g.ID == *sel.Genre && i+1 < len(Genres) {
			return domain.FilterPatch{}.WithGenre(Genres[i+1].ID)
		}
	}
	return domain.FilterPatch{}.WithoutGenre()
}

// NextYear advances the year criterion, newest year first.
func NextYear(sel domain.FilterSelection, now time.Time) domain.FilterPatch {
	years := Years(now)
	if len(years) == 0 {
		return domain.FilterPatch{}.WithoutYear()
	}
	if sel.Year == nil {
		return domain.FilterPatch{}.WithYear(years[0])
	}
	for i, y := range years {
		if y == *sel.Year && i+1 < len(years) {
			return domain.FilterPatch{}.WithYear(years[i+1])
		}
	}
	return domain.FilterPatch{}.WithoutYear()
}

// NextRating advances the minimum rating criterion. The 0 option is the
// same as absent, so it is skipped.
func NextRating(sel domain.FilterSelection) domain.FilterPatch {
	var choices []float64
	for _, r := range Ratings {
		if r > 0 {
			choices = append(choices, r)
		}
	}
	if sel.MinRating == nil || *sel.MinRating <= 0 {
		return domain.FilterPatch{}.WithMinRating(choices[0])
	}
	for i, r := range choices {
		if r == *sel.MinRating && i+1 < len(choices) {
			return domain.FilterPatch{}.WithMinRating(choices[i+1])
		}
	}
	return domain.FilterPatch{}.WithoutMinRating()
}
