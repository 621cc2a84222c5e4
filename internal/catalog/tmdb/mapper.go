package tmdb

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mmcdole/reel/internal/domain"
)

// validate checks response shapes before they are mapped. Safe for
// concurrent use.
var validate = validator.New(validator.WithRequiredStructEnabled())

// checkShape validates a decoded payload and flattens validator output into
// a single error naming the first offending field.
func checkShape(v any) error {
	if err := validate.Struct(v); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid response shape: %s failed %q", fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("invalid response shape: %w", err)
	}
	return nil
}

// MapMovies converts list entries to domain movies, dropping repeated ids so
// a list never holds the same movie twice.
func MapMovies(dtos []movieDTO) []domain.Movie {
	movies := make([]domain.Movie, 0, len(dtos))
	seen := make(map[int]bool, len(dtos))
	for _, d := range dtos {
		if seen[d.ID] {
			continue
		}
		seen[d.ID] = true
		movies = append(movies, MapMovie(d))
	}
	return movies
}

// MapMovie converts a single list entry
func MapMovie(d movieDTO) domain.Movie {
	genres := d.GenreIDs
	if genres == nil {
		genres = []int{}
	}
	return domain.Movie{
		ID:           d.ID,
		Title:        d.Title,
		PosterPath:   deref(d.PosterPath),
		BackdropPath: deref(d.BackdropPath),
		ReleaseDate:  d.ReleaseDate,
		VoteAverage:  d.VoteAverage,
		Overview:     d.Overview,
		GenreIDs:     append([]int(nil), genres...),
	}
}

// MapDetail converts the detail payload. Genre ids are derived from the
// named genres since the detail endpoint does not send genre_ids.
func MapDetail(d detailDTO) *domain.MovieDetail {
	detail := &domain.MovieDetail{
		Movie: domain.Movie{
			ID:           d.ID,
			Title:        d.Title,
			PosterPath:   deref(d.PosterPath),
			BackdropPath: deref(d.BackdropPath),
			ReleaseDate:  d.ReleaseDate,
			VoteAverage:  d.VoteAverage,
			Overview:     d.Overview,
			GenreIDs:     make([]int, 0, len(d.Genres)),
		},
		Genres:   make([]domain.Genre, 0, len(d.Genres)),
		Tagline:  strings.TrimSpace(d.Tagline),
		Homepage: strings.TrimSpace(d.Homepage),
	}

	for _, g := range d.Genres {
		detail.GenreIDs = append(detail.GenreIDs, g.ID)
		detail.Genres = append(detail.Genres, domain.Genre{ID: g.ID, Name: g.Name})
	}

	if d.Runtime != nil && *d.Runtime > 0 {
		rt := *d.Runtime
		detail.Runtime = &rt
	}

	if d.Videos != nil {
		for _, v := range d.Videos.Results {
			detail.Videos = append(detail.Videos, domain.Video{
				Key:  v.Key,
				Name: v.Name,
				Site: v.Site,
				Type: v.Type,
			})
		}
	}

	if d.Credits != nil {
		for _, c := range d.Credits.Cast {
			detail.Cast = append(detail.Cast, domain.CastMember{
				ID:          c.ID,
				Name:        c.Name,
				Character:   c.Character,
				ProfilePath: deref(c.ProfilePath),
			})
		}
		for _, c := range d.Credits.Crew {
			detail.Crew = append(detail.Crew, domain.CrewMember{
				ID:   c.ID,
				Name: c.Name,
				Job:  c.Job,
			})
		}
	}

	return detail
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
