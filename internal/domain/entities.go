package domain

import (
	"fmt"
	"strings"
)

// Movie is a catalog entry as returned by list endpoints (trending, search).
// JSON names follow the catalog's snake_case so persisted favorites keep the
// same shape as the API payload.
type Movie struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	PosterPath   string  `json:"poster_path,omitempty"`   // empty when the catalog has no poster
	BackdropPath string  `json:"backdrop_path,omitempty"` // empty when the catalog has no backdrop
	ReleaseDate  string  `json:"release_date"`            // ISO date or empty
	VoteAverage  float64 `json:"vote_average"`            // 0-10
	Overview     string  `json:"overview"`
	GenreIDs     []int   `json:"genre_ids"`
}

// Year returns the 4-digit year prefix of the release date, or "" when the
// release date is missing or malformed.
func (m Movie) Year() string {
	if len(m.ReleaseDate) < 4 {
		return ""
	}
	year := m.ReleaseDate[:4]
	for _, r := range year {
		if r < '0' || r > '9' {
			return ""
		}
	}
	return year
}

// HasGenre reports whether the movie is tagged with the genre id.
func (m Movie) HasGenre(id int) bool {
	for _, g := range m.GenreIDs {
		if g == id {
			return true
		}
	}
	return false
}

// FormattedRating returns the vote average with one decimal, e.g. "7.4".
func (m Movie) FormattedRating() string {
	return fmt.Sprintf("%.1f", m.VoteAverage)
}

// Clone returns a copy that shares no slices with m.
func (m Movie) Clone() Movie {
	c := m
	if m.GenreIDs != nil {
		c.GenreIDs = append([]int(nil), m.GenreIDs...)
	}
	return c
}

// Genre is a named catalog genre.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Video is a trailer, teaser or clip attached to a movie.
type Video struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site"` // "YouTube", "Vimeo"
	Type string `json:"type"` // "Trailer", "Teaser", "Clip"
}

// URL returns a watchable URL for known sites, or "".
func (v Video) URL() string {
	switch strings.ToLower(v.Site) {
	case "youtube":
		return "https://www.youtube.com/watch?v=" + v.Key
	case "vimeo":
		return "https://vimeo.com/" + v.Key
	default:
		return ""
	}
}

// CastMember is one billed actor.
type CastMember struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path,omitempty"`
}

// CrewMember is one credited crew member.
type CrewMember struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Job  string `json:"job"`
}

// MovieDetail is the full record for the detail screen. It is fetched lazily
// and never merged back into the list caches.
type MovieDetail struct {
	Movie

	Genres   []Genre      `json:"genres"`
	Runtime  *int         `json:"runtime,omitempty"` // minutes; nil when unknown
	Tagline  string       `json:"tagline,omitempty"`
	Homepage string       `json:"homepage,omitempty"`
	Videos   []Video      `json:"videos"`
	Cast     []CastMember `json:"cast"`
	Crew     []CrewMember `json:"crew"`
}

// Trailer returns the first YouTube trailer, falling back to any YouTube
// video. ok is false when nothing is watchable.
func (d MovieDetail) Trailer() (Video, bool) {
	var fallback *Video
	for i := range d.Videos {
		v := d.Videos[i]
		if !strings.EqualFold(v.Site, "youtube") {
			continue
		}
		if v.Type == "Trailer" {
			return v, true
		}
		if fallback == nil {
			fallback = &d.Videos[i]
		}
	}
	if fallback != nil {
		return *fallback, true
	}
	return Video{}, false
}

// Directors returns the names of crew members credited as Director.
func (d MovieDetail) Directors() []string {
	var names []string
	for _, c := range d.Crew {
		if c.Job == "Director" {
			names = append(names, c.Name)
		}
	}
	return names
}

// GenreNames returns the genre names in catalog order.
func (d MovieDetail) GenreNames() []string {
	names := make([]string, 0, len(d.Genres))
	for _, g := range d.Genres {
		names = append(names, g.Name)
	}
	return names
}

// FormattedRuntime returns the runtime as "2h 5m", or "" when unknown.
func (d MovieDetail) FormattedRuntime() string {
	if d.Runtime == nil || *d.Runtime <= 0 {
		return ""
	}
	h := *d.Runtime / 60
	mins := *d.Runtime % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, mins)
	}
	return fmt.Sprintf("%dm", mins)
}

// Session is the single active client session. Its absence means logged out.
type Session struct {
	Username      string `json:"username"`
	Authenticated bool   `json:"isAuthenticated"`
}

// CloneMovies copies a movie slice, preserving nil.
func CloneMovies(movies []Movie) []Movie {
	if movies == nil {
		return nil
	}
	out := make([]Movie, len(movies))
	for i, m := range movies {
		out[i] = m.Clone()
	}
	return out
}
