package tmdb

// listResponse is the envelope of the trending and search endpoints.
// Only the first page is read.
type listResponse struct {
	Page         int        `json:"page"`
	Results      []movieDTO `json:"results" validate:"required,dive"`
	TotalPages   int        `json:"total_pages,omitempty"`
	TotalResults int        `json:"total_results,omitempty"`
}

// movieDTO is a list entry
type movieDTO struct {
	ID           int     `json:"id" validate:"gt=0"`
	Title        string  `json:"title" validate:"required"`
	PosterPath   *string `json:"poster_path"`
	BackdropPath *string `json:"backdrop_path"`
	ReleaseDate  string  `json:"release_date"`
	VoteAverage  float64 `json:"vote_average" validate:"gte=0,lte=10"`
	Overview     string  `json:"overview"`
	GenreIDs     []int   `json:"genre_ids"`
	Adult        bool    `json:"adult,omitempty"`
	Popularity   float64 `json:"popularity,omitempty"`
}

// detailDTO is the /movie/{id} payload with videos and credits appended
type detailDTO struct {
	ID           int         `json:"id" validate:"gt=0"`
	Title        string      `json:"title" validate:"required"`
	PosterPath   *string     `json:"poster_path"`
	BackdropPath *string     `json:"backdrop_path"`
	ReleaseDate  string      `json:"release_date"`
	VoteAverage  float64     `json:"vote_average" validate:"gte=0,lte=10"`
	Overview     string      `json:"overview"`
	Genres       []genreDTO  `json:"genres" validate:"dive"`
	Runtime      *int        `json:"runtime" validate:"omitempty,gte=0"`
	Tagline      string      `json:"tagline"`
	Homepage     string      `json:"homepage"`
	Videos       *videosDTO  `json:"videos"`
	Credits      *creditsDTO `json:"credits"`
}

type genreDTO struct {
	ID   int    `json:"id" validate:"gt=0"`
	Name string `json:"name" validate:"required"`
}

type videosDTO struct {
	Results []videoDTO `json:"results" validate:"dive"`
}

type videoDTO struct {
	ID   string `json:"id"`
	Key  string `json:"key" validate:"required"`
	Name string `json:"name"`
	Site string `json:"site"`
	Type string `json:"type"`
}

type creditsDTO struct {
	Cast []castDTO `json:"cast" validate:"dive"`
	Crew []crewDTO `json:"crew" validate:"dive"`
}

type castDTO struct {
	ID          int     `json:"id" validate:"gt=0"`
	Name        string  `json:"name" validate:"required"`
	Character   string  `json:"character"`
	ProfilePath *string `json:"profile_path"`
	Order       int     `json:"order"`
}

type crewDTO struct {
	ID   int    `json:"id" validate:"gt=0"`
	Name string `json:"name" validate:"required"`
	Job  string `json:"job"`
}
