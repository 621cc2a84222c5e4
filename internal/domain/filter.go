package domain

// FilterSelection narrows an already fetched list. Nil fields are absent.
// Fields combine with logical AND. Not persisted.
type FilterSelection struct {
	Genre     *int
	Year      *string // 4-digit year
	MinRating *float64
}

// IsEmpty reports whether no criterion is set.
func (s FilterSelection) IsEmpty() bool {
	return s.Genre == nil && s.Year == nil && s.MinRating == nil
}

// Active reports whether the selection narrows anything worth showing as a
// filter. A minimum rating of 0 is "all ratings".
func (s FilterSelection) Active() bool {
	return s.Genre != nil || s.Year != nil || (s.MinRating != nil && *s.MinRating > 0)
}

// Clone returns a selection that shares no pointers with s.
func (s FilterSelection) Clone() FilterSelection {
	var c FilterSelection
	if s.Genre != nil {
		g := *s.Genre
		c.Genre = &g
	}
	if s.Year != nil {
		y := *s.Year
		c.Year = &y
	}
	if s.MinRating != nil {
		r := *s.MinRating
		c.MinRating = &r
	}
	return c
}

// FieldOp says what a FilterPatch does to one field.
type FieldOp int

const (
	Keep FieldOp = iota
	Set
	Clear
)

// FilterPatch is a partial selection merged into the current one.
type FilterPatch struct {
	GenreOp     FieldOp
	Genre       int
	YearOp      FieldOp
	Year        string
	MinRatingOp FieldOp
	MinRating   float64
}

// WithGenre sets the genre criterion.
func (p FilterPatch) WithGenre(id int) FilterPatch {
	p.GenreOp, p.Genre = Set, id
	return p
}

// WithoutGenre clears the genre criterion.
func (p FilterPatch) WithoutGenre() FilterPatch {
	p.GenreOp = Clear
	return p
}

// WithYear sets the year criterion.
func (p FilterPatch) WithYear(year string) FilterPatch {
	p.YearOp, p.Year = Set, year
	return p
}

// WithoutYear clears the year criterion.
func (p FilterPatch) WithoutYear() FilterPatch {
	p.YearOp = Clear
	return p
}

// WithMinRating sets the minimum rating criterion.
func (p FilterPatch) WithMinRating(r float64) FilterPatch {
	p.MinRatingOp, p.MinRating = Set, r
	return p
}

// WithoutMinRating clears the minimum rating criterion.
func (p FilterPatch) WithoutMinRating() FilterPatch {
	p.MinRatingOp = Clear
	return p
}

// Merge applies the patch to s and returns the result; s is not modified.
func (s FilterSelection) Merge(p FilterPatch) FilterSelection {
	out := s.Clone()
	switch p.GenreOp {
	case Set:
		g := p.Genre
		out.Genre = &g
	case Clear:
		out.Genre = nil
	}
	switch p.YearOp {
	case Set:
		y := p.Year
		out.Year = &y
	case Clear:
		out.Year = nil
	}
	switch p.MinRatingOp {
	case Set:
		r := p.MinRating
		out.MinRating = &r
	case Clear:
		out.MinRating = nil
	}
	return out
}
