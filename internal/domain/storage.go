package domain

// Persisted keys. Each is read and written independently; there is no
// transaction spanning more than one key.
const (
	KeySession    = "session"     // JSON-encoded Session
	KeyFavorites  = "favorites"   // JSON array of Movie
	KeyLastSearch = "last_search" // raw query string
	KeyTheme      = "theme"       // "light" or "dark"
)

// PersistedKeys lists every key the application writes.
var PersistedKeys = []string{KeySession, KeyFavorites, KeyLastSearch, KeyTheme}
