package domain

// StoreName identifies which store emitted a change.
type StoreName string

const (
	StoreSession StoreName = "session"
	StoreCatalog StoreName = "catalog"
	StoreTheme   StoreName = "theme"
)

// Change describes a state mutation. Observers re-read snapshots; the change
// itself carries no state.
type Change struct {
	Store  StoreName
	Action string // e.g. "login", "trending_loaded", "favorite_toggled"
}

// StateObserver receives change notifications from the stores.
type StateObserver interface {
	OnChange(change Change)
}

// NoOpObserver discards notifications (for testing/batch operations).
type NoOpObserver struct{}

func (NoOpObserver) OnChange(Change) {}

// ObserverFunc adapts a function to StateObserver.
type ObserverFunc func(Change)

func (f ObserverFunc) OnChange(c Change) { f(c) }
