package database

// DataStore defines the unified interface for all board data operations.
// Consumers can depend on the smaller interfaces (e.g., ListRepository)
// where they need less.
type DataStore interface {
	BoardRepository
	ListRepository
	ItemRepository
}

// Compile-time verification that *Repository implements DataStore
var _ DataStore = (*Repository)(nil)
