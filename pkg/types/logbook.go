package types

import "errors"

// Logbook stores the results of measurement operations. Callers attach to a
// backend, record and query entries, and detach when done.
type Logbook interface {
	// Attach connects the Logbook to the backend described by config.
	// Creates the DataDir if it does not exist. Returns ErrAlreadyAttached
	// if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls succeed.
	// After Detach, operations return ErrLogbookDetached.
	Detach() error

	// Record stores entry. When EntryID is empty a new UUID v7 is generated
	// and CreatedAt is set. Returns the ID used.
	Record(entry *Entry) (string, error)

	// Get retrieves the entry with the given ID.
	// Returns ErrNotFound if no entry exists with that ID.
	Get(id string) (*Entry, error)

	// Delete removes the entry with the given ID.
	// Returns ErrNotFound if no entry exists with that ID.
	Delete(id string) error

	// List returns entries matching filter, oldest first.
	List(filter EntryFilter) ([]*Entry, error)
}

// Logbook lifecycle errors.
var (
	ErrLogbookDetached = errors.New("logbook is detached")
	ErrAlreadyAttached = errors.New("logbook is already attached")
)

// Entry operation errors.
var (
	ErrNotFound     = errors.New("entry not found")
	ErrInvalidID    = errors.New("invalid entry ID")
	ErrInvalidEntry = errors.New("invalid entry")
)
