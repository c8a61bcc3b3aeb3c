// Package sqlite provides the public API for the SQLite logbook backend.
// This package exposes the factory function for creating SQLite backends
// while keeping implementation details internal.
package sqlite

import (
	"github.com/mesh-intelligence/yardstick/internal/sqlite"
	"github.com/mesh-intelligence/yardstick/pkg/types"
)

// NewBackend creates a new SQLite logbook instance.
// The backend is not attached; call Attach with a Config to initialize.
//
// Example:
//
//	logbook := sqlite.NewBackend()
//	err := logbook.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".yardstick-db",
//	})
//	defer logbook.Detach()
func NewBackend() types.Logbook {
	return sqlite.NewBackend()
}
