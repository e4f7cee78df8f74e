// Package store is the persistence gateway: plain SQL over an injected
// *sql.DB handle. Services reach the database only through these methods.
package store

import (
	"database/sql"
	"time"
)

// Store wraps the database handle. Construct one in the process entry point
// and pass it to each service.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// nullTime converts a scanned nullable timestamp to a pointer.
func nullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

// timeArg converts an optional time to a driver-friendly value.
func timeArg(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}
