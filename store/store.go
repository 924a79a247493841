package store

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// Store is a path-keyed document store. Paths are slash-separated the way
// the mobile clients address user state, e.g.
// users/{uid}/medicine_reminders/{date}/{id}. No transactions are
// assumed; a read-modify-write over one user's subtree is last-writer-wins.
type Store interface {
	// Get reads the document at path into dest. Returns false when the
	// path holds nothing.
	Get(ctx context.Context, path string, dest any) (bool, error)
	Set(ctx context.Context, path string, value any) error
	Delete(ctx context.Context, path string) error
	// List returns the direct child segments under a prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)
}

// ErrDecode wraps documents that exist but cannot be decoded into the
// expected shape. Callers substitute defaults for these instead of
// failing the request.
var ErrDecode = errors.New("malformed stored document")

// Open selects the backend from STORE_BACKEND: "sqlite" for the local
// database, anything else for Supabase.
func Open() (Store, error) {
	switch os.Getenv("STORE_BACKEND") {
	case "sqlite":
		path := os.Getenv("SQLITE_PATH")
		if path == "" {
			path = "data/care-companion.db"
		}
		return NewSQLite(path)
	case "", "supabase":
		return NewSupabase()
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", os.Getenv("STORE_BACKEND"))
	}
}
