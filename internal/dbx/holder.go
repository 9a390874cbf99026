package dbx

import (
	"database/sql"
	"sync/atomic"
)

// Holder hands out the process-wide database handle. The handle is absent
// until a DSN is configured — on a fresh deployment that happens midway
// through the install wizard — and is only ever replaced, never removed,
// so lock-free reads are safe.
type Holder struct {
	db atomic.Pointer[sql.DB]
}

// Get returns the current handle, or nil when no database is attached yet.
func (h *Holder) Get() *sql.DB {
	return h.db.Load()
}

// Set attaches (or replaces) the database handle.
func (h *Holder) Set(db *sql.DB) {
	h.db.Store(db)
}
