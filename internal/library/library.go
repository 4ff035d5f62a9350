package library

import (
	"sync"

	"github.com/promptdeck/promptdeck/internal/domain"
)

// Library owns the ordered collection of saved prompt records in memory.
// It grows by append only; records are removed solely by explicit delete and
// never mutated after creation except for the IsFavorite flag.
//
// The collection is volatile. Durability, when enabled, is layered on top by
// the redis store and the snapshot scheduler; the Library never does I/O.
type Library struct {
	mu      sync.RWMutex
	records []domain.PromptRecord
	ids     map[string]bool // uniqueness guard
}

// New creates an empty library.
func New() *Library {
	return &Library{
		ids: make(map[string]bool),
	}
}

// Add appends a fully-formed record to the end of the collection.
// It returns a ValidationError when the record is invalid or its id
// already exists. The input is cloned; callers keep no aliases.
func (l *Library) Add(record domain.PromptRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.ids[record.ID] {
		return &domain.ValidationError{Field: "id", Reason: "already exists: " + record.ID}
	}

	l.records = append(l.records, record.Clone())
	l.ids[record.ID] = true
	return nil
}

// ToggleFavorite flips the IsFavorite flag on the record with the given id
// and returns the updated record. Returns a NotFoundError when the id is
// absent (unlike Delete, which is a silent no-op).
func (l *Library) ToggleFavorite(id string) (domain.PromptRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.records {
		if l.records[i].ID == id {
			l.records[i].IsFavorite = !l.records[i].IsFavorite
			return l.records[i].Clone(), nil
		}
	}
	return domain.PromptRecord{}, &domain.NotFoundError{ID: id}
}

// Delete removes the record with the given id. Idempotent: deleting an
// absent id is a no-op, so a double-submitted confirm dialog stays safe.
// Reports whether a record was actually removed.
func (l *Library) Delete(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.ids[id] {
		return false
	}

	for i := range l.records {
		if l.records[i].ID == id {
			l.records = append(l.records[:i], l.records[i+1:]...)
			break
		}
	}
	delete(l.ids, id)
	return true
}

// Snapshot returns a copy of the current collection in insertion order.
// Every record is cloned, so the query engine and persistence layer can
// never alias the library's internal state. The snapshot reflects all
// committed mutations and no partial ones.
func (l *Library) Snapshot() []domain.PromptRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]domain.PromptRecord, 0, len(l.records))
	for _, record := range l.records {
		out = append(out, record.Clone())
	}
	return out
}

// Len returns the number of records in the collection. The caller uses this
// to distinguish "library is empty" from "filters matched nothing".
func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.records)
}
