package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"

	"github.com/priyankjain/shopform/pkg/fault"
)

// Record is one persisted profile record: an owner-scoped, opaque
// label→value blob. Records are created once and mutated in place; the blob
// is always replaced whole.
type Record struct {
	ID      int64  `db:"id" json:"id"`
	OwnerID int64  `db:"owner_id" json:"owner_id"`
	Blob    string `db:"blob" json:"blob"`
}

// RecordStore is the gateway the form engine persists through.
type RecordStore interface {
	// Save inserts a new record and returns its store-assigned id.
	Save(ctx context.Context, ownerID int64, blob string) (int64, error)

	// Update replaces the blob of an existing record. Fails with
	// fault.ErrNotFound when the id does not exist, leaving no mutation.
	Update(ctx context.Context, id int64, blob string) error

	// LoadByOwner returns all records owned by a user; empty slice if none.
	LoadByOwner(ctx context.Context, ownerID int64) ([]Record, error)

	// LoadByID returns one record, or fault.ErrNotFound.
	LoadByID(ctx context.Context, id int64) (*Record, error)
}

// SQLRecordStore implements RecordStore on the SQLite database.
type SQLRecordStore struct {
	db *sqlx.DB
}

func NewSQLRecordStore(db *sqlx.DB) *SQLRecordStore {
	return &SQLRecordStore{db: db}
}

func (s *SQLRecordStore) Save(ctx context.Context, ownerID int64, blob string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO profile_records (owner_id, blob) VALUES (?, ?)`, ownerID, blob)
	if err != nil {
		return 0, fmt.Errorf("saving record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading record id: %w", err)
	}
	return id, nil
}

func (s *SQLRecordStore) Update(ctx context.Context, id int64, blob string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE profile_records SET blob = ? WHERE id = ?`, blob, id)
	if err != nil {
		return fmt.Errorf("updating record %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating record %d: %w", id, err)
	}
	if n == 0 {
		return fault.ErrNotFound
	}
	return nil
}

func (s *SQLRecordStore) LoadByOwner(ctx context.Context, ownerID int64) ([]Record, error) {
	records := []Record{}
	err := s.db.SelectContext(ctx, &records,
		`SELECT id, owner_id, blob FROM profile_records WHERE owner_id = ? ORDER BY id`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("loading records for owner %d: %w", ownerID, err)
	}
	return records, nil
}

func (s *SQLRecordStore) LoadByID(ctx context.Context, id int64) (*Record, error) {
	var r Record
	err := s.db.GetContext(ctx, &r,
		`SELECT id, owner_id, blob FROM profile_records WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fault.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading record %d: %w", id, err)
	}
	return &r, nil
}

// MemoryRecordStore implements RecordStore with in-memory state. Intended
// for tests; no database required.
type MemoryRecordStore struct {
	mu      sync.RWMutex
	nextID  int64
	records map[int64]Record
}

func NewMemoryRecordStore() *MemoryRecordStore {
	return &MemoryRecordStore{records: make(map[int64]Record)}
}

func (s *MemoryRecordStore) Save(_ context.Context, ownerID int64, blob string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.records[s.nextID] = Record{ID: s.nextID, OwnerID: ownerID, Blob: blob}
	return s.nextID, nil
}

func (s *MemoryRecordStore) Update(_ context.Context, id int64, blob string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[id]
	if !ok {
		return fault.ErrNotFound
	}
	r.Blob = blob
	s.records[id] = r
	return nil
}

func (s *MemoryRecordStore) LoadByOwner(_ context.Context, ownerID int64) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []Record{}
	for id := int64(1); id <= s.nextID; id++ {
		if r, ok := s.records[id]; ok && r.OwnerID == ownerID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *MemoryRecordStore) LoadByID(_ context.Context, id int64) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[id]
	if !ok {
		return nil, fault.ErrNotFound
	}
	return &r, nil
}
