// Package profile drives the record lifecycle: a built schema is flattened
// into a blob and saved; a stored blob is reconstructed into an editable
// schema, re-validated, and updated in place.
package profile

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/priyankjain/shopform/internal/form"
	"github.com/priyankjain/shopform/internal/store"
	"github.com/priyankjain/shopform/pkg/fault"
)

// Service orchestrates the form engine against the record store. It does
// not retry: a store failure surfaces once, at operation granularity, and
// callers serialize writes per record.
type Service struct {
	records store.RecordStore
	log     zerolog.Logger
}

func NewService(records store.RecordStore, log zerolog.Logger) *Service {
	return &Service{records: records, log: log}
}

// Submit validates the whole schema, encodes it, and saves a new record for
// the owner. Validation failures block the save and are reported per field;
// no partial writes occur.
func (s *Service) Submit(ctx context.Context, ownerID int64, b *form.Builder) (int64, error) {
	if err := validateAll(b); err != nil {
		return 0, err
	}

	blob, err := form.Encode(b.Fields())
	if err != nil {
		return 0, fault.NewInternalError("encoding record", err)
	}

	id, err := s.records.Save(ctx, ownerID, blob)
	if err != nil {
		return 0, fault.NewInternalError("saving record", err)
	}
	b.MarkPersisted()

	s.log.Info().Int64("record_id", id).Int64("owner_id", ownerID).
		Int("fields", len(b.Fields())).Msg("profile record saved")
	return id, nil
}

// LoadForEdit reconstructs an editable schema from a stored record. A blob
// that cannot be decoded fails with fault.ErrCorruptRecord; the record
// itself is left untouched.
func (s *Service) LoadForEdit(ctx context.Context, id int64) (*form.Builder, error) {
	rec, err := s.records.LoadByID(ctx, id)
	if err != nil {
		return nil, err
	}
	b, err := form.Decode(rec.Blob)
	if err != nil {
		s.log.Warn().Int64("record_id", id).Msg("record blob is corrupt")
		return nil, err
	}
	return b, nil
}

// Update re-validates the edited schema and replaces the record's blob,
// keeping the same id. Fails with fault.ErrNotFound when the record is gone.
func (s *Service) Update(ctx context.Context, id int64, b *form.Builder) error {
	if err := validateAll(b); err != nil {
		return err
	}

	blob, err := form.Encode(b.Fields())
	if err != nil {
		return fault.NewInternalError("encoding record", err)
	}

	if err := s.records.Update(ctx, id, blob); err != nil {
		return err
	}
	b.MarkPersisted()

	s.log.Info().Int64("record_id", id).Msg("profile record updated")
	return nil
}

// ListByOwner returns the owner's records, blobs included.
func (s *Service) ListByOwner(ctx context.Context, ownerID int64) ([]store.Record, error) {
	return s.records.LoadByOwner(ctx, ownerID)
}

// validateAll runs the validator over every field and collects one message
// per offending field.
func validateAll(b *form.Builder) error {
	failures := map[string]string{}
	for _, f := range b.Fields() {
		if msg := form.Validate(f); msg != "" {
			f.Error = msg
			failures[f.Label] = msg
		}
	}
	if len(failures) > 0 {
		return &fault.ValidationError{Fields: failures}
	}
	return nil
}
