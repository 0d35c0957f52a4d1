package lead

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/leadlist/internal/logging"
	"github.com/JonMunkholm/leadlist/internal/storage"
)

// Store owns the canonical collection of lead records.
//
// The collection is kept in insertion order and written in full to the
// backing document after every mutation. A mutation whose write fails is
// not applied. Store is safe for concurrent use; mutations are serialized.
type Store struct {
	doc storage.Document

	mu      sync.RWMutex
	records []Record
	index   map[string]int

	now   func() time.Time
	newID func() string

	// scratch stores are previews and do not write audit entries
	scratch bool
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides how new record ids are generated.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// Open loads the collection from doc. A document that has never been
// written yields an empty store.
func Open(ctx context.Context, doc storage.Document, opts ...Option) (*Store, error) {
	s := &Store{
		doc:   doc,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}

	data, err := doc.Read(ctx)
	if err != nil {
		return nil, &PersistenceError{Op: OpRead, Err: err}
	}

	var records []Record
	if len(data) > 0 {
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, &PersistenceError{Op: OpRead, Err: fmt.Errorf("decode document: %w", err)}
		}
	}

	s.records = s.normalizeLoaded(ctx, records)
	s.reindex()

	logging.FromContext(ctx).Debug("lead store opened", "records", len(s.records))
	return s, nil
}

// normalizeLoaded coerces enums and repairs missing or repeated ids so the
// in-memory invariants hold for documents written by older versions.
func (s *Store) normalizeLoaded(ctx context.Context, records []Record) []Record {
	seen := make(map[string]struct{}, len(records))
	for i := range records {
		r := &records[i]
		r.Status = ParseStatus(string(r.Status))
		r.ProspectLevel = ParseProspectLevel(string(r.ProspectLevel))

		if _, dup := seen[r.ID]; r.ID == "" || dup {
			old := r.ID
			r.ID = s.uniqueID(seen)
			logging.FromContext(ctx).Warn("reassigned lead id on load",
				"old_id", old, "new_id", r.ID, "company", r.CompanyName)
		}
		seen[r.ID] = struct{}{}
	}
	return records
}

func (s *Store) uniqueID(taken map[string]struct{}) string {
	for {
		id := s.newID()
		if _, ok := taken[id]; !ok {
			return id
		}
	}
}

func (s *Store) reindex() {
	s.index = make(map[string]int, len(s.records))
	for i, r := range s.records {
		s.index[r.ID] = i
	}
}

// commit writes next to the document and, only if that succeeds, makes it
// the current collection. Caller must hold the write lock.
func (s *Store) commit(ctx context.Context, next []Record) error {
	if next == nil {
		next = []Record{}
	}
	data, err := json.Marshal(next)
	if err != nil {
		return &PersistenceError{Op: OpWrite, Err: fmt.Errorf("encode document: %w", err)}
	}
	if err := s.doc.Write(ctx, data); err != nil {
		return &PersistenceError{Op: OpWrite, Err: err}
	}
	s.records = next
	s.reindex()
	return nil
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// List returns a copy of all records in insertion order.
func (s *Store) List() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.records)
}

// Get returns the record with the given id.
func (s *Store) Get(id string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[id]
	if !ok {
		return Record{}, fmt.Errorf("get %s: %w", id, ErrNotFound)
	}
	return s.records[i], nil
}

// Create validates f, assigns a new id and timestamps, and appends the
// resulting record.
func (s *Store) Create(ctx context.Context, f Fields) (Record, error) {
	if err := f.Validate(); err != nil {
		return Record{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.createLocked(ctx, f)
	if err != nil {
		return Record{}, err
	}
	s.audit(ctx, ActionCreate, rec)
	return rec, nil
}

// CreateUnlessDuplicate creates a record from f unless it duplicates an
// existing one. The check and the insert happen under one lock. When a
// duplicate is found the matching existing record is returned with
// created=false.
func (s *Store) CreateUnlessDuplicate(ctx context.Context, f Fields) (rec Record, created bool, err error) {
	if err := f.Validate(); err != nil {
		return Record{}, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, rule := DuplicateOf(f, s.records); rule != RuleNone {
		logging.FromContext(ctx).Debug("duplicate lead skipped",
			"company", f.CompanyName, "matches", existing.ID, "rule", rule.String())
		return existing, false, nil
	}

	rec, err = s.createLocked(ctx, f)
	if err != nil {
		return Record{}, false, err
	}
	s.audit(ctx, ActionCreate, rec)
	return rec, true, nil
}

func (s *Store) createLocked(ctx context.Context, f Fields) (Record, error) {
	id := s.newID()
	for {
		if _, taken := s.index[id]; !taken {
			break
		}
		id = s.newID()
	}

	rec := newRecord(id, f, s.now())
	next := make([]Record, len(s.records), len(s.records)+1)
	copy(next, s.records)
	next = append(next, rec)

	if err := s.commit(ctx, next); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Update merges p into the record with the given id.
// An unknown id returns an error wrapping ErrNotFound.
func (s *Store) Update(ctx context.Context, id string, p Patch) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return Record{}, fmt.Errorf("update %s: %w", id, ErrNotFound)
	}

	rec := p.apply(s.records[i])
	if err := rec.Fields().Validate(); err != nil {
		return Record{}, err
	}
	rec.UpdatedAt = s.now()
	if rec.UpdatedAt.Before(rec.CreatedAt) {
		rec.UpdatedAt = rec.CreatedAt
	}

	next := slices.Clone(s.records)
	next[i] = rec
	if err := s.commit(ctx, next); err != nil {
		return Record{}, err
	}

	s.audit(ctx, ActionUpdate, rec)
	return rec, nil
}

// Delete removes the record with the given id. Deleting an id that does
// not exist is a no-op and does not touch storage.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return nil
	}

	removed := s.records[i]
	next := make([]Record, 0, len(s.records)-1)
	next = append(next, s.records[:i]...)
	next = append(next, s.records[i+1:]...)
	if err := s.commit(ctx, next); err != nil {
		return err
	}

	s.audit(ctx, ActionDelete, removed)
	return nil
}

// Scratch returns an independent store holding a copy of the current
// records, backed by memory. Mutations on it never reach s's document.
func (s *Store) Scratch() *Store {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c := &Store{
		doc:     storage.NewMemory(nil),
		records: slices.Clone(s.records),
		now:     s.now,
		newID:   s.newID,
		scratch: true,
	}
	c.reindex()
	return c
}

func (s *Store) audit(ctx context.Context, action AuditAction, rec Record) {
	if s.scratch {
		return
	}
	LogAudit(ctx, action, rec)
}
