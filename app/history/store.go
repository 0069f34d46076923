// Package history implements persistent ledger of generation jobs.
// The ledger keeps ordered job records and the total-created counter in memory
// and flushes them to a key-value backend on every mutation.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/iqcmaker/app/enums"
)

// keys are shared with the nexa web front end and must stay stable
const (
	HistoryKey = "nexa_iqc_history"
	TotalKey   = "nexa_iqc_total"
)

var (
	// ErrNotFound returned for updates of unknown record
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateID returned on attempt to append record with existing id
	ErrDuplicateID = errors.New("duplicate record id")
	// ErrTransition returned for status changes breaking pending -> succeeded|failed order
	ErrTransition = errors.New("invalid status transition")
	// ErrInvalidRecord returned on attempt to append record breaking record invariants
	ErrInvalidRecord = errors.New("invalid record")
	// ErrNotLoaded returned by mutations after failed Load, persisted values are left untouched
	ErrNotLoaded = errors.New("history not loaded")
)

// KV is a durable key-value backend. Get returns nil value for missing key.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Store is the ledger. It exclusively owns the records, callers get copies only.
type Store struct {
	kv           KV
	legacyResult func(text string) string

	mu      sync.RWMutex
	records []Record
	total   int64
	loadErr error // set by failed Load, blocks writes till a successful one
}

// Option func type
type Option func(s *Store)

// WithLegacyResult sets the function restoring result address for succeeded records
// written by the nexa web front end, which didn't keep it
func WithLegacyResult(fn func(text string) string) Option {
	return func(s *Store) { s.legacyResult = fn }
}

// New makes empty ledger on top of kv. Call Load to read persisted state.
func New(kv KV, opts ...Option) *Store {
	res := &Store{kv: kv, records: []Record{}}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Load reads persisted records and counter. Missing values give empty ledger and zero counter,
// malformed values are dropped with a warning. Only backend failures are returned as errors,
// in this case the in-memory state is left empty and nothing is written back till the next
// successful Load, so readable but unreached values can't be overwritten.
func (s *Store) Load(ctx context.Context) (records []Record, total int64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records, s.total = []Record{}, 0

	data, err := s.kv.Get(ctx, HistoryKey)
	if err != nil {
		s.loadErr = fmt.Errorf("can't load history: %w", err)
		return nil, 0, s.loadErr
	}
	if recs, e := s.decodeRecords(data); e != nil {
		log.Printf("[WARN] history is corrupted and ignored, %v", e)
	} else {
		s.records = recs
	}

	data, err = s.kv.Get(ctx, TotalKey)
	if err != nil {
		s.records = []Record{}
		s.loadErr = fmt.Errorf("can't load total: %w", err)
		return nil, 0, s.loadErr
	}
	s.loadErr = nil
	if len(data) > 0 {
		n, e := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
		switch {
		case e != nil:
			log.Printf("[WARN] total counter %q is corrupted and reset, %v", string(data), e)
		case n < 0:
			log.Printf("[WARN] negative total counter %d reset", n)
		default:
			s.total = n
		}
	}

	log.Printf("[DEBUG] history loaded, %d records, total %d", len(s.records), s.total)
	return s.listLocked(), s.total, nil
}

func (s *Store) decodeRecords(data []byte) ([]Record, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return []Record{}, nil
	}
	var recs []Record
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(recs))
	for i := range recs {
		if recs[i].Status == enums.JobStatusSucceeded && recs[i].Result == "" && s.legacyResult != nil {
			recs[i].Result = s.legacyResult(recs[i].Text)
		}
		if err := recs[i].validate(); err != nil {
			return nil, err
		}
		if seen[recs[i].ID] {
			return nil, fmt.Errorf("%w %s", ErrDuplicateID, recs[i].ID)
		}
		seen[recs[i].ID] = true
	}
	if recs == nil {
		recs = []Record{}
	}
	return recs, nil
}

// Append adds pending record to the end of the ledger and persists the ledger
func (s *Store) Append(ctx context.Context, rec Record) error {
	if rec.Status != enums.JobStatusPending {
		return fmt.Errorf("%w: new record %s must be pending, got %q", ErrTransition, rec.ID, rec.Status)
	}
	if err := rec.validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexLocked(rec.ID) >= 0 {
		return fmt.Errorf("%w %s", ErrDuplicateID, rec.ID)
	}
	s.records = append(s.records, rec)
	return s.persistLocked(ctx)
}

// UpdateStatus moves pending record to terminal status and persists the ledger.
// Result must be set for succeeded status and empty for failed.
func (s *Store) UpdateStatus(ctx context.Context, id string, status enums.JobStatus, result string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	rec := s.records[idx]
	if rec.Terminal() {
		return fmt.Errorf("%w: record %s is already %s", ErrTransition, id, rec.Status)
	}
	rec.Status, rec.Result = status, result
	if !rec.Terminal() {
		return fmt.Errorf("%w: record %s can't move to %q", ErrTransition, id, status)
	}
	if err := rec.validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrTransition, err)
	}

	s.records[idx] = rec
	return s.persistLocked(ctx)
}

// Clear removes all records and their persisted value. Counter is not affected.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = []Record{}
	if s.loadErr != nil {
		return fmt.Errorf("%w: %v", ErrNotLoaded, s.loadErr)
	}
	if err := s.kv.Delete(ctx, HistoryKey); err != nil {
		return fmt.Errorf("can't delete history: %w", err)
	}
	return nil
}

// IncrementCounter adds one to total counter and persists it
func (s *Store) IncrementCounter(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.total++
	if s.loadErr != nil {
		return s.total, fmt.Errorf("%w: %v", ErrNotLoaded, s.loadErr)
	}
	if err := s.kv.Set(ctx, TotalKey, []byte(strconv.FormatInt(s.total, 10))); err != nil {
		return s.total, fmt.Errorf("can't save total: %w", err)
	}
	return s.total, nil
}

// List returns copy of all records in submission order
func (s *Store) List() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listLocked()
}

// Get returns record by id
func (s *Store) Get(id string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if idx := s.indexLocked(id); idx >= 0 {
		return s.records[idx], true
	}
	return Record{}, false
}

// Total returns total-created counter
func (s *Store) Total() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.total
}

func (s *Store) listLocked() []Record {
	res := make([]Record, len(s.records))
	copy(res, s.records)
	return res
}

func (s *Store) indexLocked(id string) int {
	for i := range s.records {
		if s.records[i].ID == id {
			return i
		}
	}
	return -1
}

// persistLocked rewrites the whole sequence
func (s *Store) persistLocked(ctx context.Context) error {
	if s.loadErr != nil {
		return fmt.Errorf("%w: %v", ErrNotLoaded, s.loadErr)
	}
	data, err := json.Marshal(s.records)
	if err != nil {
		return fmt.Errorf("can't marshal history: %w", err)
	}
	if err := s.kv.Set(ctx, HistoryKey, data); err != nil {
		return fmt.Errorf("can't save history: %w", err)
	}
	return nil
}
