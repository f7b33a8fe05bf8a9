package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"solverpro/internal/models"
	"solverpro/internal/storage"
)

var ErrDuplicateID = errors.New("problem id already exists")

// PersistenceReadError describes durable data that could not be loaded.
// Load recovers from it locally; it is only ever logged.
type PersistenceReadError struct {
	Key string
	Err error
}

func (e *PersistenceReadError) Error() string {
	return "failed to read problems from key " + e.Key + ": " + e.Err.Error()
}

func (e *PersistenceReadError) Unwrap() error {
	return e.Err
}

// Mutator returns the replacement for a record.
type Mutator func(models.ProblemRecord) models.ProblemRecord

// ProblemStore owns the ordered problem collection, most recent first.
// Every mutation rewrites the full collection under one key.
type ProblemStore struct {
	kv      storage.KeyValue
	key     string
	logger  *zap.Logger
	mu      sync.Mutex
	records []models.ProblemRecord
}

func NewProblemStore(kv storage.KeyValue, key string, logger *zap.Logger) *ProblemStore {
	return &ProblemStore{
		kv:     kv,
		key:    key,
		logger: logger,
	}
}

// Load rehydrates the collection from durable storage. Absent or malformed
// data yields an empty collection.
func (s *ProblemStore) Load(ctx context.Context) []models.ProblemRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.read(ctx)
	if err != nil {
		var readErr *PersistenceReadError
		if errors.As(err, &readErr) && errors.Is(readErr.Err, storage.ErrKeyNotFound) {
			s.logger.Info("No stored problems found, starting empty", zap.String("key", s.key))
		} else {
			s.logger.Warn("Failed to load problems, starting empty", zap.Error(err))
		}
		records = nil
	}

	s.records = records
	return cloneAll(s.records)
}

func (s *ProblemStore) read(ctx context.Context) ([]models.ProblemRecord, error) {
	data, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return nil, &PersistenceReadError{Key: s.key, Err: err}
	}
	var records []models.ProblemRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &PersistenceReadError{Key: s.key, Err: err}
	}
	return records, nil
}

// Snapshot returns a copy of the current collection.
func (s *ProblemStore) Snapshot() []models.ProblemRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(s.records)
}

// Get returns a copy of the record with the given id.
func (s *ProblemStore) Get(id string) (models.ProblemRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return s.records[i].Clone(), true
	}
	return models.ProblemRecord{}, false
}

// Create puts record at the front of the collection and persists.
func (s *ProblemStore) Create(ctx context.Context, record models.ProblemRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(record.ID) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateID, record.ID)
	}

	next := make([]models.ProblemRecord, 0, len(s.records)+1)
	next = append(next, record.Clone())
	next = append(next, s.records...)

	return s.commit(ctx, next)
}

// Update replaces the record matching id with mutator(current). It reports
// false, and writes nothing, when no record matches.
func (s *ProblemStore) Update(ctx context.Context, id string, mutator Mutator) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		s.logger.Debug("Update skipped, problem not found", zap.String("problem_id", id))
		return false, nil
	}

	updated := mutator(s.records[i].Clone())
	updated.ID = id

	next := make([]models.ProblemRecord, len(s.records))
	copy(next, s.records)
	next[i] = updated

	if err := s.commit(ctx, next); err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes the record matching id, if any.
func (s *ProblemStore) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		s.logger.Debug("Delete skipped, problem not found", zap.String("problem_id", id))
		return false, nil
	}

	next := make([]models.ProblemRecord, 0, len(s.records)-1)
	next = append(next, s.records[:i]...)
	next = append(next, s.records[i+1:]...)

	if err := s.commit(ctx, next); err != nil {
		return false, err
	}
	return true, nil
}

// commit persists next and only then makes it the current collection.
func (s *ProblemStore) commit(ctx context.Context, next []models.ProblemRecord) error {
	if err := s.persist(ctx, next); err != nil {
		s.logger.Error("Failed to persist problems", zap.Error(err), zap.String("key", s.key))
		return err
	}
	s.records = next
	return nil
}

func (s *ProblemStore) persist(ctx context.Context, records []models.ProblemRecord) error {
	if records == nil {
		records = []models.ProblemRecord{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode problems: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("failed to write problems: %w", err)
	}
	return nil
}

func (s *ProblemStore) indexOf(id string) int {
	for i := range s.records {
		if s.records[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneAll(records []models.ProblemRecord) []models.ProblemRecord {
	out := make([]models.ProblemRecord, len(records))
	for i, record := range records {
		out[i] = record.Clone()
	}
	return out
}
