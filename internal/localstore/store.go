// Package localstore persists guest diagnosis history on local disk,
// one JSON document per device and template, mirroring the
// diagnosisHistory_<templateId> key layout the legacy clients used.
// Writes are read-then-write per key with last-write-wins semantics;
// this is a single-user convenience store, not a multi-writer one.
package localstore

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"diagnosis-service/internal/apperr"
	"diagnosis-service/internal/models"
)

var safeID = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

type Store struct {
	dir string
	mu  sync.Mutex
}

func New(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) keyPath(deviceID, templateID string) (string, error) {
	if !safeID.MatchString(deviceID) || !safeID.MatchString(templateID) {
		return "", apperr.Validation("invalid_id", "device or template id is not storable")
	}
	return filepath.Join(s.dir, deviceID, "diagnosisHistory_"+templateID+".json"), nil
}

// History returns the stored attempts for one device and template,
// newest first. A missing key is an empty history, not an error.
func (s *Store) History(deviceID, templateID string) ([]models.Attempt, error) {
	path, err := s.keyPath(deviceID, templateID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Persistence("local_read_failed", err)
	}
	var attempts []models.Attempt
	if err := json.Unmarshal(data, &attempts); err != nil {
		return nil, apperr.Persistence("local_corrupt", err)
	}
	return attempts, nil
}

// Prepend inserts an attempt at the head of the stored sequence,
// keeping newest-first order. There is no size cap; display limits are
// the caller's concern.
func (s *Store) Prepend(deviceID, templateID string, attempt models.Attempt) error {
	path, err := s.keyPath(deviceID, templateID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var attempts []models.Attempt
	if data, err := os.ReadFile(path); err == nil {
		// A corrupt existing document is replaced rather than blocking
		// the new record.
		_ = json.Unmarshal(data, &attempts)
	}
	attempts = append([]models.Attempt{attempt}, attempts...)

	data, err := json.Marshal(attempts)
	if err != nil {
		return apperr.Persistence("local_encode_failed", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return apperr.Persistence("local_write_failed", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return apperr.Persistence("local_write_failed", err)
	}
	return nil
}
