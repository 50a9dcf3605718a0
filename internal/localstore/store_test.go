package localstore

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"diagnosis-service/internal/apperr"
	"diagnosis-service/internal/models"
)

func TestHistoryRoundTrip(t *testing.T) {
	s := New(t.TempDir())

	first := models.Attempt{ID: "local-1", TemplateID: "baseline", Score: 40, CreatedAt: time.Now().Add(-time.Hour)}
	second := models.Attempt{ID: "local-2", TemplateID: "baseline", Score: 55, CreatedAt: time.Now()}

	if err := s.Prepend("device-1", "baseline", first); err != nil {
		t.Fatalf("Prepend: %v", err)
	}
	if err := s.Prepend("device-1", "baseline", second); err != nil {
		t.Fatalf("Prepend: %v", err)
	}

	attempts, err := s.History("device-1", "baseline")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(attempts) != 2 {
		t.Fatalf("expected 2 attempts, got %d", len(attempts))
	}
	if attempts[0].ID != "local-2" {
		t.Errorf("newest attempt not first: %v", attempts[0].ID)
	}
}

func TestHistoryMissingKeyIsEmpty(t *testing.T) {
	s := New(t.TempDir())
	attempts, err := s.History("device-1", "baseline")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(attempts) != 0 {
		t.Errorf("expected empty history, got %d", len(attempts))
	}
}

func TestHistoryKeysAreIsolated(t *testing.T) {
	s := New(t.TempDir())
	s.Prepend("device-1", "baseline", models.Attempt{ID: "a"})
	s.Prepend("device-1", "marriage", models.Attempt{ID: "b"})
	s.Prepend("device-2", "baseline", models.Attempt{ID: "c"})

	attempts, _ := s.History("device-1", "baseline")
	if len(attempts) != 1 || attempts[0].ID != "a" {
		t.Errorf("cross-key leak: %+v", attempts)
	}
}

func TestCorruptDocument(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	path := filepath.Join(dir, "device-1", "diagnosisHistory_baseline.json")
	os.MkdirAll(filepath.Dir(path), 0o755)
	os.WriteFile(path, []byte("{not json"), 0o644)

	if _, err := s.History("device-1", "baseline"); !apperr.IsPersistence(err) {
		t.Fatalf("expected PersistenceError for corrupt document, got %v", err)
	}

	// A new record replaces the corrupt document instead of failing.
	if err := s.Prepend("device-1", "baseline", models.Attempt{ID: "fresh"}); err != nil {
		t.Fatalf("Prepend over corrupt document: %v", err)
	}
	attempts, err := s.History("device-1", "baseline")
	if err != nil || len(attempts) != 1 {
		t.Fatalf("recovery failed: %v %v", attempts, err)
	}
}

func TestRejectsUnsafeIDs(t *testing.T) {
	s := New(t.TempDir())
	if _, err := s.History("../escape", "baseline"); !apperr.IsValidation(err) {
		t.Errorf("path traversal device id accepted")
	}
	if err := s.Prepend("device-1", "a/b", models.Attempt{}); !apperr.IsValidation(err) {
		t.Errorf("path traversal template id accepted")
	}
}
