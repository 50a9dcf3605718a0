package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"diagnosis-service/internal/apperr"
	"diagnosis-service/internal/catalog"
	"diagnosis-service/internal/localstore"
	"diagnosis-service/internal/models"
)

// AuthContext identifies the caller: an account-linked user, or an
// anonymous device running one of the legacy flows.
type AuthContext struct {
	UserID   string
	DeviceID string
}

func (a AuthContext) Authenticated() bool { return a.UserID != "" }

// AttemptStore is the server-side history backend, implemented by
// repository.AttemptRepository.
type AttemptStore interface {
	Insert(ctx context.Context, attempt *models.Attempt) error
	FindByUser(ctx context.Context, userID string) ([]models.Attempt, error)
	FindByUserAndTemplate(ctx context.Context, userID, templateID string) ([]models.Attempt, error)
	LatestByUser(ctx context.Context, userID string) (*models.Attempt, error)
}

// HistoryService is the single seam in front of the two persistence
// paths: MongoDB for authenticated users, the device-local store for
// guests. Server records are authoritative; local records are never
// uploaded.
type HistoryService struct {
	Attempts AttemptStore
	Local    *localstore.Store
}

func NewHistoryService(attempts AttemptStore, local *localstore.Store) *HistoryService {
	return &HistoryService{Attempts: attempts, Local: local}
}

// GetHistory returns the caller's attempts for one template, newest
// first.
func (s *HistoryService) GetHistory(ctx context.Context, auth AuthContext, templateID string) ([]models.Attempt, error) {
	if _, err := catalog.Get(templateID); err != nil {
		return nil, err
	}
	if auth.Authenticated() {
		return s.Attempts.FindByUserAndTemplate(ctx, auth.UserID, templateID)
	}
	if auth.DeviceID == "" {
		return nil, apperr.Validation("missing_identity", "a user or device id is required")
	}
	attempts, err := s.Local.History(auth.DeviceID, templateID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(attempts, func(i, j int) bool {
		return attempts[i].CreatedAt.After(attempts[j].CreatedAt)
	})
	return attempts, nil
}

// RecordAttempt persists a completed attempt, assigning id and
// timestamp when absent. For guests a local write failure does not
// fail the call: the score was already computed, so the attempt is
// returned with a warning instead.
func (s *HistoryService) RecordAttempt(ctx context.Context, auth AuthContext, attempt *models.Attempt) (warning string, err error) {
	tpl, err := catalog.Get(attempt.TemplateID)
	if err != nil {
		return "", err
	}
	if attempt.CreatedAt.IsZero() {
		attempt.CreatedAt = time.Now().UTC()
	}

	if auth.Authenticated() {
		attempt.UserID = auth.UserID
		attempt.DeviceID = ""
		return "", s.Attempts.Insert(ctx, attempt)
	}

	if auth.DeviceID == "" {
		return "", apperr.Validation("missing_identity", "a user or device id is required")
	}
	if !tpl.GuestAllowed {
		return "", apperr.Validation("login_required", "template %q requires a signed-in user", tpl.ID)
	}
	attempt.DeviceID = auth.DeviceID
	if attempt.ID == "" {
		attempt.ID = fmt.Sprintf("local-%d", attempt.CreatedAt.UnixMilli())
	}
	if err := s.Local.Prepend(auth.DeviceID, attempt.TemplateID, *attempt); err != nil {
		log.Printf("local history write failed for device %s: %v", auth.DeviceID, err)
		return "history could not be saved on this device", nil
	}
	return "", nil
}

// LatestAttempt returns the caller's newest attempt across templates,
// or a NotFound error.
func (s *HistoryService) LatestAttempt(ctx context.Context, auth AuthContext) (*models.Attempt, error) {
	if auth.Authenticated() {
		return s.Attempts.LatestByUser(ctx, auth.UserID)
	}
	if auth.DeviceID == "" {
		return nil, apperr.Validation("missing_identity", "a user or device id is required")
	}
	var latest *models.Attempt
	for _, tpl := range catalog.All() {
		if !tpl.GuestAllowed {
			continue
		}
		attempts, err := s.Local.History(auth.DeviceID, tpl.ID)
		if err != nil {
			continue
		}
		for i := range attempts {
			if latest == nil || attempts[i].CreatedAt.After(latest.CreatedAt) {
				latest = &attempts[i]
			}
		}
	}
	if latest == nil {
		return nil, apperr.NotFound("attempt_not_found", "no attempts for device")
	}
	return latest, nil
}

// FullHistory returns every attempt of an authenticated user, newest
// first, for the my-history endpoint.
func (s *HistoryService) FullHistory(ctx context.Context, auth AuthContext) ([]models.Attempt, error) {
	if !auth.Authenticated() {
		return nil, apperr.Validation("login_required", "history across templates requires a signed-in user")
	}
	return s.Attempts.FindByUser(ctx, auth.UserID)
}

// HasCompleted reports whether the caller already has an attempt for
// the template, the gate behind single-completion diagnoses.
func (s *HistoryService) HasCompleted(ctx context.Context, auth AuthContext, templateID string) (bool, error) {
	attempts, err := s.GetHistory(ctx, auth, templateID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return len(attempts) > 0, nil
}
