package service

import (
	"context"
	"sync"
	"time"

	"diagnosis-service/internal/apperr"
	"diagnosis-service/internal/catalog"
	"diagnosis-service/internal/flow"
	"diagnosis-service/internal/models"
	"diagnosis-service/internal/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// SessionService drives questionnaire sessions: it persists the flow
// state machine, gates single-completion templates, and serializes
// submissions so one session can never record two attempts.
type SessionService struct {
	Repo    *repository.SessionRepository
	History *HistoryService

	inflight sync.Map // session id -> struct{} while a submission runs
}

func NewSessionService(repo *repository.SessionRepository, history *HistoryService) *SessionService {
	return &SessionService{Repo: repo, History: history}
}

// SubmitResult is what a completed session hands back to the result
// view.
type SubmitResult struct {
	Attempt *models.Attempt `json:"attempt"`
	Message string          `json:"message"`
	Warning string          `json:"warning,omitempty"`
}

// Start opens a session at question 0. Single-completion templates are
// refused while a prior attempt exists.
func (s *SessionService) Start(ctx context.Context, auth AuthContext, templateID string) (*models.Session, error) {
	tpl, err := catalog.Get(templateID)
	if err != nil {
		return nil, err
	}
	// Guests run the legacy direct-submit flow; interactive sessions
	// are for signed-in users only.
	if !auth.Authenticated() {
		return nil, apperr.Validation("login_required", "sessions require a signed-in user")
	}
	if tpl.SingleCompletion {
		done, err := s.History.HasCompleted(ctx, auth, templateID)
		if err != nil {
			return nil, err
		}
		if done {
			return nil, apperr.Validation("already_completed",
				"the %s diagnosis can only be taken once", tpl.Title)
		}
	}
	session := &models.Session{
		UserID:       auth.UserID,
		TemplateID:   templateID,
		SessionToken: uuid.NewString(),
		State:        string(flow.StateAwaitingAnswer),
		Answers:      []float64{},
		StartTime:    time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Answer records one answer. Accepting the final answer moves the
// session into submission and, on success, completes it with the
// recorded attempt. A persistence failure leaves the session on the
// last question with every answer intact.
func (s *SessionService) Answer(ctx context.Context, auth AuthContext, sessionID string, value float64) (*flow.AnswerOutcome, *SubmitResult, error) {
	session, fs, err := s.load(ctx, auth, sessionID)
	if err != nil {
		return nil, nil, err
	}
	outcome, err := fs.Answer(value)
	if err != nil {
		return nil, nil, err
	}
	if !outcome.ReadyToSubmit {
		if err := s.persistState(ctx, session.ID, fs); err != nil {
			return nil, nil, err
		}
		return outcome, nil, nil
	}
	result, err := s.submit(ctx, auth, session, fs)
	if err != nil {
		return outcome, nil, err
	}
	return outcome, result, nil
}

// Resubmit retries submission after a failure, from the last question
// with the already collected answers.
func (s *SessionService) Resubmit(ctx context.Context, auth AuthContext, sessionID string) (*SubmitResult, error) {
	session, fs, err := s.load(ctx, auth, sessionID)
	if err != nil {
		return nil, err
	}
	if _, err := fs.Resubmit(); err != nil {
		return nil, err
	}
	return s.submit(ctx, auth, session, fs)
}

// Status returns the persisted session for the status endpoint.
func (s *SessionService) Status(ctx context.Context, auth AuthContext, sessionID string) (*models.Session, error) {
	session, _, err := s.load(ctx, auth, sessionID)
	if err != nil {
		return nil, err
	}
	return session, nil
}

// submit scores the session and records the attempt exactly once.
// Duplicate submissions for a session already in flight are rejected;
// the network result of the first one wins.
func (s *SessionService) submit(ctx context.Context, auth AuthContext, session *models.Session, fs *flow.Session) (*SubmitResult, error) {
	if _, loaded := s.inflight.LoadOrStore(session.ID, struct{}{}); loaded {
		return nil, apperr.Validation("submit_in_progress", "a submission for this session is already running")
	}
	defer s.inflight.Delete(session.ID)

	token, err := fs.BeginSubmit()
	if err != nil {
		return nil, err
	}
	score, message, err := fs.Score()
	if err != nil {
		return nil, err
	}
	attempt := &models.Attempt{
		TemplateID: session.TemplateID,
		ResultType: fs.Template.Title,
		Score:      score,
		Answers:    fs.Answers,
		Message:    message,
	}
	warning, err := s.History.RecordAttempt(ctx, auth, attempt)
	if err != nil {
		// Keep the user on the last question for a retry; the stale
		// guard drops this failure if the session has moved on.
		if !fs.FailSubmit(token) {
			_ = s.persistState(ctx, session.ID, fs)
		}
		return nil, err
	}
	if fs.CompleteSubmit(token) {
		// A competing submission already resolved this session; its
		// record stands and this one is discarded.
		return nil, apperr.Validation("submit_superseded", "the session already completed")
	}
	update := bson.M{
		"state":          string(fs.State),
		"question_index": fs.QuestionIndex,
		"answers":        fs.Answers,
		"end_time":       time.Now().UTC(),
		"attempt_id":     attempt.ID,
	}
	if err := s.Repo.Update(ctx, session.ID, update); err != nil {
		return nil, err
	}
	return &SubmitResult{Attempt: attempt, Message: message, Warning: warning}, nil
}

func (s *SessionService) load(ctx context.Context, auth AuthContext, sessionID string) (*models.Session, *flow.Session, error) {
	session, err := s.Repo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if session.UserID != auth.UserID {
		return nil, nil, apperr.NotFound("session_not_found", "no session %q", sessionID)
	}
	tpl, err := catalog.Get(session.TemplateID)
	if err != nil {
		return nil, nil, err
	}
	fs := flow.Rehydrate(tpl, flow.State(session.State), session.QuestionIndex, session.Answers)
	return session, fs, nil
}

func (s *SessionService) persistState(ctx context.Context, sessionID string, fs *flow.Session) error {
	return s.Repo.Update(ctx, sessionID, bson.M{
		"state":          string(fs.State),
		"question_index": fs.QuestionIndex,
		"answers":        fs.Answers,
	})
}
