package flow

import (
	"testing"

	"diagnosis-service/internal/apperr"
	"diagnosis-service/internal/models"
)

func threeQuestionTemplate() *models.Template {
	opts := []models.Option{
		{Text: "a", Value: 1}, {Text: "b", Value: 3}, {Text: "c", Value: 5},
	}
	return &models.Template{
		ID:      "short",
		Scoring: models.ScoringNormalized,
		Questions: []models.Question{
			{ID: "q1", Kind: models.KindChoice, Options: opts},
			{ID: "q2", Kind: models.KindChoice, Options: opts},
			{ID: "q3", Kind: models.KindChoice, Options: opts},
		},
		Bands: []models.Band{
			{MinScore: 60, Message: "high"},
			{MinScore: 0, Message: "low"},
		},
	}
}

func TestNewSessionStartsAtQuestionZero(t *testing.T) {
	s := NewSession(threeQuestionTemplate())
	if s.State != StateAwaitingAnswer || s.QuestionIndex != 0 || len(s.Answers) != 0 {
		t.Fatalf("unexpected initial state: %+v", s)
	}
}

func TestAnswerAdvances(t *testing.T) {
	s := NewSession(threeQuestionTemplate())
	out, err := s.Answer(3)
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if out.QuestionIndex != 1 || out.ReadyToSubmit {
		t.Errorf("expected advance to question 1, got %+v", out)
	}
}

func TestRejectedAnswerDoesNotAdvance(t *testing.T) {
	s := NewSession(threeQuestionTemplate())
	_, err := s.Answer(2)
	if !apperr.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if s.QuestionIndex != 0 || len(s.Answers) != 0 {
		t.Errorf("state advanced on a rejected answer: %+v", s)
	}
}

func TestFinalAnswerMovesToSubmitting(t *testing.T) {
	s := NewSession(threeQuestionTemplate())
	for _, v := range []float64{1, 3} {
		if _, err := s.Answer(v); err != nil {
			t.Fatalf("Answer(%v): %v", v, err)
		}
	}
	out, err := s.Answer(5)
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if !out.ReadyToSubmit || s.State != StateSubmitting {
		t.Errorf("expected Submitting, got %+v", s)
	}
	if _, err := s.Answer(1); !apperr.IsValidation(err) {
		t.Errorf("answer accepted while submitting")
	}
}

func TestFailedSubmitKeepsAnswers(t *testing.T) {
	s := NewSession(threeQuestionTemplate())
	for _, v := range []float64{1, 3, 5} {
		if _, err := s.Answer(v); err != nil {
			t.Fatalf("Answer(%v): %v", v, err)
		}
	}
	token, err := s.BeginSubmit()
	if err != nil {
		t.Fatalf("BeginSubmit: %v", err)
	}
	if stale := s.FailSubmit(token); stale {
		t.Fatalf("fresh failure reported stale")
	}
	if s.State != StateAwaitingAnswer || s.QuestionIndex != 2 {
		t.Errorf("expected return to last question, got %+v", s)
	}
	if len(s.Answers) != 3 {
		t.Errorf("answers lost on failed submit: %v", s.Answers)
	}

	// Retry goes straight back to Submitting and may complete.
	token, err = s.Resubmit()
	if err != nil {
		t.Fatalf("Resubmit: %v", err)
	}
	if stale := s.CompleteSubmit(token); stale {
		t.Fatalf("fresh completion reported stale")
	}
	if s.State != StateCompleted {
		t.Errorf("expected Completed, got %s", s.State)
	}
}

func TestStaleCompletionIsDiscarded(t *testing.T) {
	s := NewSession(threeQuestionTemplate())
	for _, v := range []float64{1, 3, 5} {
		s.Answer(v)
	}
	token, _ := s.BeginSubmit()
	s.FailSubmit(token)
	// The first submission resolves after the session moved on.
	if stale := s.CompleteSubmit(token); !stale {
		t.Fatalf("stale completion applied")
	}
	if s.State != StateAwaitingAnswer {
		t.Errorf("stale completion mutated state: %s", s.State)
	}

	newToken, _ := s.Resubmit()
	if stale := s.FailSubmit(token); !stale {
		t.Fatalf("stale failure applied")
	}
	if stale := s.CompleteSubmit(newToken); stale {
		t.Fatalf("current completion rejected")
	}
}

func TestResubmitRequiresFullAnswers(t *testing.T) {
	s := NewSession(threeQuestionTemplate())
	s.Answer(1)
	if _, err := s.Resubmit(); !apperr.IsValidation(err) {
		t.Fatalf("Resubmit with partial answers accepted")
	}
}

func TestScore(t *testing.T) {
	s := NewSession(threeQuestionTemplate())
	for _, v := range []float64{5, 5, 5} {
		s.Answer(v)
	}
	score, msg, err := s.Score()
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if score != 100 {
		t.Errorf("expected 100, got %v", score)
	}
	if msg != "high" {
		t.Errorf("expected high band, got %q", msg)
	}
}
