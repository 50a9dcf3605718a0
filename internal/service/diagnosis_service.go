package service

import (
	"context"

	"diagnosis-service/internal/apperr"
	"diagnosis-service/internal/catalog"
	"diagnosis-service/internal/models"
	"diagnosis-service/internal/scoring"
)

// DiagnosisService handles the direct attempt submission the legacy
// clients use (no interactive session): answers arrive in one request,
// the score is recomputed server-side, and the attempt lands in the
// caller's history.
type DiagnosisService struct {
	History *HistoryService
}

func NewDiagnosisService(history *HistoryService) *DiagnosisService {
	return &DiagnosisService{History: history}
}

// SubmitInput is one complete diagnosis submission. Answers carry
// positional numeric values; AnswerKeys is the legacy yes/no/unknown
// spelling used by the baseline flow. Score is only trusted when no
// answers are present (older clients that round-trip just the score).
type SubmitInput struct {
	TemplateID string    `json:"diagnosisType"`
	ResultType string    `json:"resultType"`
	Score      *float64  `json:"score,omitempty"`
	Answers    []float64 `json:"answers,omitempty"`
	AnswerKeys []string  `json:"answerKeys,omitempty"`
}

// Submit validates, scores and records one attempt. Single-completion
// templates are refused once an attempt exists, for guests and users
// alike.
func (s *DiagnosisService) Submit(ctx context.Context, auth AuthContext, in SubmitInput) (*models.Attempt, string, error) {
	tpl, err := catalog.Get(in.TemplateID)
	if err != nil {
		return nil, "", err
	}
	if tpl.SingleCompletion {
		done, err := s.History.HasCompleted(ctx, auth, tpl.ID)
		if err != nil {
			return nil, "", err
		}
		if done {
			return nil, "", apperr.Validation("already_completed",
				"the %s diagnosis can only be taken once", tpl.Title)
		}
	}

	answers := in.Answers
	if len(answers) == 0 && len(in.AnswerKeys) > 0 {
		answers, err = s.resolveKeys(tpl, in.AnswerKeys)
		if err != nil {
			return nil, "", err
		}
	}

	var score float64
	switch {
	case len(answers) > 0:
		score, err = scoring.Calculate(tpl, answers)
		if err != nil {
			return nil, "", err
		}
	case in.Score != nil:
		score = *in.Score
	default:
		return nil, "", apperr.Validation("insufficient_answers",
			"a submission needs answers or a precomputed score")
	}

	message, err := scoring.ResultMessage(tpl, score)
	if err != nil {
		return nil, "", err
	}
	attempt := &models.Attempt{
		TemplateID: tpl.ID,
		ResultType: tpl.Title,
		Score:      score,
		Answers:    answers,
		Message:    message,
	}
	warning, err := s.History.RecordAttempt(ctx, auth, attempt)
	if err != nil {
		return nil, "", err
	}
	return attempt, warning, nil
}

// resolveKeys maps legacy yes/no/unknown answer keys onto the fixed
// weights of each question.
func (s *DiagnosisService) resolveKeys(tpl *models.Template, keys []string) ([]float64, error) {
	if len(keys) != len(tpl.Questions) {
		return nil, apperr.Validation("insufficient_answers",
			"template %q needs %d answers, got %d", tpl.ID, len(tpl.Questions), len(keys))
	}
	answers := make([]float64, len(keys))
	for i, key := range keys {
		v, err := scoring.TripleValue(&tpl.Questions[i], key)
		if err != nil {
			return nil, err
		}
		answers[i] = v
	}
	return answers, nil
}
