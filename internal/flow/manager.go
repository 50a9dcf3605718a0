// Package flow drives a single questionnaire session: current
// question, collected answers, submission hand-off. It is pure state
// machine logic; persistence and transport live above it.
package flow

import (
	"diagnosis-service/internal/apperr"
	"diagnosis-service/internal/scoring"
)

// Answer records one positional answer. The value must be one of the
// current question's declared weights; otherwise the state does not
// advance. Answering the final question moves the session to
// Submitting.
func (s *Session) Answer(value float64) (*AnswerOutcome, error) {
	if s.State != StateAwaitingAnswer {
		return nil, apperr.Validation("session_not_answerable",
			"session is %s, not awaiting an answer", s.State)
	}
	if err := scoring.ValidateAnswer(s.Template, s.QuestionIndex, value); err != nil {
		return nil, err
	}
	s.Answers = append(s.Answers, value)

	last := len(s.Template.Questions) - 1
	if s.QuestionIndex < last {
		s.QuestionIndex++
		return &AnswerOutcome{QuestionIndex: s.QuestionIndex, State: s.State}, nil
	}
	s.State = StateSubmitting
	s.submitToken++
	return &AnswerOutcome{QuestionIndex: s.QuestionIndex, State: s.State, ReadyToSubmit: true}, nil
}

// BeginSubmit marks a retry submission after a previous failure and
// returns the token the eventual completion must present. It is only
// legal from Submitting; a concurrent second submit is the caller's
// responsibility to reject before calling.
func (s *Session) BeginSubmit() (int, error) {
	if s.State != StateSubmitting {
		return 0, apperr.Validation("session_not_submitting",
			"session is %s, nothing to submit", s.State)
	}
	return s.submitToken, nil
}

// CompleteSubmit finishes the session. A stale token (the session
// already left Submitting, or a newer submission superseded this one)
// is discarded without effect and reported to the caller.
func (s *Session) CompleteSubmit(token int) (stale bool) {
	if s.State != StateSubmitting || token != s.submitToken {
		return true
	}
	s.State = StateCompleted
	return false
}

// FailSubmit returns the session to the last question with every
// answer intact so the user can retry. Stale failures are discarded.
func (s *Session) FailSubmit(token int) (stale bool) {
	if s.State != StateSubmitting || token != s.submitToken {
		return true
	}
	s.State = StateAwaitingAnswer
	// The last answer stays recorded; a retry goes straight back to
	// Submitting via Resubmit.
	return false
}

// Resubmit re-arms a session that fell back to the last question after
// a failed submission. All answers are already collected.
func (s *Session) Resubmit() (int, error) {
	if s.State != StateAwaitingAnswer || len(s.Answers) != len(s.Template.Questions) {
		return 0, apperr.Validation("session_not_resubmittable",
			"session has %d of %d answers", len(s.Answers), len(s.Template.Questions))
	}
	s.State = StateSubmitting
	s.submitToken++
	return s.submitToken, nil
}

// Score computes the final score and message once every answer is in.
func (s *Session) Score() (float64, string, error) {
	score, err := scoring.Calculate(s.Template, s.Answers)
	if err != nil {
		return 0, "", err
	}
	msg, err := scoring.ResultMessage(s.Template, score)
	if err != nil {
		return 0, "", err
	}
	return score, msg, nil
}
