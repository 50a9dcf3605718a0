// Package scoring turns a fully answered template into a score and a
// result message. Everything here is pure and deterministic; callers
// get ValidationErrors for bad input, never partial results.
package scoring

import (
	"math"

	"diagnosis-service/internal/apperr"
	"diagnosis-service/internal/models"
)

// ReverseScore maps a raw value on a 1..points scale to its
// reverse-keyed value. Out-of-range values are clamped.
func ReverseScore(raw, points int) int {
	if points < 2 {
		return raw
	}
	if raw < 1 {
		raw = 1
	}
	if raw > points {
		raw = points
	}
	return (points + 1) - raw
}

// Calculate reduces one answer per question into the template's final
// score. Answers are positional. A short or overlong sequence, or any
// value that is not one of the question's declared weights, fails with
// a ValidationError.
func Calculate(t *models.Template, answers []float64) (float64, error) {
	if len(answers) < len(t.Questions) {
		return 0, apperr.Validation("insufficient_answers",
			"template %q needs %d answers, got %d", t.ID, len(t.Questions), len(answers))
	}
	if len(answers) > len(t.Questions) {
		return 0, apperr.Validation("excess_answers",
			"template %q needs %d answers, got %d", t.ID, len(t.Questions), len(answers))
	}
	maxVal := t.MaxOptionValue()
	var sum float64
	for i := range t.Questions {
		q := &t.Questions[i]
		v := answers[i]
		if !q.Accepts(v) {
			return 0, apperr.Validation("invalid_answer",
				"question %s does not offer answer value %v", q.ID, v)
		}
		if q.Reverse {
			v = float64(ReverseScore(int(v), int(maxVal)))
		}
		sum += v
	}
	if t.Scoring == models.ScoringNormalized {
		denom := float64(len(t.Questions)) * maxVal
		return math.Round(sum / denom * 100), nil
	}
	return sum, nil
}

// ResultMessage maps a score into the template's band table. Bands are
// scanned in descending threshold order; the first band whose
// threshold the score reaches wins, so a tie resolves to the higher
// band. Scores below the lowest band cannot occur for scores produced
// by Calculate; they are reported as validation failures rather than
// mapped arbitrarily.
func ResultMessage(t *models.Template, score float64) (string, error) {
	for _, b := range t.Bands {
		if score >= b.MinScore {
			return b.Message, nil
		}
	}
	return "", apperr.Validation("score_out_of_range",
		"score %v is below every band of template %q", score, t.ID)
}

// ValidateAnswer checks a single positional answer without advancing a
// session, for the flow controller's per-question gate.
func ValidateAnswer(t *models.Template, index int, value float64) error {
	if index < 0 || index >= len(t.Questions) {
		return apperr.Validation("question_index_out_of_range",
			"template %q has no question %d", t.ID, index)
	}
	if !t.Questions[index].Accepts(value) {
		return apperr.Validation("invalid_answer",
			"question %s does not offer answer value %v", t.Questions[index].ID, value)
	}
	return nil
}

// TripleValue resolves a legacy yes/no/unknown answer key against a
// question's fixed weight triple. "unknown" is the historical client
// spelling for the neutral key.
func TripleValue(q *models.Question, key string) (float64, error) {
	if q.Scores == nil {
		return 0, apperr.Validation("invalid_answer",
			"question %s does not take yes/no/neutral answers", q.ID)
	}
	switch key {
	case "yes":
		return q.Scores.Yes, nil
	case "no":
		return q.Scores.No, nil
	case "neutral", "unknown":
		return q.Scores.Neutral, nil
	}
	return 0, apperr.Validation("invalid_answer",
		"question %s does not offer answer key %q", q.ID, key)
}
