package models

import "math"

// QuestionKind tags the two answer shapes a question can carry. The
// legacy yes/no/neutral shape predates the option-list templates and
// still backs the unauthenticated baseline flow.
type QuestionKind string

const (
	KindChoice       QuestionKind = "choice"
	KindYesNoNeutral QuestionKind = "yesNoNeutral"
)

// ScoringKind selects how a template turns summed weights into its
// final score.
type ScoringKind string

const (
	// ScoringNormalized maps the sum onto a 0-100 scale:
	// round(sum / (questionCount * maxOptionValue) * 100).
	ScoringNormalized ScoringKind = "normalized"
	// ScoringRawSum reports the unnormalized sum (legacy templates).
	ScoringRawSum ScoringKind = "rawSum"
)

type Option struct {
	Text  string  `bson:"text" json:"text"`
	Value float64 `bson:"value" json:"value"`
}

// ScoreTriple holds the fixed weights of a legacy yes/no/neutral
// question.
type ScoreTriple struct {
	Yes     float64 `bson:"yes" json:"yes"`
	No      float64 `bson:"no" json:"no"`
	Neutral float64 `bson:"neutral" json:"neutral"`
}

// Question is a tagged union: exactly one of Options or Scores is set,
// according to Kind. Answers are positional, so question order within a
// template is significant.
type Question struct {
	ID      string       `bson:"id" json:"id"`
	Text    string       `bson:"text" json:"text"`
	Kind    QuestionKind `bson:"kind" json:"kind"`
	Options []Option     `bson:"options,omitempty" json:"options,omitempty"`
	Scores  *ScoreTriple `bson:"scores,omitempty" json:"scores,omitempty"`
	// Reverse marks a reverse-keyed item: the stored option values are
	// the display scale, and the scorer flips them before summing.
	Reverse bool `bson:"reverse,omitempty" json:"reverse,omitempty"`
}

// Band maps a contiguous score range to one result message. Band
// tables are ordered by descending MinScore and scanned top-down; the
// first band whose MinScore the score reaches wins, so ties resolve to
// the higher band.
type Band struct {
	MinScore float64 `bson:"min_score" json:"min_score"`
	Message  string  `bson:"message" json:"message"`
}

type Template struct {
	ID        string      `bson:"_id" json:"id"`
	Title     string      `bson:"title" json:"title"`
	Subtitle  string      `bson:"subtitle" json:"subtitle"`
	Price     string      `bson:"price" json:"price"`
	Scoring   ScoringKind `bson:"scoring" json:"scoring"`
	Questions []Question  `bson:"questions" json:"questions"`
	Bands     []Band      `bson:"bands" json:"bands"`
	// SingleCompletion templates may be taken once per user; a second
	// session is refused while an attempt exists.
	SingleCompletion bool `bson:"single_completion" json:"single_completion"`
	// GuestAllowed marks the legacy flows that predate account linking
	// and may record attempts to device-local history.
	GuestAllowed bool `bson:"guest_allowed" json:"guest_allowed"`
}

// MaxOptionValue is the highest declared weight across the template,
// the denominator unit of normalized scoring.
func (t *Template) MaxOptionValue() float64 {
	max := 0.0
	for _, q := range t.Questions {
		for _, v := range q.AnswerValues() {
			if v > max {
				max = v
			}
		}
	}
	return max
}

// ScoreRange returns the lowest and highest achievable final scores.
func (t *Template) ScoreRange() (min, max float64) {
	var minSum, maxSum float64
	for _, q := range t.Questions {
		vals := q.AnswerValues()
		if len(vals) == 0 {
			continue
		}
		lo, hi := vals[0], vals[0]
		for _, v := range vals[1:] {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
		minSum += lo
		maxSum += hi
	}
	if t.Scoring == ScoringNormalized {
		denom := float64(len(t.Questions)) * t.MaxOptionValue()
		if denom == 0 {
			return 0, 0
		}
		return math.Round(minSum / denom * 100), math.Round(maxSum / denom * 100)
	}
	return minSum, maxSum
}

// AnswerValues lists every weight a caller may legally answer with.
func (q *Question) AnswerValues() []float64 {
	switch q.Kind {
	case KindChoice:
		vals := make([]float64, 0, len(q.Options))
		for _, o := range q.Options {
			vals = append(vals, o.Value)
		}
		return vals
	case KindYesNoNeutral:
		if q.Scores == nil {
			return nil
		}
		return []float64{q.Scores.Yes, q.Scores.No, q.Scores.Neutral}
	}
	return nil
}

// Accepts reports whether v is one of the question's declared weights.
func (q *Question) Accepts(v float64) bool {
	for _, w := range q.AnswerValues() {
		if w == v {
			return true
		}
	}
	return false
}
