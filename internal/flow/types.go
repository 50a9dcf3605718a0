package flow

import "diagnosis-service/internal/models"

type State string

const (
	StateAwaitingAnswer State = "awaiting_answer"
	StateSubmitting     State = "submitting"
	StateCompleted      State = "completed"
)

// Session is the in-memory state of one questionnaire run. It starts
// at question 0 with no answers and only ever moves forward, except
// for a failed submission which returns to the last question with all
// answers intact.
type Session struct {
	Template      *models.Template `json:"-"`
	TemplateID    string           `json:"template_id"`
	State         State            `json:"state"`
	QuestionIndex int              `json:"question_index"`
	Answers       []float64        `json:"answers"`
	// Attempt token of the in-flight submission. A completion or
	// failure carrying a stale token is discarded.
	submitToken int
}

// AnswerOutcome reports what a single accepted answer did to the
// session.
type AnswerOutcome struct {
	QuestionIndex int   `json:"question_index"`
	State         State `json:"state"`
	// ReadyToSubmit is set when the accepted answer was the last one
	// and the session moved to Submitting.
	ReadyToSubmit bool `json:"ready_to_submit"`
}

func NewSession(t *models.Template) *Session {
	return &Session{
		Template:      t,
		TemplateID:    t.ID,
		State:         StateAwaitingAnswer,
		QuestionIndex: 0,
		Answers:       make([]float64, 0, len(t.Questions)),
	}
}

// Rehydrate rebuilds the state machine from a persisted session
// record.
func Rehydrate(t *models.Template, state State, questionIndex int, answers []float64) *Session {
	return &Session{
		Template:      t,
		TemplateID:    t.ID,
		State:         state,
		QuestionIndex: questionIndex,
		Answers:       answers,
	}
}
