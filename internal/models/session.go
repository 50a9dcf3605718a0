package models

import "time"

// Session is the persisted shape of one questionnaire run. The state
// machine itself lives in the flow package; this record mirrors it so
// a session survives process restarts.
type Session struct {
	ID            string    `bson:"_id,omitempty" json:"id"`
	UserID        string    `bson:"user_id" json:"user_id"`
	TemplateID    string    `bson:"template_id" json:"template_id"`
	SessionToken  string    `bson:"session_token" json:"session_token"`
	State         string    `bson:"state" json:"state"`
	QuestionIndex int       `bson:"question_index" json:"question_index"`
	Answers       []float64 `bson:"answers" json:"answers"`
	StartTime     time.Time `bson:"start_time" json:"start_time"`
	EndTime       time.Time `bson:"end_time,omitempty" json:"end_time,omitempty"`
	AttemptID     string    `bson:"attempt_id,omitempty" json:"attempt_id,omitempty"`
}
