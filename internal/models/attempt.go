package models

import "time"

// Attempt is one completed run of a template. Attempts are immutable
// once recorded; there is no edit or delete path.
type Attempt struct {
	ID         string `bson:"_id,omitempty" json:"id"`
	UserID     string `bson:"user_id,omitempty" json:"user_id,omitempty"`
	DeviceID   string `bson:"device_id,omitempty" json:"device_id,omitempty"`
	TemplateID string `bson:"template_id" json:"template_id"`
	// ResultType carries the display title older records were tagged
	// with before template_id existed. TemplateID is canonical; this
	// field is only consulted on decode when template_id is empty.
	ResultType string  `bson:"result_type,omitempty" json:"result_type,omitempty"`
	Score      float64 `bson:"score" json:"score"`
	// Answers are the raw per-question values behind Score, kept for
	// recomputation. Optional on records where only the score
	// round-tripped through older clients.
	Answers   []float64 `bson:"answers,omitempty" json:"answers,omitempty"`
	Message   string    `bson:"message,omitempty" json:"message,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
