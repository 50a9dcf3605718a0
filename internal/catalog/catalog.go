// Package catalog is the static question bank. Templates are fixed
// data compiled into the binary: no I/O, no runtime derivation of
// weights, shared read-only by every consumer.
package catalog

import (
	"fmt"
	"sort"

	"diagnosis-service/internal/apperr"
	"diagnosis-service/internal/models"
)

var templates = map[string]*models.Template{}
var order []string

func init() {
	for _, t := range []*models.Template{
		marriageTemplate(),
		stressTemplate(),
		depressionTemplate(),
		baselineTemplate(),
	} {
		if err := validate(t); err != nil {
			panic(fmt.Sprintf("catalog: template %q: %v", t.ID, err))
		}
		templates[t.ID] = t
		order = append(order, t.ID)
	}
}

// Get returns the template for id or a NotFound error.
func Get(id string) (*models.Template, error) {
	t, ok := templates[id]
	if !ok {
		return nil, apperr.NotFound("template_not_found", "no diagnosis template %q", id)
	}
	return t, nil
}

// All lists every template in registration order.
func All() []*models.Template {
	out := make([]*models.Template, 0, len(order))
	for _, id := range order {
		out = append(out, templates[id])
	}
	return out
}

// validate enforces the bank invariants at load time: one answer shape
// per question, unique question ids, bands strictly descending and
// total over the achievable score range.
func validate(t *models.Template) error {
	if len(t.Questions) == 0 {
		return fmt.Errorf("no questions")
	}
	seen := map[string]bool{}
	for i, q := range t.Questions {
		hasOptions := len(q.Options) > 0
		hasScores := q.Scores != nil
		if hasOptions == hasScores {
			return fmt.Errorf("question %d: exactly one of options or scores must be set", i)
		}
		if (q.Kind == models.KindChoice) != hasOptions {
			return fmt.Errorf("question %d: kind %q does not match its answer shape", i, q.Kind)
		}
		if q.ID == "" || seen[q.ID] {
			return fmt.Errorf("question %d: missing or duplicate id %q", i, q.ID)
		}
		seen[q.ID] = true
		if q.Reverse && q.Kind != models.KindChoice {
			return fmt.Errorf("question %d: reverse keying applies to choice questions only", i)
		}
	}
	if len(t.Bands) == 0 {
		return fmt.Errorf("no bands")
	}
	if !sort.SliceIsSorted(t.Bands, func(i, j int) bool {
		return t.Bands[i].MinScore > t.Bands[j].MinScore
	}) {
		return fmt.Errorf("bands not in descending order")
	}
	for i := 1; i < len(t.Bands); i++ {
		if t.Bands[i].MinScore == t.Bands[i-1].MinScore {
			return fmt.Errorf("duplicate band threshold %v", t.Bands[i].MinScore)
		}
	}
	for _, b := range t.Bands {
		if b.Message == "" {
			return fmt.Errorf("empty message for band %v", b.MinScore)
		}
	}
	min, _ := t.ScoreRange()
	floor := t.Bands[len(t.Bands)-1].MinScore
	if floor > min {
		return fmt.Errorf("lowest band %v leaves achievable score %v unmapped", floor, min)
	}
	if t.Scoring == models.ScoringNormalized && floor > 0 {
		// Normalized templates promise coverage from zero.
		return fmt.Errorf("normalized template must band from 0, got %v", floor)
	}
	return nil
}
