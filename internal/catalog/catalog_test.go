package catalog

import (
	"testing"

	"diagnosis-service/internal/apperr"
	"diagnosis-service/internal/models"
)

func TestGetUnknownTemplate(t *testing.T) {
	_, err := Get("palmistry")
	if !apperr.IsNotFound(err) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestTemplateShapes(t *testing.T) {
	cases := []struct {
		id               string
		questions        int
		scoring          models.ScoringKind
		singleCompletion bool
		guestAllowed     bool
	}{
		{"marriage", 30, models.ScoringNormalized, true, true},
		{"stress", 20, models.ScoringNormalized, false, false},
		{"depression", 15, models.ScoringNormalized, false, false},
		{"baseline", 10, models.ScoringRawSum, false, true},
	}
	for _, tc := range cases {
		t.Run(tc.id, func(t *testing.T) {
			tpl, err := Get(tc.id)
			if err != nil {
				t.Fatalf("Get(%q): %v", tc.id, err)
			}
			if len(tpl.Questions) != tc.questions {
				t.Errorf("expected %d questions, got %d", tc.questions, len(tpl.Questions))
			}
			if tpl.Scoring != tc.scoring {
				t.Errorf("expected scoring %q, got %q", tc.scoring, tpl.Scoring)
			}
			if tpl.SingleCompletion != tc.singleCompletion {
				t.Errorf("SingleCompletion = %v", tpl.SingleCompletion)
			}
			if tpl.GuestAllowed != tc.guestAllowed {
				t.Errorf("GuestAllowed = %v", tpl.GuestAllowed)
			}
		})
	}
}

func TestQuestionsCarryExactlyOneShape(t *testing.T) {
	for _, tpl := range All() {
		for i, q := range tpl.Questions {
			hasOptions := len(q.Options) > 0
			hasScores := q.Scores != nil
			if hasOptions == hasScores {
				t.Errorf("%s question %d: options=%v scores=%v", tpl.ID, i, hasOptions, hasScores)
			}
			if len(q.AnswerValues()) == 0 {
				t.Errorf("%s question %d: no answerable values", tpl.ID, i)
			}
		}
	}
}

// Every integer score a template can produce must map to exactly one
// non-empty message, and walking the scores upward must never select a
// lower band.
func TestBandTotalityAndMonotonicity(t *testing.T) {
	for _, tpl := range All() {
		t.Run(tpl.ID, func(t *testing.T) {
			min, max := tpl.ScoreRange()
			prevBand := tpl.Bands[len(tpl.Bands)-1].MinScore
			for s := min; s <= max; s++ {
				var selected *models.Band
				for i := range tpl.Bands {
					if s >= tpl.Bands[i].MinScore {
						selected = &tpl.Bands[i]
						break
					}
				}
				if selected == nil {
					t.Fatalf("score %v maps to no band", s)
				}
				if selected.Message == "" {
					t.Fatalf("score %v maps to an empty message", s)
				}
				if selected.MinScore < prevBand {
					t.Fatalf("band selection regressed at score %v", s)
				}
				prevBand = selected.MinScore
			}
		})
	}
}

func TestBandsDescending(t *testing.T) {
	for _, tpl := range All() {
		for i := 1; i < len(tpl.Bands); i++ {
			if tpl.Bands[i].MinScore >= tpl.Bands[i-1].MinScore {
				t.Errorf("%s: bands not strictly descending at %d", tpl.ID, i)
			}
		}
	}
}

func TestAllIsStable(t *testing.T) {
	first := All()
	second := All()
	if len(first) != len(second) {
		t.Fatalf("All() changed size between calls")
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("All() order changed at %d", i)
		}
	}
}
