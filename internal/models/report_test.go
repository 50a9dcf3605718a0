package models

import (
	"testing"
	"time"
)

func TestWeekStartRoundTrip(t *testing.T) {
	cases := []WeekKey{
		{Year: 2026, Week: 1},
		{Year: 2026, Week: 35},
		{Year: 2025, Week: 52},
		{Year: 2020, Week: 53}, // 53-week year
	}
	for _, c := range cases {
		start := WeekStart(c.Year, c.Week)
		if start.Weekday() != time.Monday {
			t.Errorf("WeekStart(%d,%d) = %v, not a Monday", c.Year, c.Week, start)
		}
		if got := KeyOf(start); got != c {
			t.Errorf("KeyOf(WeekStart(%d,%d)) = %+v", c.Year, c.Week, got)
		}
	}
}

func TestTemplateScoreRange(t *testing.T) {
	opts := []Option{{Text: "a", Value: 1}, {Text: "b", Value: 5}}
	tpl := &Template{
		Scoring: ScoringNormalized,
		Questions: []Question{
			{ID: "q1", Kind: KindChoice, Options: opts},
			{ID: "q2", Kind: KindChoice, Options: opts},
		},
	}
	min, max := tpl.ScoreRange()
	if min != 20 || max != 100 {
		t.Errorf("normalized range = [%v, %v], want [20, 100]", min, max)
	}

	raw := &Template{
		Scoring: ScoringRawSum,
		Questions: []Question{
			{ID: "q1", Kind: KindYesNoNeutral, Scores: &ScoreTriple{Yes: 10, No: -5, Neutral: 0}},
		},
	}
	min, max = raw.ScoreRange()
	if min != -5 || max != 10 {
		t.Errorf("raw range = [%v, %v], want [-5, 10]", min, max)
	}
}

func TestQuestionAccepts(t *testing.T) {
	q := Question{Kind: KindYesNoNeutral, Scores: &ScoreTriple{Yes: 10, No: -5, Neutral: 0}}
	for _, v := range []float64{10, -5, 0} {
		if !q.Accepts(v) {
			t.Errorf("declared weight %v rejected", v)
		}
	}
	if q.Accepts(3) {
		t.Errorf("undeclared weight accepted")
	}
}
