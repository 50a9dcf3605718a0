package scoring

import (
	"testing"

	"diagnosis-service/internal/apperr"
	"diagnosis-service/internal/catalog"
	"diagnosis-service/internal/models"
)

func TestReverseScore(t *testing.T) {
	cases := []struct {
		raw, points, want int
	}{
		{1, 5, 5},
		{2, 5, 4},
		{3, 5, 3},
		{5, 5, 1},
		{0, 5, 5},
		{6, 5, 1},
		{1, 7, 7},
		{7, 7, 1},
	}
	for _, c := range cases {
		if got := ReverseScore(c.raw, c.points); got != c.want {
			t.Fatalf("ReverseScore(%d,%d)=%d, want %d", c.raw, c.points, got, c.want)
		}
	}
}

func TestMarriageAllNeutral(t *testing.T) {
	tpl, err := catalog.Get("marriage")
	if err != nil {
		t.Fatalf("loading marriage template: %v", err)
	}

	answers := make([]float64, len(tpl.Questions))
	for i := range answers {
		answers[i] = 3
	}

	score, err := Calculate(tpl, answers)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	// raw sum 90 over max 150 normalizes to 60
	if score != 60 {
		t.Errorf("Expected score 60, got %v", score)
	}

	msg, err := ResultMessage(tpl, score)
	if err != nil {
		t.Fatalf("ResultMessage: %v", err)
	}
	// 60 misses the 61 band and must resolve to the 51 band
	want, _ := ResultMessage(tpl, 51)
	if msg != want {
		t.Errorf("score 60 selected the wrong band: %q", msg)
	}
	at61, _ := ResultMessage(tpl, 61)
	if at61 == msg {
		t.Errorf("scores 60 and 61 must land in different bands")
	}
}

func TestCalculateDeterministic(t *testing.T) {
	tpl, _ := catalog.Get("stress")
	answers := make([]float64, len(tpl.Questions))
	for i := range answers {
		answers[i] = float64(i%5 + 1)
	}
	first, err := Calculate(tpl, answers)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	second, err := Calculate(tpl, answers)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if first != second {
		t.Errorf("Calculate not deterministic: %v vs %v", first, second)
	}
}

func TestCalculateInsufficientAnswers(t *testing.T) {
	tpl, _ := catalog.Get("marriage")
	answers := make([]float64, len(tpl.Questions)-1)
	for i := range answers {
		answers[i] = 3
	}
	_, err := Calculate(tpl, answers)
	if !apperr.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if apperr.CodeOf(err) != "insufficient_answers" {
		t.Errorf("expected insufficient_answers, got %q", apperr.CodeOf(err))
	}
}

func TestCalculateRejectsUndeclaredValue(t *testing.T) {
	tpl, _ := catalog.Get("marriage")
	answers := make([]float64, len(tpl.Questions))
	for i := range answers {
		answers[i] = 3
	}
	answers[10] = 7
	_, err := Calculate(tpl, answers)
	if !apperr.IsValidation(err) || apperr.CodeOf(err) != "invalid_answer" {
		t.Fatalf("expected invalid_answer validation, got %v", err)
	}
}

func legacyTriple(id string) models.Question {
	return models.Question{
		ID:     id,
		Text:   id,
		Kind:   models.KindYesNoNeutral,
		Scores: &models.ScoreTriple{Yes: 10, No: -5, Neutral: 0},
	}
}

func TestLegacyYesNoUnknownSum(t *testing.T) {
	tpl := &models.Template{
		ID:      "legacy-check",
		Scoring: models.ScoringRawSum,
		Questions: []models.Question{
			legacyTriple("q1"), legacyTriple("q2"), legacyTriple("q3"),
		},
		Bands: []models.Band{{MinScore: -15, Message: "ok"}},
	}

	keys := []string{"yes", "no", "unknown"}
	answers := make([]float64, len(keys))
	for i, k := range keys {
		v, err := TripleValue(&tpl.Questions[i], k)
		if err != nil {
			t.Fatalf("TripleValue(%q): %v", k, err)
		}
		answers[i] = v
	}

	score, err := Calculate(tpl, answers)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if score != 5 {
		t.Errorf("Expected raw sum 5, got %v", score)
	}
}

func TestTripleValueRejectsUnknownKey(t *testing.T) {
	q := legacyTriple("q1")
	if _, err := TripleValue(&q, "maybe"); !apperr.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestReverseKeyedQuestion(t *testing.T) {
	five := []models.Option{
		{Text: "1", Value: 1}, {Text: "2", Value: 2}, {Text: "3", Value: 3},
		{Text: "4", Value: 4}, {Text: "5", Value: 5},
	}
	tpl := &models.Template{
		ID:      "reverse-check",
		Scoring: models.ScoringRawSum,
		Questions: []models.Question{
			{ID: "q1", Kind: models.KindChoice, Options: five},
			{ID: "q2", Kind: models.KindChoice, Options: five, Reverse: true},
		},
		Bands: []models.Band{{MinScore: 0, Message: "ok"}},
	}
	// q2 answered 5 scores as 1 after reversal
	score, err := Calculate(tpl, []float64{2, 5})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if score != 3 {
		t.Errorf("Expected 2 + reverse(5)=1 = 3, got %v", score)
	}
}

func TestValidateAnswer(t *testing.T) {
	tpl, _ := catalog.Get("depression")
	if err := ValidateAnswer(tpl, 0, 2); err != nil {
		t.Errorf("declared value rejected: %v", err)
	}
	if err := ValidateAnswer(tpl, 0, 9); !apperr.IsValidation(err) {
		t.Errorf("undeclared value accepted")
	}
	if err := ValidateAnswer(tpl, len(tpl.Questions), 1); !apperr.IsValidation(err) {
		t.Errorf("out-of-range index accepted")
	}
}
