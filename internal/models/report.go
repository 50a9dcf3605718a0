package models

import "time"

// WeeklyReport is the relationship-temperature summary for one ISO
// week. Computed on demand, never mutated after the fetch.
type WeeklyReport struct {
	WeekStartDate            time.Time `bson:"week_start_date" json:"week_start_date"`
	Year                     int       `bson:"year" json:"year"`
	Week                     int       `bson:"week" json:"week"`
	OverallScore             int       `bson:"overall_score" json:"overall_score"`
	Reason                   string    `bson:"reason" json:"reason"`
	CardsSentCount           int       `bson:"cards_sent_count" json:"cards_sent_count"`
	ChallengesCompletedCount int       `bson:"challenges_completed_count" json:"challenges_completed_count"`
	ChallengesFailedCount    int       `bson:"challenges_failed_count" json:"challenges_failed_count"`
	ExpertSolutionsCount     int       `bson:"expert_solutions_count" json:"expert_solutions_count"`
	MarriageDiagnosisCount   int       `bson:"marriage_diagnosis_count" json:"marriage_diagnosis_count"`
}

// WeekKey identifies one ISO week.
type WeekKey struct {
	Year int `json:"year"`
	Week int `json:"week"`
}

// WeekCounts are the per-week activity tallies the aggregator folds
// into a report. Each field is sourced independently.
type WeekCounts struct {
	CardsSent           int
	ChallengesCompleted int
	ChallengesFailed    int
	ExpertSolutions     int
	MarriageDiagnoses   int
}

// WeekStart returns the Monday that opens the given ISO week.
func WeekStart(year, week int) time.Time {
	// Jan 4 is always inside ISO week 1.
	t := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	for t.Weekday() != time.Monday {
		t = t.AddDate(0, 0, -1)
	}
	return t.AddDate(0, 0, (week-1)*7)
}

// KeyOf maps a point in time to its ISO week key.
func KeyOf(t time.Time) WeekKey {
	y, w := t.ISOWeek()
	return WeekKey{Year: y, Week: w}
}
