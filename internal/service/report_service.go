package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"diagnosis-service/internal/apperr"
	"diagnosis-service/internal/models"
)

// defaultTemperature is the relationship temperature shown when the
// user has neither a linked partner nor any diagnosis history.
const defaultTemperature = 61

const defaultReason = "파트너와 연결하면 우리 커플의 주간 리포트를 받아볼 수 있어요."

// CoupleSource resolves a user's partner link, implemented by
// repository.CoupleRepository.
type CoupleSource interface {
	MembersOf(ctx context.Context, userID string) ([]string, error)
}

// ActivitySource tallies couple activity, implemented by
// repository.ActivityRepository.
type ActivitySource interface {
	WeeklyCounts(ctx context.Context, memberIDs []string, from, to time.Time) (models.WeekCounts, error)
	ActivityWeeks(ctx context.Context, memberIDs []string) ([]models.WeekKey, error)
}

// ReportService computes the weekly relationship-temperature report.
// Fetched weeks are cached per viewer for the life of the process;
// PreviousReport only ever reads that cache, it never fetches.
type ReportService struct {
	Couples  CoupleSource
	Activity ActivitySource
	History  *HistoryService

	mu    sync.Mutex
	cache map[string]map[models.WeekKey]*models.WeeklyReport
}

func NewReportService(couples CoupleSource, activity ActivitySource, history *HistoryService) *ReportService {
	return &ReportService{
		Couples:  couples,
		Activity: activity,
		History:  history,
		cache:    map[string]map[models.WeekKey]*models.WeeklyReport{},
	}
}

// AvailableWeeks lists the ISO weeks a linked couple has activity in,
// ascending. A partnerless user has no selectable weeks.
func (s *ReportService) AvailableWeeks(ctx context.Context, userID string) ([]models.WeekKey, error) {
	members, err := s.Couples.MembersOf(ctx, userID)
	if apperr.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading report weeks: %w", err)
	}
	return s.Activity.ActivityWeeks(ctx, members)
}

// GetReport returns the report for one ISO week. Without a linked
// partner it falls back to the default report built from the user's
// latest diagnosis score, with no aggregate queries.
func (s *ReportService) GetReport(ctx context.Context, userID string, year, week int) (*models.WeeklyReport, error) {
	key := models.WeekKey{Year: year, Week: week}
	if r := s.cached(userID, key); r != nil {
		return r, nil
	}

	members, err := s.Couples.MembersOf(ctx, userID)
	if apperr.IsNotFound(err) {
		return s.defaultReport(ctx, userID, year, week), nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading weekly report: %w", err)
	}

	from := models.WeekStart(year, week)
	to := from.AddDate(0, 0, 7)
	counts, err := s.Activity.WeeklyCounts(ctx, members, from, to)
	if err != nil {
		return nil, fmt.Errorf("loading weekly report: %w", err)
	}

	score := s.latestScore(ctx, userID)
	score += counts.ChallengesCompleted*2 - counts.ChallengesFailed
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	report := &models.WeeklyReport{
		WeekStartDate:            from,
		Year:                     year,
		Week:                     week,
		OverallScore:             score,
		Reason:                   temperatureReason(score, counts),
		CardsSentCount:           counts.CardsSent,
		ChallengesCompletedCount: counts.ChallengesCompleted,
		ChallengesFailedCount:    counts.ChallengesFailed,
		ExpertSolutionsCount:     counts.ExpertSolutions,
		MarriageDiagnosisCount:   counts.MarriageDiagnoses,
	}
	s.store(userID, key, report)
	return report, nil
}

// PreviousReport returns the cached report of the week immediately
// before the given one in the available-weeks list, or nil when that
// week has not been viewed yet. It never triggers a fetch.
func (s *ReportService) PreviousReport(ctx context.Context, userID string, year, week int) (*models.WeeklyReport, error) {
	weeks, err := s.AvailableWeeks(ctx, userID)
	if err != nil {
		return nil, err
	}
	current := models.WeekKey{Year: year, Week: week}
	for i, k := range weeks {
		if k == current && i > 0 {
			return s.cached(userID, weeks[i-1]), nil
		}
	}
	return nil, nil
}

func (s *ReportService) defaultReport(ctx context.Context, userID string, year, week int) *models.WeeklyReport {
	return &models.WeeklyReport{
		WeekStartDate: models.WeekStart(year, week),
		Year:          year,
		Week:          week,
		OverallScore:  s.latestScore(ctx, userID),
		Reason:        defaultReason,
	}
}

// latestScore is the user's newest diagnosis score, clamped to the
// temperature scale, or the default temperature when no diagnosis
// exists.
func (s *ReportService) latestScore(ctx context.Context, userID string) int {
	attempt, err := s.History.LatestAttempt(ctx, AuthContext{UserID: userID})
	if err != nil {
		return defaultTemperature
	}
	score := int(attempt.Score)
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}

func temperatureReason(score int, counts models.WeekCounts) string {
	switch {
	case score >= 80:
		return "이번 주 두 사람의 온도가 아주 따뜻해요. 감정 카드와 챌린지가 큰 몫을 했어요."
	case score >= 60:
		return "안정적인 한 주였어요. 함께한 활동이 관계 온도를 지켜주고 있어요."
	case counts.ChallengesFailed > counts.ChallengesCompleted:
		return "이번 주에는 놓친 챌린지가 많았어요. 부담 없는 챌린지부터 다시 시작해 보세요."
	default:
		return "관계 온도가 조금 내려갔어요. 감정 카드로 서로의 마음을 확인해 보세요."
	}
}

func (s *ReportService) cached(userID string, key models.WeekKey) *models.WeeklyReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache[userID][key]
}

func (s *ReportService) store(userID string, key models.WeekKey, r *models.WeeklyReport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cache[userID] == nil {
		s.cache[userID] = map[models.WeekKey]*models.WeeklyReport{}
	}
	s.cache[userID][key] = r
}
