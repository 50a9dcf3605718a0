package repository

import (
	"context"
	"sort"
	"time"

	"diagnosis-service/internal/apperr"
	"diagnosis-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ActivityRepository reads the couple-activity collections the other
// app features write to (emotion cards, weekly challenges, expert
// content views) and tallies them per ISO week for the report
// aggregator.
type ActivityRepository struct {
	Cards      *mongo.Collection
	Challenges *mongo.Collection
	Views      *mongo.Collection
	Attempts   *AttemptRepository
}

func NewActivityRepository(db *mongo.Database, attempts *AttemptRepository) *ActivityRepository {
	return &ActivityRepository{
		Cards:      db.Collection("cards"),
		Challenges: db.Collection("challenges"),
		Views:      db.Collection("content_views"),
		Attempts:   attempts,
	}
}

// WeeklyCounts tallies one week of couple activity. Each count is
// sourced independently; a failure in any source fails the whole call.
func (r *ActivityRepository) WeeklyCounts(ctx context.Context, memberIDs []string, from, to time.Time) (models.WeekCounts, error) {
	var counts models.WeekCounts

	window := bson.M{"$gte": from, "$lt": to}
	members := bson.M{"$in": memberIDs}

	n, err := r.Cards.CountDocuments(ctx, bson.M{"sender_id": members, "sent_at": window})
	if err != nil {
		return counts, apperr.Persistence("cards_count_failed", err)
	}
	counts.CardsSent = int(n)

	n, err = r.Challenges.CountDocuments(ctx, bson.M{"user_id": members, "status": "completed", "ended_at": window})
	if err != nil {
		return counts, apperr.Persistence("challenges_count_failed", err)
	}
	counts.ChallengesCompleted = int(n)

	n, err = r.Challenges.CountDocuments(ctx, bson.M{"user_id": members, "status": "failed", "ended_at": window})
	if err != nil {
		return counts, apperr.Persistence("challenges_count_failed", err)
	}
	counts.ChallengesFailed = int(n)

	n, err = r.Views.CountDocuments(ctx, bson.M{"user_id": members, "viewed_at": window})
	if err != nil {
		return counts, apperr.Persistence("views_count_failed", err)
	}
	counts.ExpertSolutions = int(n)

	counts.MarriageDiagnoses, err = r.Attempts.CountByTemplateBetween(ctx, memberIDs, "marriage", from, to)
	if err != nil {
		return counts, err
	}
	return counts, nil
}

// ActivityWeeks returns every ISO week with any couple activity,
// ascending and deduplicated.
func (r *ActivityRepository) ActivityWeeks(ctx context.Context, memberIDs []string) ([]models.WeekKey, error) {
	members := bson.M{"$in": memberIDs}
	seen := map[models.WeekKey]bool{}

	collect := func(col *mongo.Collection, userField, timeField string) error {
		cur, err := col.Find(ctx, bson.M{userField: members})
		if err != nil {
			return apperr.Persistence("weeks_query_failed", err)
		}
		defer cur.Close(ctx)
		for cur.Next(ctx) {
			var doc bson.M
			if err := cur.Decode(&doc); err != nil {
				return apperr.Persistence("weeks_decode_failed", err)
			}
			if t, ok := doc[timeField].(time.Time); ok {
				seen[models.KeyOf(t)] = true
			} else if dt, ok := doc[timeField].(interface{ Time() time.Time }); ok {
				seen[models.KeyOf(dt.Time())] = true
			}
		}
		return nil
	}

	if err := collect(r.Cards, "sender_id", "sent_at"); err != nil {
		return nil, err
	}
	if err := collect(r.Challenges, "user_id", "ended_at"); err != nil {
		return nil, err
	}
	if err := collect(r.Views, "user_id", "viewed_at"); err != nil {
		return nil, err
	}

	weeks := make([]models.WeekKey, 0, len(seen))
	for k := range seen {
		weeks = append(weeks, k)
	}
	sort.Slice(weeks, func(i, j int) bool {
		if weeks[i].Year != weeks[j].Year {
			return weeks[i].Year < weeks[j].Year
		}
		return weeks[i].Week < weeks[j].Week
	})
	return weeks, nil
}
