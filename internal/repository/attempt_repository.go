package repository

import (
	"context"
	"errors"
	"time"

	"diagnosis-service/internal/apperr"
	"diagnosis-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// legacyResultTypes maps the display titles older attempt records were
// tagged with onto canonical template ids. Applied on the fetch path
// only; nothing is written back.
var legacyResultTypes = map[string]string{
	"결혼생활 만족도 진단": "marriage",
	"스트레스 진단":     "stress",
	"우울감 진단":      "depression",
	"오늘의 관계 체크":   "baseline",
}

type AttemptRepository struct {
	Col *mongo.Collection
}

func NewAttemptRepository(db *mongo.Database) *AttemptRepository {
	return &AttemptRepository{Col: db.Collection("attempts")}
}

func (r *AttemptRepository) Insert(ctx context.Context, attempt *models.Attempt) error {
	res, err := r.Col.InsertOne(ctx, attempt)
	if err != nil {
		return apperr.Persistence("attempt_insert_failed", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		attempt.ID = oid.Hex()
	}
	return nil
}

func (r *AttemptRepository) FindByUser(ctx context.Context, userID string) ([]models.Attempt, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

func (r *AttemptRepository) FindByUserAndTemplate(ctx context.Context, userID, templateID string) ([]models.Attempt, error) {
	attempts, err := r.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	// Filter after the legacy result_type resolution so old records
	// tagged only by title still land under their template.
	out := attempts[:0]
	for _, a := range attempts {
		if a.TemplateID == templateID {
			out = append(out, a)
		}
	}
	return out, nil
}

// LatestByUser returns the newest attempt or a NotFound error.
func (r *AttemptRepository) LatestByUser(ctx context.Context, userID string) (*models.Attempt, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	var a models.Attempt
	err := r.Col.FindOne(ctx, bson.M{"user_id": userID}, opts).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("attempt_not_found", "no attempts for user")
	}
	if err != nil {
		return nil, apperr.Persistence("attempt_query_failed", err)
	}
	resolveTemplateID(&a)
	return &a, nil
}

// CountByTemplateBetween counts attempts for a set of users within
// [from, to), used by the weekly report aggregation.
func (r *AttemptRepository) CountByTemplateBetween(ctx context.Context, userIDs []string, templateID string, from, to time.Time) (int, error) {
	n, err := r.Col.CountDocuments(ctx, bson.M{
		"user_id":     bson.M{"$in": userIDs},
		"template_id": templateID,
		"created_at":  bson.M{"$gte": from, "$lt": to},
	})
	if err != nil {
		return 0, apperr.Persistence("attempt_count_failed", err)
	}
	return int(n), nil
}

func (r *AttemptRepository) find(ctx context.Context, filter bson.M) ([]models.Attempt, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.Col.Find(ctx, filter, opts)
	if err != nil {
		return nil, apperr.Persistence("attempt_query_failed", err)
	}
	defer cur.Close(ctx)
	var attempts []models.Attempt
	for cur.Next(ctx) {
		var a models.Attempt
		if err := cur.Decode(&a); err != nil {
			return nil, apperr.Persistence("attempt_decode_failed", err)
		}
		resolveTemplateID(&a)
		attempts = append(attempts, a)
	}
	return attempts, nil
}

func resolveTemplateID(a *models.Attempt) {
	if a.TemplateID == "" && a.ResultType != "" {
		if id, ok := legacyResultTypes[a.ResultType]; ok {
			a.TemplateID = id
		}
	}
}
