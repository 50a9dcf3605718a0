package repository

import (
	"context"
	"errors"

	"diagnosis-service/internal/apperr"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Couple is the partner-link record maintained by the account service.
// This service only reads it to decide between the real weekly
// aggregation and the partnerless default report.
type Couple struct {
	ID        string   `bson:"_id,omitempty" json:"id"`
	MemberIDs []string `bson:"member_ids" json:"member_ids"`
	Status    string   `bson:"status" json:"status"`
}

type CoupleRepository struct {
	Col *mongo.Collection
}

func NewCoupleRepository(db *mongo.Database) *CoupleRepository {
	return &CoupleRepository{Col: db.Collection("couples")}
}

// FindByMember returns the active couple containing userID, or a
// NotFound error when the user has no linked partner.
func (r *CoupleRepository) FindByMember(ctx context.Context, userID string) (*Couple, error) {
	var couple Couple
	err := r.Col.FindOne(ctx, bson.M{
		"member_ids": userID,
		"status":     "linked",
	}).Decode(&couple)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("couple_not_found", "user has no linked partner")
	}
	if err != nil {
		return nil, apperr.Persistence("couple_query_failed", err)
	}
	return &couple, nil
}

// MembersOf returns the member ids of the user's active couple.
func (r *CoupleRepository) MembersOf(ctx context.Context, userID string) ([]string, error) {
	couple, err := r.FindByMember(ctx, userID)
	if err != nil {
		return nil, err
	}
	return couple.MemberIDs, nil
}
