package repository

import (
	"context"
	"errors"

	"diagnosis-service/internal/apperr"
	"diagnosis-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type SessionRepository struct {
	Col *mongo.Collection
}

func NewSessionRepository(db *mongo.Database) *SessionRepository {
	return &SessionRepository{Col: db.Collection("sessions")}
}

func (r *SessionRepository) FindByID(ctx context.Context, id string) (*models.Session, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.NotFound("session_not_found", "no session %q", id)
	}
	var session models.Session
	err = r.Col.FindOne(ctx, bson.M{"_id": objID}).Decode(&session)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("session_not_found", "no session %q", id)
	}
	if err != nil {
		return nil, apperr.Persistence("session_query_failed", err)
	}
	session.ID = id
	return &session, nil
}

func (r *SessionRepository) Create(ctx context.Context, session *models.Session) error {
	res, err := r.Col.InsertOne(ctx, session)
	if err != nil {
		return apperr.Persistence("session_insert_failed", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		session.ID = oid.Hex()
	}
	return nil
}

func (r *SessionRepository) Update(ctx context.Context, id string, update bson.M) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.NotFound("session_not_found", "no session %q", id)
	}
	if _, err := r.Col.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": update}); err != nil {
		return apperr.Persistence("session_update_failed", err)
	}
	return nil
}
