package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/amirsoft21/bementor/internal/models"
)

type SubscriptionRepository interface {
	Create(ctx context.Context, s *models.Subscription) error
	FindByID(ctx context.Context, id string) (*models.Subscription, error)
	ByUser(ctx context.Context, userID string) ([]*models.Subscription, error)
	Update(ctx context.Context, s *models.Subscription) error
}

type mongoSubscriptionRepo struct {
	col *mongo.Collection
}

func NewMongoSubscriptionRepo(db *mongo.Database) SubscriptionRepository {
	col := db.Collection("subscriptions")
	_, _ = col.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}},
	})
	return &mongoSubscriptionRepo{col: col}
}

func (r *mongoSubscriptionRepo) Create(ctx context.Context, s *models.Subscription) error {
	res, err := r.col.InsertOne(ctx, s)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		s.ID = id
	}
	return nil
}

func (r *mongoSubscriptionRepo) FindByID(ctx context.Context, id string) (*models.Subscription, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var s models.Subscription
	err = r.col.FindOne(ctx, bson.M{"_id": objID}).Decode(&s)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *mongoSubscriptionRepo) ByUser(ctx context.Context, userID string) ([]*models.Subscription, error) {
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrNotFound
	}
	cur, err := r.col.Find(ctx, bson.M{"user_id": objID}, options.Find().SetSort(bson.D{{Key: "start_date", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var subs []*models.Subscription
	if err := cur.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *mongoSubscriptionRepo) Update(ctx context.Context, s *models.Subscription) error {
	res, err := r.col.UpdateByID(ctx, s.ID, bson.M{"$set": s})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
