package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/amirsoft21/bementor/internal/models"
)

type BookingRepository interface {
	Create(ctx context.Context, b *models.Booking) error
	ByUser(ctx context.Context, userID string) ([]*models.Booking, error)
}

type mongoBookingRepo struct {
	col *mongo.Collection
}

func NewMongoBookingRepo(db *mongo.Database) BookingRepository {
	col := db.Collection("bookings")
	_, _ = col.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{Keys: bson.D{{Key: "student_id", Value: 1}}},
		{Keys: bson.D{{Key: "teacher_id", Value: 1}}},
	})
	return &mongoBookingRepo{col: col}
}

func (r *mongoBookingRepo) Create(ctx context.Context, b *models.Booking) error {
	b.CreatedAt = time.Now().UTC()
	res, err := r.col.InsertOne(ctx, b)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		b.ID = id
	}
	return nil
}

// ByUser returns bookings where the user is either side of the lesson.
func (r *mongoBookingRepo) ByUser(ctx context.Context, userID string) ([]*models.Booking, error) {
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrNotFound
	}
	filter := bson.M{"$or": bson.A{
		bson.M{"student_id": objID},
		bson.M{"teacher_id": objID},
	}}
	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "scheduled_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var bookings []*models.Booking
	if err := cur.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}
