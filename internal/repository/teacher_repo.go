package repository

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/amirsoft21/bementor/internal/models"
)

// TeacherFilter captures the directory query parameters. Nil numeric
// bounds mean "no bound".
type TeacherFilter struct {
	Search    string
	Subject   string
	Location  string
	MinPrice  *float64
	MaxPrice  *float64
	MinRating *float64
	SortBy    string
	Page      int
	Limit     int
}

func (f *TeacherFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 12
	}
}

type TeacherRepository interface {
	Create(ctx context.Context, t *models.Teacher) error
	FindByID(ctx context.Context, id string) (*models.Teacher, error)
	FindByUserID(ctx context.Context, userID string) (*models.Teacher, error)
	Update(ctx context.Context, t *models.Teacher) error
	Search(ctx context.Context, f TeacherFilter) ([]*models.Teacher, int64, error)
	Featured(ctx context.Context, limit int) ([]*models.Teacher, error)
}

type mongoTeacherRepo struct {
	col *mongo.Collection
}

func NewMongoTeacherRepo(db *mongo.Database) TeacherRepository {
	col := db.Collection("teachers")
	_, _ = col.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{Keys: bson.D{{Key: "user.id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "rating", Value: -1}}},
	})
	return &mongoTeacherRepo{col: col}
}

func (r *mongoTeacherRepo) Create(ctx context.Context, t *models.Teacher) error {
	t.CreatedAt = time.Now().UTC()
	t.UpdatedAt = t.CreatedAt
	res, err := r.col.InsertOne(ctx, t)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		t.ID = id
	}
	return nil
}

func (r *mongoTeacherRepo) FindByID(ctx context.Context, id string) (*models.Teacher, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var t models.Teacher
	err = r.col.FindOne(ctx, bson.M{"_id": objID}).Decode(&t)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *mongoTeacherRepo) FindByUserID(ctx context.Context, userID string) (*models.Teacher, error) {
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrNotFound
	}
	var t models.Teacher
	err = r.col.FindOne(ctx, bson.M{"user.id": objID}).Decode(&t)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *mongoTeacherRepo) Update(ctx context.Context, t *models.Teacher) error {
	t.UpdatedAt = time.Now().UTC()
	res, err := r.col.UpdateByID(ctx, t.ID, bson.M{"$set": t})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoTeacherRepo) Search(ctx context.Context, f TeacherFilter) ([]*models.Teacher, int64, error) {
	f.Normalize()

	query := bson.M{"is_active": true}
	if f.Search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"user.name": re},
			bson.M{"subjects": re},
			bson.M{"bio": re},
		}
	}
	if f.Subject != "" {
		query["subjects"] = f.Subject
	}
	if f.Location != "" {
		query["user.location"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.Location), Options: "i"}
	}
	if f.MinPrice != nil || f.MaxPrice != nil {
		rate := bson.M{}
		if f.MinPrice != nil {
			rate["$gte"] = *f.MinPrice
		}
		if f.MaxPrice != nil {
			rate["$lte"] = *f.MaxPrice
		}
		query["hourly_rate"] = rate
	}
	if f.MinRating != nil {
		query["rating"] = bson.M{"$gte": *f.MinRating}
	}

	var sortDoc bson.D
	switch f.SortBy {
	case "price-low":
		sortDoc = bson.D{{Key: "hourly_rate", Value: 1}}
	case "price-high":
		sortDoc = bson.D{{Key: "hourly_rate", Value: -1}}
	default:
		sortDoc = bson.D{{Key: "rating", Value: -1}}
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(sortDoc).
		SetSkip(int64((f.Page - 1) * f.Limit)).
		SetLimit(int64(f.Limit))
	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var teachers []*models.Teacher
	if err := cur.All(ctx, &teachers); err != nil {
		return nil, 0, err
	}
	return teachers, total, nil
}

func (r *mongoTeacherRepo) Featured(ctx context.Context, limit int) ([]*models.Teacher, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "rating", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := r.col.Find(ctx, bson.M{"is_featured": true, "is_active": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var teachers []*models.Teacher
	if err := cur.All(ctx, &teachers); err != nil {
		return nil, err
	}
	return teachers, nil
}
