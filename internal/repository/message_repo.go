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

type MessageRepository interface {
	FindOrCreateConversation(ctx context.Context, userA, userB string) (*models.Conversation, error)
	ConversationsByUser(ctx context.Context, userID string) ([]*models.Conversation, error)
	ConversationByID(ctx context.Context, id string) (*models.Conversation, error)
	SaveMessage(ctx context.Context, m *models.Message) error
	MessagesByConversation(ctx context.Context, conversationID string, limit int) ([]*models.Message, error)
}

type mongoMessageRepo struct {
	conversations *mongo.Collection
	messages      *mongo.Collection
}

func NewMongoMessageRepo(db *mongo.Database) MessageRepository {
	conversations := db.Collection("conversations")
	messages := db.Collection("messages")
	_, _ = conversations.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys: bson.D{{Key: "participants", Value: 1}},
	})
	_, _ = messages.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys: bson.D{{Key: "conversation_id", Value: 1}, {Key: "created_at", Value: 1}},
	})
	return &mongoMessageRepo{conversations: conversations, messages: messages}
}

func (r *mongoMessageRepo) FindOrCreateConversation(ctx context.Context, userA, userB string) (*models.Conversation, error) {
	aID, err := primitive.ObjectIDFromHex(userA)
	if err != nil {
		return nil, ErrNotFound
	}
	bID, err := primitive.ObjectIDFromHex(userB)
	if err != nil {
		return nil, ErrNotFound
	}

	now := time.Now().UTC()
	filter := bson.M{"participants": bson.M{"$all": bson.A{aID, bID}, "$size": 2}}
	update := bson.M{
		"$setOnInsert": bson.M{
			"participants": []primitive.ObjectID{aID, bID},
			"created_at":   now,
		},
		"$set": bson.M{"updated_at": now},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var conv models.Conversation
	if err := r.conversations.FindOneAndUpdate(ctx, filter, update, opts).Decode(&conv); err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *mongoMessageRepo) ConversationsByUser(ctx context.Context, userID string) ([]*models.Conversation, error) {
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrNotFound
	}
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	cur, err := r.conversations.Find(ctx, bson.M{"participants": objID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var convs []*models.Conversation
	if err := cur.All(ctx, &convs); err != nil {
		return nil, err
	}
	return convs, nil
}

func (r *mongoMessageRepo) ConversationByID(ctx context.Context, id string) (*models.Conversation, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var conv models.Conversation
	err = r.conversations.FindOne(ctx, bson.M{"_id": objID}).Decode(&conv)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *mongoMessageRepo) SaveMessage(ctx context.Context, m *models.Message) error {
	m.CreatedAt = time.Now().UTC()
	res, err := r.messages.InsertOne(ctx, m)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		m.ID = id
	}
	_, err = r.conversations.UpdateByID(ctx, m.ConversationID, bson.M{"$set": bson.M{
		"last_message": m.Content,
		"updated_at":   m.CreatedAt,
	}})
	return err
}

func (r *mongoMessageRepo) MessagesByConversation(ctx context.Context, conversationID string, limit int) ([]*models.Message, error) {
	objID, err := primitive.ObjectIDFromHex(conversationID)
	if err != nil {
		return nil, ErrNotFound
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cur, err := r.messages.Find(ctx, bson.M{"conversation_id": objID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var msgs []*models.Message
	if err := cur.All(ctx, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}
