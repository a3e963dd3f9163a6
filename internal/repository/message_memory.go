package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/amirsoft21/bementor/internal/models"
)

// MemoryMessageRepo keeps conversations and their messages in process.
// Development only.
type MemoryMessageRepo struct {
	mu            sync.RWMutex
	conversations map[string]*models.Conversation
	messages      map[string][]*models.Message // conversation id -> ordered messages
}

func NewMemoryMessageRepo() *MemoryMessageRepo {
	return &MemoryMessageRepo{
		conversations: make(map[string]*models.Conversation),
		messages:      make(map[string][]*models.Message),
	}
}

func (r *MemoryMessageRepo) FindOrCreateConversation(_ context.Context, userA, userB string) (*models.Conversation, error) {
	aID, err := primitive.ObjectIDFromHex(userA)
	if err != nil {
		return nil, ErrNotFound
	}
	bID, err := primitive.ObjectIDFromHex(userB)
	if err != nil {
		return nil, ErrNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.conversations {
		if c.HasParticipant(aID) && c.HasParticipant(bID) {
			cp := *c
			return &cp, nil
		}
	}

	now := time.Now().UTC()
	conv := &models.Conversation{
		ID:           primitive.NewObjectID(),
		Participants: []primitive.ObjectID{aID, bID},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.conversations[conv.ID.Hex()] = conv
	cp := *conv
	return &cp, nil
}

func (r *MemoryMessageRepo) ConversationsByUser(_ context.Context, userID string) ([]*models.Conversation, error) {
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrNotFound
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	convs := make([]*models.Conversation, 0)
	for _, c := range r.conversations {
		if c.HasParticipant(objID) {
			cp := *c
			convs = append(convs, &cp)
		}
	}
	sort.Slice(convs, func(i, j int) bool { return convs[i].UpdatedAt.After(convs[j].UpdatedAt) })
	return convs, nil
}

func (r *MemoryMessageRepo) ConversationByID(_ context.Context, id string) (*models.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.conversations[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *MemoryMessageRepo) SaveMessage(_ context.Context, m *models.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	conv, ok := r.conversations[m.ConversationID.Hex()]
	if !ok {
		return ErrNotFound
	}

	if m.ID.IsZero() {
		m.ID = primitive.NewObjectID()
	}
	m.CreatedAt = time.Now().UTC()

	stored := *m
	key := m.ConversationID.Hex()
	r.messages[key] = append(r.messages[key], &stored)
	conv.LastMessage = m.Content
	conv.UpdatedAt = m.CreatedAt
	return nil
}

func (r *MemoryMessageRepo) MessagesByConversation(_ context.Context, conversationID string, limit int) ([]*models.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	msgs := r.messages[conversationID]
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	out := make([]*models.Message, 0, len(msgs))
	for _, m := range msgs {
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}
