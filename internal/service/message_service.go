package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/amirsoft21/bementor/internal/models"
	"github.com/amirsoft21/bementor/internal/repository"
)

// MessageService persists conversations and messages. Delivery is
// poll-based; there are no real-time guarantees.
type MessageService struct {
	messages repository.MessageRepository
	users    repository.UserRepository
}

func NewMessageService(messages repository.MessageRepository, users repository.UserRepository) *MessageService {
	return &MessageService{messages: messages, users: users}
}

func (s *MessageService) Conversations(ctx context.Context, userID string) ([]*models.Conversation, error) {
	return s.messages.ConversationsByUser(ctx, userID)
}

func (s *MessageService) Send(ctx context.Context, senderID, recipientID, content string) (*models.Message, error) {
	if _, err := s.users.FindByID(ctx, recipientID); err != nil {
		return nil, err
	}

	conv, err := s.messages.FindOrCreateConversation(ctx, senderID, recipientID)
	if err != nil {
		return nil, err
	}

	sID, err := primitive.ObjectIDFromHex(senderID)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	rID, err := primitive.ObjectIDFromHex(recipientID)
	if err != nil {
		return nil, repository.ErrNotFound
	}

	m := &models.Message{
		ConversationID: conv.ID,
		SenderID:       sID,
		RecipientID:    rID,
		Content:        content,
	}
	if err := s.messages.SaveMessage(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// ConversationMessages is participant-only.
func (s *MessageService) ConversationMessages(ctx context.Context, userID, conversationID string, limit int) ([]*models.Message, error) {
	conv, err := s.messages.ConversationByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	uID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	if !conv.HasParticipant(uID) {
		return nil, ErrNotOwner
	}
	return s.messages.MessagesByConversation(ctx, conversationID, limit)
}
