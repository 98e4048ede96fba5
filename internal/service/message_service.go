package service

import (
	"context"
	"fmt"

	apperrors "github.com/HimanshuAlien/college-management-system/internal/errors"
	"github.com/HimanshuAlien/college-management-system/internal/model"
	"github.com/HimanshuAlien/college-management-system/internal/repository"
)

// Conversation groups a user's messages with one partner, newest first.
type Conversation struct {
	Partner     *model.User     `json:"partner"`
	Messages    []model.Message `json:"messages"`
	UnreadCount int             `json:"unreadCount"`
	LastMessage *model.Message  `json:"lastMessage"`
}

// MessageService exposes direct messaging, shared by every role.
type MessageService interface {
	Conversations(ctx context.Context, userID uint) ([]Conversation, error)
	Send(ctx context.Context, senderID, receiverID uint, content string) (*model.Message, error)
}

type messageService struct {
	messages repository.MessageRepository
	users    repository.UserRepository
}

// NewMessageService builds a MessageService.
func NewMessageService(messages repository.MessageRepository, users repository.UserRepository) MessageService {
	return &messageService{messages: messages, users: users}
}

// Conversations folds the user's message history into one entry per partner.
// Messages arrive newest-first from the repository, so the first message seen
// for a partner is the conversation's last message.
func (s *messageService) Conversations(ctx context.Context, userID uint) ([]Conversation, error) {
	messages, err := s.messages.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	byPartner := make(map[uint]*Conversation)
	order := make([]uint, 0)

	for i := range messages {
		message := messages[i]

		partnerID := message.SenderID
		partner := message.Sender
		if message.SenderID == userID {
			partnerID = message.ReceiverID
			partner = message.Receiver
		}

		conv, ok := byPartner[partnerID]
		if !ok {
			conv = &Conversation{Partner: partner, LastMessage: &messages[i]}
			byPartner[partnerID] = conv
			order = append(order, partnerID)
		}
		conv.Messages = append(conv.Messages, message)
		if message.ReceiverID == userID && !message.IsRead {
			conv.UnreadCount++
		}
	}

	out := make([]Conversation, 0, len(order))
	for _, partnerID := range order {
		out = append(out, *byPartner[partnerID])
	}
	return out, nil
}

func (s *messageService) Send(ctx context.Context, senderID, receiverID uint, content string) (*model.Message, error) {
	if receiverID == 0 || content == "" {
		return nil, apperrors.ErrValidation
	}
	if _, err := s.users.FindByID(ctx, receiverID); err != nil {
		return nil, apperrors.ErrUserNotFound
	}

	message := &model.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
	}
	if err := s.messages.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}
	return s.messages.FindByID(ctx, message.ID)
}
