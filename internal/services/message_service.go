package services

import (
	"context"

	"social-media-service/internal/models"
	"social-media-service/internal/repositories"
)

// MessageService delegates message operations to the repository.
type MessageService struct {
	repo repositories.MessageRepository
}

// NewMessageService constructs MessageService.
func NewMessageService(repo repositories.MessageRepository) *MessageService {
	return &MessageService{repo: repo}
}

// Post persists a new message.
func (s *MessageService) Post(ctx context.Context, msg models.Message) (models.Message, error) {
	return s.repo.CreateMessage(ctx, msg)
}

// List returns all messages.
func (s *MessageService) List(ctx context.Context) ([]models.Message, error) {
	return s.repo.ListMessages(ctx)
}

// ListByAccount returns all messages posted by the account.
func (s *MessageService) ListByAccount(ctx context.Context, postedBy int) ([]models.Message, error) {
	return s.repo.ListMessagesByAccount(ctx, postedBy)
}

// Get returns a message by id.
func (s *MessageService) Get(ctx context.Context, messageID int) (models.Message, error) {
	return s.repo.GetMessage(ctx, messageID)
}

// Delete removes a message by id and returns the deleted row.
func (s *MessageService) Delete(ctx context.Context, messageID int) (models.Message, error) {
	return s.repo.DeleteMessage(ctx, messageID)
}

// UpdateText replaces a message's text and returns the updated row.
func (s *MessageService) UpdateText(ctx context.Context, messageID int, text string) (models.Message, error) {
	return s.repo.UpdateMessageText(ctx, messageID, text)
}
