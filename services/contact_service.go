package services

import (
	"context"
	"strings"

	"github.com/Maharshi2203/Sattys-main/models"
	"github.com/Maharshi2203/Sattys-main/repository"
	"go.uber.org/zap"
)

// ContactService handles storefront contact messages.
type ContactService interface {
	Submit(ctx context.Context, req *models.ContactRequest) (*models.ContactMessage, *ServiceError)
	List(ctx context.Context, page, perPage int) ([]models.ContactMessage, int64, *ServiceError)
	MarkRead(ctx context.Context, id uint) *ServiceError
	Delete(ctx context.Context, id uint) *ServiceError
}

type contactServiceImpl struct {
	repo   repository.ContactRepository
	logger *zap.Logger
}

func NewContactService(repo repository.ContactRepository, logger *zap.Logger) ContactService {
	return &contactServiceImpl{repo: repo, logger: logger}
}

func (s *contactServiceImpl) Submit(ctx context.Context, req *models.ContactRequest) (*models.ContactMessage, *ServiceError) {
	msg := &models.ContactMessage{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Message: strings.TrimSpace(req.Message),
	}
	if err := s.repo.Create(ctx, msg); err != nil {
		s.logger.Error("Failed to store contact message", zap.Error(err))
		return nil, internal("Failed to send message")
	}
	return msg, nil
}

func (s *contactServiceImpl) List(ctx context.Context, page, perPage int) ([]models.ContactMessage, int64, *ServiceError) {
	msgs, total, err := s.repo.FindAll(ctx, page, perPage)
	if err != nil {
		s.logger.Error("Failed to list contact messages", zap.Error(err))
		return nil, 0, internal("Failed to fetch messages")
	}
	if msgs == nil {
		msgs = []models.ContactMessage{}
	}
	return msgs, total, nil
}

func (s *contactServiceImpl) MarkRead(ctx context.Context, id uint) *ServiceError {
	if err := s.repo.MarkRead(ctx, id); err != nil {
		if isNotFound(err) {
			return notFound("Message not found")
		}
		s.logger.Error("Failed to mark message read", zap.Uint("message_id", id), zap.Error(err))
		return internal("Failed to update message")
	}
	return nil
}

func (s *contactServiceImpl) Delete(ctx context.Context, id uint) *ServiceError {
	if err := s.repo.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return notFound("Message not found")
		}
		s.logger.Error("Failed to delete message", zap.Uint("message_id", id), zap.Error(err))
		return internal("Failed to delete message")
	}
	return nil
}
