package application

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/rotemgl/jars_backend/internal/domain"
	"github.com/rotemgl/jars_backend/internal/email"
)

type ContactService struct {
	repo        domain.ContactRepository
	mailer      *email.Client
	notifyEmail string
	validator   *Validator
}

// NewContactService builds the contact service. mailer may be nil, in which
// case submissions are stored without a notification mail.
func NewContactService(repo domain.ContactRepository, mailer *email.Client, notifyEmail string) *ContactService {
	return &ContactService{
		repo:        repo,
		mailer:      mailer,
		notifyEmail: notifyEmail,
		validator:   &Validator{},
	}
}

// Create stores a contact form submission and sends a best-effort
// notification mail to the business.
func (s *ContactService) Create(ctx context.Context, req domain.CreateContactRequest) (int64, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Message = strings.TrimSpace(req.Message)

	if req.Name == "" {
		return 0, fmt.Errorf("name is required")
	}
	if req.Message == "" {
		return 0, fmt.Errorf("message is required")
	}
	if err := s.validator.ValidateEmail(req.Email); err != nil {
		return 0, err
	}
	if req.Phone != "" {
		if err := s.validator.ValidatePhone(req.Phone); err != nil {
			return 0, err
		}
	}

	id, err := s.repo.Create(ctx, req)
	if err != nil {
		return 0, fmt.Errorf("failed to save contact message: %w", err)
	}

	if s.mailer != nil && s.notifyEmail != "" {
		msg := domain.ContactMessage{
			ID:      id,
			Name:    req.Name,
			Email:   req.Email,
			Phone:   req.Phone,
			Message: req.Message,
		}
		if err := s.mailer.SendContactNotification(s.notifyEmail, msg); err != nil {
			log.Printf("contact notification mail failed for message %d: %v", id, err)
		}
	}

	return id, nil
}

func (s *ContactService) List(ctx context.Context) ([]domain.ContactMessage, error) {
	return s.repo.List(ctx)
}
