package domain

import (
	"context"
	"time"
)

// ContactMessage is one submission of the public contact form.
type ContactMessage struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateContactRequest carries the fields a visitor fills in.
type CreateContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

type ContactRepository interface {
	Create(ctx context.Context, req CreateContactRequest) (int64, error)
	List(ctx context.Context) ([]ContactMessage, error)
}
