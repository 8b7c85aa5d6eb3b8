package domain

import (
	"context"
	"time"
)

// ReadingLink is one external reference attached to a process.
type ReadingLink struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Process is a preparation technique (fermentation, pickling, jam making).
type Process struct {
	ID                  string        `json:"id"`
	Name                string        `json:"name"`
	Description         string        `json:"description"`
	FurtherReadingLinks []ReadingLink `json:"further_reading_links,omitempty"`
	CreatedAt           time.Time     `json:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at"`
}

type ProcessRepository interface {
	GetAll(ctx context.Context) ([]Process, error)
	GetByID(ctx context.Context, id string) (*Process, error)
	Create(ctx context.Context, process *Process) error
	Update(ctx context.Context, process *Process) error
	Delete(ctx context.Context, id string) error
}
