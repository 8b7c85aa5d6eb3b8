package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rotemgl/jars_backend/internal/domain"
)

// ProcessInput carries the admin form fields for a preparation process.
type ProcessInput struct {
	Name                string               `json:"name"`
	Description         string               `json:"description"`
	FurtherReadingLinks []domain.ReadingLink `json:"further_reading_links"`
}

type ProcessService struct {
	repo  domain.ProcessRepository
	newID func() string
}

func NewProcessService(repo domain.ProcessRepository) *ProcessService {
	return &ProcessService{repo: repo, newID: uuid.NewString}
}

func (s *ProcessService) List(ctx context.Context) ([]domain.Process, error) {
	return s.repo.GetAll(ctx)
}

func (s *ProcessService) Get(ctx context.Context, id string) (*domain.Process, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ProcessService) Create(ctx context.Context, input ProcessInput) (*domain.Process, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("process name is required")
	}
	process := &domain.Process{
		ID:                  s.newID(),
		Name:                input.Name,
		Description:         input.Description,
		FurtherReadingLinks: input.FurtherReadingLinks,
	}
	if err := s.repo.Create(ctx, process); err != nil {
		return nil, err
	}
	return process, nil
}

func (s *ProcessService) Update(ctx context.Context, id string, input ProcessInput) (*domain.Process, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("process name is required")
	}
	process := &domain.Process{
		ID:                  id,
		Name:                input.Name,
		Description:         input.Description,
		FurtherReadingLinks: input.FurtherReadingLinks,
	}
	if err := s.repo.Update(ctx, process); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *ProcessService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
