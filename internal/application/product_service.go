package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rotemgl/jars_backend/internal/domain"
)

// ProductInput carries the admin form fields for create/update.
type ProductInput struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	ImageURL     string   `json:"image_url"`
	WhatIsIt     string   `json:"what_is_it"`
	WhatToDo     string   `json:"what_to_do"`
	Instructions string   `json:"instructions"`
	Featured     bool     `json:"featured"`
	ProcessIDs   []string `json:"process_ids"`
}

type ProductService struct {
	repo     domain.ProductRepository
	store    GalleryObjectStore
	pipeline *ImagePipeline
	newID    func() string
}

func NewProductService(repo domain.ProductRepository, store GalleryObjectStore, pipeline *ImagePipeline) *ProductService {
	return &ProductService{
		repo:     repo,
		store:    store,
		pipeline: pipeline,
		newID:    uuid.NewString,
	}
}

func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.GetAll(ctx)
}

func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// Create inserts a new product and its process links.
func (s *ProductService) Create(ctx context.Context, input ProductInput) (*domain.Product, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("product name is required")
	}

	product := &domain.Product{
		ID:           s.newID(),
		Name:         input.Name,
		Description:  input.Description,
		ImageURL:     input.ImageURL,
		WhatIsIt:     input.WhatIsIt,
		WhatToDo:     input.WhatToDo,
		Instructions: input.Instructions,
		Featured:     input.Featured,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	if err := s.repo.ReplaceProcessLinks(ctx, product.ID, input.ProcessIDs); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, product.ID)
}

// Update rewrites the product row and replaces its process link set.
func (s *ProductService) Update(ctx context.Context, id string, input ProductInput) (*domain.Product, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("product name is required")
	}

	product := &domain.Product{
		ID:           id,
		Name:         input.Name,
		Description:  input.Description,
		ImageURL:     input.ImageURL,
		WhatIsIt:     input.WhatIsIt,
		WhatToDo:     input.WhatToDo,
		Instructions: input.Instructions,
		Featured:     input.Featured,
	}
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	if err := s.repo.ReplaceProcessLinks(ctx, id, input.ProcessIDs); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// UploadImage validates a product photo, normalizes its dimensions, and
// stores it under products/<uuid>.jpg with upsert semantics.
func (s *ProductService) UploadImage(ctx context.Context, file UploadFile) (string, error) {
	if err := s.pipeline.Validate(file); err != nil {
		return "", err
	}

	normalized, err := reencode(file.Data, fullMaxWidth)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedType, err)
	}

	key := "products/" + s.newID() + ".jpg"
	url, err := s.store.Upload(ctx, key, normalized, "image/jpeg")
	if err != nil {
		return "", ErrUploadFailed
	}
	return url, nil
}
