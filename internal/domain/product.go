package domain

import (
	"context"
	"time"
)

// Product is one jar in the catalog.
type Product struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	ImageURL     string    `json:"image_url"`
	WhatIsIt     string    `json:"what_is_it"`
	WhatToDo     string    `json:"what_to_do"`
	Instructions string    `json:"instructions,omitempty"`
	Featured     bool      `json:"featured"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Preparation processes linked through product_processes.
	Processes []Process `json:"processes,omitempty"`
}

type ProductRepository interface {
	GetAll(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	Create(ctx context.Context, product *Product) error
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id string) error
	// ReplaceProcessLinks swaps the full set of process links for a product.
	ReplaceProcessLinks(ctx context.Context, productID string, processIDs []string) error
}
