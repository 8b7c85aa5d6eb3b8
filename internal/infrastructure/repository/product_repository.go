package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rotemgl/jars_backend/internal/domain"
)

type productRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) domain.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) GetAll(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, description, image_url, what_is_it, what_to_do,
		       COALESCE(instructions, ''), featured, created_at, updated_at
		FROM products
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.ImageURL,
			&p.WhatIsIt, &p.WhatToDo, &p.Instructions,
			&p.Featured, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range products {
		processes, err := r.processesFor(ctx, products[i].ID)
		if err != nil {
			return nil, err
		}
		products[i].Processes = processes
	}
	return products, nil
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, description, image_url, what_is_it, what_to_do,
		       COALESCE(instructions, ''), featured, created_at, updated_at
		FROM products
		WHERE id = $1
	`, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.ImageURL,
		&p.WhatIsIt, &p.WhatToDo, &p.Instructions,
		&p.Featured, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("product not found: %s", id)
		}
		return nil, err
	}

	processes, err := r.processesFor(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Processes = processes
	return &p, nil
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO products (id, name, description, image_url, what_is_it, what_to_do, instructions, featured)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`,
		product.ID, product.Name, product.Description, product.ImageURL,
		product.WhatIsIt, product.WhatToDo, product.Instructions, product.Featured,
	).Scan(&product.CreatedAt, &product.UpdatedAt)
}

func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET name = $1, description = $2, image_url = $3, what_is_it = $4,
		    what_to_do = $5, instructions = $6, featured = $7, updated_at = NOW()
		WHERE id = $8
	`,
		product.Name, product.Description, product.ImageURL, product.WhatIsIt,
		product.WhatToDo, product.Instructions, product.Featured, product.ID,
	)
	if err != nil {
		return err
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("product not found: %s", product.ID)
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("product not found: %s", id)
	}
	return nil
}

// ReplaceProcessLinks rewrites the product's process set the way the admin
// form submits it: drop everything, insert the new selection.
func (r *productRepository) ReplaceProcessLinks(ctx context.Context, productID string, processIDs []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM product_processes WHERE product_id = $1`, productID); err != nil {
		return err
	}

	for _, processID := range processIDs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO product_processes (product_id, process_id)
			VALUES ($1, $2)
		`, productID, processID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *productRepository) processesFor(ctx context.Context, productID string) ([]domain.Process, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT p.id, p.name, p.description, COALESCE(p.further_reading_links, '[]'), p.created_at, p.updated_at
		FROM processes p
		JOIN product_processes pp ON pp.process_id = p.id
		WHERE pp.product_id = $1
		ORDER BY p.name
	`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProcesses(rows)
}
