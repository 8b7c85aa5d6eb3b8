package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rotemgl/jars_backend/internal/domain"
)

type catImageRepository struct {
	db *sql.DB
}

func NewCatImageRepository(db *sql.DB) domain.CatImageRepository {
	return &catImageRepository{db: db}
}

func (r *catImageRepository) GetAll(ctx context.Context) ([]domain.CatImage, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, url, thumbnail_url, "order"
		FROM cat_images
		ORDER BY "order" ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []domain.CatImage
	for rows.Next() {
		var img domain.CatImage
		if err := rows.Scan(&img.ID, &img.URL, &img.ThumbnailURL, &img.Order); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

func (r *catImageRepository) Create(ctx context.Context, image *domain.CatImage) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cat_images (id, url, thumbnail_url, "order")
		VALUES ($1, $2, $3, $4)
	`, image.ID, image.URL, image.ThumbnailURL, image.Order)
	return err
}

func (r *catImageRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM cat_images WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("image not found: %s", id)
	}
	return nil
}

// UpsertAll writes every record's order in a single transaction so a partial
// failure never leaves a mixed ordering behind.
func (r *catImageRepository) UpsertAll(ctx context.Context, images []domain.CatImage) error {
	if len(images) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO cat_images (id, url, thumbnail_url, "order")
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET url = EXCLUDED.url,
		    thumbnail_url = EXCLUDED.thumbnail_url,
		    "order" = EXCLUDED."order"
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, img := range images {
		if _, err := stmt.ExecContext(ctx, img.ID, img.URL, img.ThumbnailURL, img.Order); err != nil {
			return err
		}
	}

	return tx.Commit()
}
