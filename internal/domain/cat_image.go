package domain

import "context"

// CatImage is one photo in the cat gallery. ID is a uuid generated at intake
// and doubles as the storage object key prefix for both derivatives.
type CatImage struct {
	ID           string `json:"id"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url"`
	Order        int    `json:"order"`
}

type CatImageRepository interface {
	GetAll(ctx context.Context) ([]CatImage, error)
	Create(ctx context.Context, image *CatImage) error
	Delete(ctx context.Context, id string) error
	// UpsertAll persists every record's order in one transaction, keyed by id.
	UpsertAll(ctx context.Context, images []CatImage) error
}
