package application

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/rotemgl/jars_backend/internal/domain"
)

// GalleryObjectStore is the blob-storage surface the gallery needs.
type GalleryObjectStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Remove(ctx context.Context, key string) error
}

// UploadError is one file's failure inside a batch.
type UploadError struct {
	Index   int    `json:"index"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

// BatchResult reports what an upload batch produced.
type BatchResult struct {
	Created []domain.CatImage `json:"created"`
	Errors  []UploadError     `json:"errors,omitempty"`
}

// ProgressFunc observes batch progress as completed/total counts. A file
// counts as completed whether it succeeded or failed.
type ProgressFunc func(completed, total int)

// GalleryService owns the ordered list of cat images and keeps blob storage
// and the database consistent with it. The cached list is the displayed
// state: structural operations mutate it first and then persist, so a failed
// persist leaves a divergence that the next full load corrects.
type GalleryService struct {
	repo     domain.CatImageRepository
	store    GalleryObjectStore
	pipeline *ImagePipeline
	newID    func() string

	mu     sync.Mutex
	images []domain.CatImage
	loaded bool
}

func NewGalleryService(repo domain.CatImageRepository, store GalleryObjectStore, pipeline *ImagePipeline) *GalleryService {
	return &GalleryService{
		repo:     repo,
		store:    store,
		pipeline: pipeline,
		newID:    uuid.NewString,
	}
}

// Images returns the gallery in display order, loading it on first use.
func (s *GalleryService) Images(ctx context.Context) ([]domain.CatImage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadLocked(ctx); err != nil {
		return nil, err
	}
	out := make([]domain.CatImage, len(s.images))
	copy(out, s.images)
	return out, nil
}

// Reload drops the cache so the next read fetches fresh state.
func (s *GalleryService) Reload() {
	s.mu.Lock()
	s.loaded = false
	s.images = nil
	s.mu.Unlock()
}

func (s *GalleryService) loadLocked(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	images, err := s.repo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load gallery: %w", err)
	}
	s.images = images
	s.loaded = true
	return nil
}

// UploadBatch processes files one at a time in order. Every file resolves to
// either a created record or a recorded error before the next file starts;
// one bad file never aborts the rest of the batch.
func (s *GalleryService) UploadBatch(ctx context.Context, files []UploadFile, onProgress ProgressFunc) (*BatchResult, error) {
	s.mu.Lock()
	if err := s.loadLocked(ctx); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	baseLen := len(s.images)
	s.mu.Unlock()

	result := &BatchResult{}
	total := len(files)

	for i, file := range files {
		img, err := s.uploadOne(ctx, file, baseLen+i)
		if err != nil {
			result.Errors = append(result.Errors, UploadError{
				Index:   i,
				Name:    file.Name,
				Message: err.Error(),
			})
		} else {
			result.Created = append(result.Created, *img)
		}
		if onProgress != nil {
			onProgress(i+1, total)
		}
	}
	return result, nil
}

func (s *GalleryService) uploadOne(ctx context.Context, file UploadFile, order int) (*domain.CatImage, error) {
	pair, err := s.pipeline.ProcessFile(ctx, file)
	if err != nil {
		return nil, err
	}

	id := s.newID()
	fullKey := id + ".jpg"
	thumbKey := "thumbnails/" + id + ".jpg"

	// both derivatives go up concurrently, like the two encodes that made them
	var (
		wg                sync.WaitGroup
		url, thumbnailURL string
		fullErr, thumbErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		url, fullErr = s.store.Upload(ctx, fullKey, pair.Full, "image/jpeg")
	}()
	go func() {
		defer wg.Done()
		thumbnailURL, thumbErr = s.store.Upload(ctx, thumbKey, pair.Thumbnail, "image/jpeg")
	}()
	wg.Wait()

	if fullErr != nil || thumbErr != nil {
		log.Printf("gallery upload failed for %s (full=%v thumb=%v)", id, fullErr, thumbErr)
		return nil, ErrUploadFailed
	}

	img := domain.CatImage{
		ID:           id,
		URL:          url,
		ThumbnailURL: thumbnailURL,
		Order:        order,
	}
	if err := s.repo.Create(ctx, &img); err != nil {
		// the uploaded blobs are now orphaned; left for manual cleanup
		log.Printf("gallery record insert failed for %s, objects %s and %s orphaned: %v", id, fullKey, thumbKey, err)
		return nil, fmt.Errorf("failed to save image record: %w", err)
	}

	s.mu.Lock()
	s.images = append(s.images, img)
	s.mu.Unlock()
	return &img, nil
}

// Delete removes both stored derivatives and the record, then compacts the
// remaining records into a dense 0-based order. A storage removal failure
// stops the operation before the record is touched.
func (s *GalleryService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	if err := s.loadLocked(ctx); err != nil {
		s.mu.Unlock()
		return err
	}
	found := false
	for _, img := range s.images {
		if img.ID == id {
			found = true
			break
		}
	}
	s.mu.Unlock()
	if !found {
		return fmt.Errorf("image not found: %s", id)
	}

	if err := s.store.Remove(ctx, id+".jpg"); err != nil {
		return fmt.Errorf("failed to remove stored image: %w", err)
	}
	if err := s.store.Remove(ctx, "thumbnails/"+id+".jpg"); err != nil {
		return fmt.Errorf("failed to remove stored thumbnail: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete image record: %w", err)
	}

	s.mu.Lock()
	remaining := make([]domain.CatImage, 0, len(s.images)-1)
	for _, img := range s.images {
		if img.ID != id {
			img.Order = len(remaining)
			remaining = append(remaining, img)
		}
	}
	s.images = remaining
	snapshot := make([]domain.CatImage, len(remaining))
	copy(snapshot, remaining)
	s.mu.Unlock()

	// displayed state already advanced; a failed resync diverges until reload
	if err := s.repo.UpsertAll(ctx, snapshot); err != nil {
		log.Printf("gallery order resync after delete failed: %v", err)
		return fmt.Errorf("failed to resync image order: %w", err)
	}
	return nil
}

// Move relocates the dragged image to the position of the target image and
// reindexes the whole list. The cached list advances before persistence, so
// a failed resync is surfaced but not rolled back.
func (s *GalleryService) Move(ctx context.Context, draggedID, targetID string) error {
	if draggedID == targetID {
		return nil
	}

	s.mu.Lock()
	if err := s.loadLocked(ctx); err != nil {
		s.mu.Unlock()
		return err
	}
	reordered, err := moveImage(s.images, draggedID, targetID)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.images = reordered
	snapshot := make([]domain.CatImage, len(reordered))
	copy(snapshot, reordered)
	s.mu.Unlock()

	if err := s.repo.UpsertAll(ctx, snapshot); err != nil {
		log.Printf("gallery order resync after move failed: %v", err)
		return fmt.Errorf("failed to resync image order: %w", err)
	}
	return nil
}

// Resync persists the current cached ordering in one batched upsert.
func (s *GalleryService) Resync(ctx context.Context) error {
	s.mu.Lock()
	if err := s.loadLocked(ctx); err != nil {
		s.mu.Unlock()
		return err
	}
	snapshot := make([]domain.CatImage, len(s.images))
	copy(snapshot, s.images)
	s.mu.Unlock()

	return s.repo.UpsertAll(ctx, snapshot)
}
