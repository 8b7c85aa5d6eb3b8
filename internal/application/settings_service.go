package application

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/rotemgl/jars_backend/internal/domain"
	"github.com/rotemgl/jars_backend/internal/infrastructure/notify"
)

// ShowCatsPageKey gates the public cat gallery page and its navigation link.
const ShowCatsPageKey = "show_cats_page"

// SettingsService owns the site's boolean switches. The cache holds the last
// confirmed value per key: a write flips it optimistically and flips it back
// if the upsert fails, so readers never see a value that was never durably
// committed.
type SettingsService struct {
	repo domain.SettingsRepository
	now  func() time.Time

	mu     sync.Mutex
	cache  map[string]bool
	loaded map[string]bool

	subMu sync.Mutex
	subs  map[chan notify.SettingChange]struct{}
}

func NewSettingsService(repo domain.SettingsRepository) *SettingsService {
	return &SettingsService{
		repo:   repo,
		now:    time.Now,
		cache:  make(map[string]bool),
		loaded: make(map[string]bool),
		subs:   make(map[chan notify.SettingChange]struct{}),
	}
}

// Get returns the setting's last confirmed value, fetching it on first use.
// A key that was never written defaults to true.
func (s *SettingsService) Get(ctx context.Context, key string) (bool, error) {
	s.mu.Lock()
	if s.loaded[key] {
		v := s.cache[key]
		s.mu.Unlock()
		return v, nil
	}
	s.mu.Unlock()

	setting, err := s.repo.GetByKey(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrSettingNotFound) {
			s.confirm(key, true)
			return true, nil
		}
		return false, fmt.Errorf("failed to read setting %s: %w", key, err)
	}

	s.confirm(key, setting.Value)
	return setting.Value, nil
}

// Toggle negates the setting, applies the new value optimistically, and
// persists it. On failure the cached value reverts and the error is returned;
// there is no automatic retry.
func (s *SettingsService) Toggle(ctx context.Context, key string) (bool, error) {
	current, err := s.Get(ctx, key)
	if err != nil {
		return false, err
	}
	newValue := !current

	s.confirm(key, newValue)

	err = s.repo.Upsert(ctx, domain.SiteSetting{
		Key:       key,
		Value:     newValue,
		UpdatedAt: s.now().UTC(),
	})
	if err != nil {
		s.confirm(key, current)
		return current, fmt.Errorf("failed to update setting %s: %w", key, err)
	}

	s.broadcast(notify.SettingChange{Key: key, Value: newValue})
	return newValue, nil
}

func (s *SettingsService) confirm(key string, value bool) {
	s.mu.Lock()
	s.cache[key] = value
	s.loaded[key] = true
	s.mu.Unlock()
}

// Watch consumes external change notifications (another admin session wrote
// the row) and folds them into the cache and local subscribers. Returns when
// the channel closes or ctx is done.
func (s *SettingsService) Watch(ctx context.Context, changes <-chan notify.SettingChange) {
	for {
		select {
		case change, ok := <-changes:
			if !ok {
				return
			}
			log.Printf("setting %s changed externally to %t", change.Key, change.Value)
			s.confirm(change.Key, change.Value)
			s.broadcast(change)
		case <-ctx.Done():
			return
		}
	}
}

// Subscribe registers a channel that receives every confirmed change,
// whether it originated here or in another session.
func (s *SettingsService) Subscribe() chan notify.SettingChange {
	ch := make(chan notify.SettingChange, 8)
	s.subMu.Lock()
	s.subs[ch] = struct{}{}
	s.subMu.Unlock()
	return ch
}

func (s *SettingsService) Unsubscribe(ch chan notify.SettingChange) {
	s.subMu.Lock()
	if _, ok := s.subs[ch]; ok {
		delete(s.subs, ch)
		close(ch)
	}
	s.subMu.Unlock()
}

func (s *SettingsService) broadcast(change notify.SettingChange) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for ch := range s.subs {
		select {
		case ch <- change:
		default:
			// a session that is not draining misses the event and stays
			// stale until its next full load
		}
	}
}
