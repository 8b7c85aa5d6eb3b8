package application

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rotemgl/jars_backend/internal/domain"
	"github.com/rotemgl/jars_backend/internal/infrastructure/notify"
)

type fakeSettingsRepo struct {
	mu         sync.Mutex
	rows       map[string]domain.SiteSetting
	failUpsert bool
	upserts    int
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{rows: make(map[string]domain.SiteSetting)}
}

func (r *fakeSettingsRepo) GetByKey(ctx context.Context, key string) (*domain.SiteSetting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	setting, ok := r.rows[key]
	if !ok {
		return nil, domain.ErrSettingNotFound
	}
	return &setting, nil
}

func (r *fakeSettingsRepo) Upsert(ctx context.Context, setting domain.SiteSetting) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.upserts++
	if r.failUpsert {
		return errors.New("write refused")
	}
	r.rows[setting.Key] = setting
	return nil
}

func (r *fakeSettingsRepo) stored(key string) (bool, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	setting, ok := r.rows[key]
	return setting.Value, ok
}

func TestSettingsGet(t *testing.T) {
	ctx := context.Background()

	t.Run("missing row defaults to visible", func(t *testing.T) {
		svc := NewSettingsService(newFakeSettingsRepo())
		value, err := svc.Get(ctx, ShowCatsPageKey)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !value {
			t.Error("expected default true for an unset key")
		}
	})

	t.Run("existing row wins over the default", func(t *testing.T) {
		repo := newFakeSettingsRepo()
		repo.rows[ShowCatsPageKey] = domain.SiteSetting{Key: ShowCatsPageKey, Value: false}
		svc := NewSettingsService(repo)

		value, err := svc.Get(ctx, ShowCatsPageKey)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if value {
			t.Error("expected stored false")
		}
	})
}

func TestSettingsToggle(t *testing.T) {
	ctx := context.Background()

	t.Run("successful toggle persists and flips", func(t *testing.T) {
		repo := newFakeSettingsRepo()
		svc := NewSettingsService(repo)
		svc.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

		value, err := svc.Toggle(ctx, ShowCatsPageKey)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if value {
			t.Error("toggle from default true should yield false")
		}

		stored, ok := repo.stored(ShowCatsPageKey)
		if !ok || stored {
			t.Errorf("stored value = %t (exists=%t), want false", stored, ok)
		}
		if got, _ := svc.Get(ctx, ShowCatsPageKey); got {
			t.Error("cached value should be the confirmed false")
		}
	})

	t.Run("failed toggle rolls back to the prior value", func(t *testing.T) {
		repo := newFakeSettingsRepo()
		repo.rows[ShowCatsPageKey] = domain.SiteSetting{Key: ShowCatsPageKey, Value: true}
		repo.failUpsert = true
		svc := NewSettingsService(repo)

		value, err := svc.Toggle(ctx, ShowCatsPageKey)
		if err == nil {
			t.Fatal("expected an error")
		}
		if !value {
			t.Error("failed toggle should report the pre-toggle value")
		}
		if got, _ := svc.Get(ctx, ShowCatsPageKey); !got {
			t.Error("cache should have rolled back to true")
		}
		if stored, _ := repo.stored(ShowCatsPageKey); !stored {
			t.Error("durable value must be unchanged by a failed write")
		}
	})

	t.Run("subscribers see confirmed toggles", func(t *testing.T) {
		svc := NewSettingsService(newFakeSettingsRepo())
		ch := svc.Subscribe()
		defer svc.Unsubscribe(ch)

		if _, err := svc.Toggle(ctx, ShowCatsPageKey); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		select {
		case change := <-ch:
			if change.Key != ShowCatsPageKey || change.Value {
				t.Errorf("got %+v, want {show_cats_page false}", change)
			}
		case <-time.After(time.Second):
			t.Fatal("no change event received")
		}
	})

	t.Run("failed toggle notifies nobody", func(t *testing.T) {
		repo := newFakeSettingsRepo()
		repo.failUpsert = true
		svc := NewSettingsService(repo)
		ch := svc.Subscribe()
		defer svc.Unsubscribe(ch)

		svc.Toggle(ctx, ShowCatsPageKey)

		select {
		case change := <-ch:
			t.Fatalf("unexpected change event %+v", change)
		case <-time.After(50 * time.Millisecond):
		}
	})
}

func TestSettingsWatch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc := NewSettingsService(newFakeSettingsRepo())
	sub := svc.Subscribe()
	defer svc.Unsubscribe(sub)

	changes := make(chan notify.SettingChange)
	done := make(chan struct{})
	go func() {
		svc.Watch(ctx, changes)
		close(done)
	}()

	// another session flipped the flag; this one only hears about it
	changes <- notify.SettingChange{Key: ShowCatsPageKey, Value: false}

	select {
	case change := <-sub:
		if change.Value {
			t.Errorf("got %+v, want value false", change)
		}
	case <-time.After(time.Second):
		t.Fatal("external change was not fanned out")
	}

	if value, err := svc.Get(context.Background(), ShowCatsPageKey); err != nil || value {
		t.Errorf("Get = %t, %v; want false after external change", value, err)
	}

	close(changes)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Watch did not return on channel close")
	}
}
