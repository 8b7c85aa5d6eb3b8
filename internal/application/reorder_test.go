package application

import (
	"testing"

	"github.com/rotemgl/jars_backend/internal/domain"
)

func galleryOf(ids ...string) []domain.CatImage {
	images := make([]domain.CatImage, len(ids))
	for i, id := range ids {
		images[i] = domain.CatImage{ID: id, Order: i}
	}
	return images
}

func TestMoveImage(t *testing.T) {
	tests := []struct {
		name    string
		start   []string
		dragged string
		target  string
		want    []string
	}{
		{"move backward to front", []string{"a", "b", "c"}, "c", "a", []string{"c", "a", "b"}},
		{"move forward to end", []string{"a", "b", "c"}, "a", "c", []string{"b", "c", "a"}},
		{"move to middle", []string{"a", "b", "c", "d"}, "d", "b", []string{"a", "d", "b", "c"}},
		{"adjacent swap", []string{"a", "b"}, "b", "a", []string{"b", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := moveImage(galleryOf(tt.start...), tt.dragged, tt.target)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d items, want %d", len(got), len(tt.want))
			}
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Errorf("position %d = %s, want %s", i, got[i].ID, id)
				}
				if got[i].Order != i {
					t.Errorf("%s order = %d, want %d", got[i].ID, got[i].Order, i)
				}
			}
		})
	}

	t.Run("unknown dragged id", func(t *testing.T) {
		if _, err := moveImage(galleryOf("a", "b"), "ghost", "a"); err == nil {
			t.Fatal("expected an error")
		}
	})

	t.Run("unknown target id", func(t *testing.T) {
		if _, err := moveImage(galleryOf("a", "b"), "a", "ghost"); err == nil {
			t.Fatal("expected an error")
		}
	})

	t.Run("does not mutate the input", func(t *testing.T) {
		in := galleryOf("a", "b", "c")
		if _, err := moveImage(in, "c", "a"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for i, id := range []string{"a", "b", "c"} {
			if in[i].ID != id || in[i].Order != i {
				t.Fatalf("input was mutated: %v", in)
			}
		}
	})
}
