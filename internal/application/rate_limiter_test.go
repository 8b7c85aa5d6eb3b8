package application

import (
	"testing"
	"time"
)

func TestRateLimiter(t *testing.T) {
	t.Run("allows up to the limit then refuses", func(t *testing.T) {
		rl := NewRateLimiter(time.Minute, 3)
		for i := 0; i < 3; i++ {
			if ok, err := rl.Allow("1.2.3.4"); !ok {
				t.Fatalf("request %d refused: %v", i+1, err)
			}
		}
		if ok, _ := rl.Allow("1.2.3.4"); ok {
			t.Fatal("fourth request should be refused")
		}
	})

	t.Run("identifiers are independent", func(t *testing.T) {
		rl := NewRateLimiter(time.Minute, 1)
		rl.Allow("a")
		if ok, _ := rl.Allow("b"); !ok {
			t.Fatal("different identifier should not share the window")
		}
	})

	t.Run("window expiry resets the count", func(t *testing.T) {
		rl := NewRateLimiter(10*time.Millisecond, 1)
		rl.Allow("a")
		time.Sleep(20 * time.Millisecond)
		if ok, _ := rl.Allow("a"); !ok {
			t.Fatal("expired window should allow again")
		}
	})
}
