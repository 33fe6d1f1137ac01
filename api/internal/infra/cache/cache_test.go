package cache

import (
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

func TestSet(t *testing.T) {
	var keys []string
	c := InitStorage()

	for range 10000 {
		k := gofakeit.BuzzWord()
		keys = append(keys, k)

		go c.Set(k, gofakeit.BuzzWord(), time.Second*time.Duration(gofakeit.IntRange(1, 3)))
	}

	time.Sleep(4 * time.Second)

	for _, i := range keys {
		if v := c.Load(i); v != nil {
			t.Fatalf("key %s survived its expiration: %v", i, v)
		}
	}

}

func TestSetNoExp(t *testing.T) {
	c := InitStorage()

	k := gofakeit.UUID()
	c.SetNoExp(k, 42)

	if v := c.Load(k); v != 42 {
		t.Fatalf("want 42, got %v", v)
	}

	c.Del(k)
	if v := c.Load(k); v != nil {
		t.Fatalf("deleted key still loads: %v", v)
	}
}

func TestLoadOrSetKeepsFirstValue(t *testing.T) {
	c := InitStorage()

	k := gofakeit.UUID()
	first := c.LoadOrSet(k, 1, time.Minute)
	second := c.LoadOrSet(k, 2, time.Minute)

	if first != 1 || second != 1 {
		t.Fatalf("want 1/1, got %v/%v", first, second)
	}
}
