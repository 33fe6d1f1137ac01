package smtp

import (
	"sync/atomic"
	"testing"

	"payout/pkg/rr"
)

func TestSplitRelay(t *testing.T) {

	tests := []struct {
		relay string
		host  string
		port  int
		ok    bool
	}{
		{"smtp-1.example.net:587", "smtp-1.example.net", 587, true},
		{"127.0.0.1:2525", "127.0.0.1", 2525, true},
		{"smtp.example.net", "", 0, false},
		{"smtp.example.net:abc", "", 0, false},
	}

	for _, i := range tests {
		host, port, err := SplitRelay(i.relay)
		if i.ok && err != nil {
			t.Fatalf("SplitRelay(%q) error: %v", i.relay, err)
		}
		if !i.ok {
			if err == nil {
				t.Fatalf("SplitRelay(%q) expected error", i.relay)
			}
			continue
		}
		if host != i.host || port != i.port {
			t.Fatalf("SplitRelay(%q) = %s, %d, want %s, %d", i.relay, host, port, i.host, i.port)
		}
	}

}

func TestRelayRotation(t *testing.T) {

	relays := []string{"a:1", "b:2", "c:3"}

	list := new(atomic.Pointer[[]string])
	list.Store(&relays)

	rotation := rr.New(list)

	var got []string
	for range len(relays) * 2 {
		relay, ok := rotation.Next()
		if !ok {
			t.Fatal("Next() = not ok")
		}
		got = append(got, relay)
	}

	for n, relay := range got {
		if relay != relays[n%len(relays)] {
			t.Fatalf("rotation[%d] = %s, want %s", n, relay, relays[n%len(relays)])
		}
	}

}
