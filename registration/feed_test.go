package registration

import "testing"

func TestFeedPublishAndUnsubscribe(t *testing.T) {
	f := NewFeed()
	a := f.Subscribe()
	b := f.Subscribe()

	f.Publish(map[string]int{"member_id": 1})

	for _, ch := range []chan string{a, b} {
		select {
		case msg := <-ch:
			if msg == "" {
				t.Fatal("empty event")
			}
		default:
			t.Fatal("subscriber missed event")
		}
	}

	f.Unsubscribe(a)
	if _, open := <-a; open {
		t.Fatal("unsubscribed channel not closed")
	}
	// Double unsubscribe must not panic.
	f.Unsubscribe(a)

	f.Publish(map[string]int{"member_id": 2})
	select {
	case <-b:
	default:
		t.Fatal("remaining subscriber missed event")
	}
}

func TestFeedDropsWhenSubscriberSlow(t *testing.T) {
	f := NewFeed()
	ch := f.Subscribe()
	for i := 0; i < 20; i++ {
		f.Publish(map[string]int{"n": i})
	}
	// Buffer is 8; the rest were dropped, Publish never blocked.
	if len(ch) != 8 {
		t.Fatalf("buffered %d events, want 8", len(ch))
	}
}
