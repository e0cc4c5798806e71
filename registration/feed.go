package registration

import (
	"encoding/json"
	"sync"
)

// Feed fans successful registrations out to SSE subscribers (front-desk
// dashboards). Slow subscribers drop events rather than block submissions.
type Feed struct {
	mu   sync.Mutex
	subs map[chan string]struct{}
}

func NewFeed() *Feed {
	return &Feed{subs: make(map[chan string]struct{})}
}

func (f *Feed) Subscribe() chan string {
	ch := make(chan string, 8)
	f.mu.Lock()
	f.subs[ch] = struct{}{}
	f.mu.Unlock()
	return ch
}

// Unsubscribe removes and closes the channel; safe to call once per channel.
func (f *Feed) Unsubscribe(ch chan string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.subs[ch]; ok {
		delete(f.subs, ch)
		close(ch)
	}
}

func (f *Feed) Publish(event any) {
	b, err := json.Marshal(event)
	if err != nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for ch := range f.subs {
		select {
		case ch <- string(b):
		default:
		}
	}
}
