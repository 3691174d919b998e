package httpapi

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/kn713606pp/Lne-task-bot/internal/records"
)

// Feed broadcasts every appended record to connected operator websockets.
// Slow subscribers lose records rather than back-pressuring dispatch.
type Feed struct {
	mu   sync.Mutex
	subs map[chan records.Record]struct{}
}

func NewFeed() *Feed {
	return &Feed{subs: make(map[chan records.Record]struct{})}
}

// Publish fans a record out to all subscribers without blocking.
func (f *Feed) Publish(rec records.Record) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for ch := range f.subs {
		select {
		case ch <- rec:
		default:
		}
	}
}

func (f *Feed) subscribe() chan records.Record {
	ch := make(chan records.Record, 64)
	f.mu.Lock()
	f.subs[ch] = struct{}{}
	f.mu.Unlock()
	return ch
}

func (f *Feed) unsubscribe(ch chan records.Record) {
	f.mu.Lock()
	delete(f.subs, ch)
	f.mu.Unlock()
}

// SubscriberCount reports connected feed clients, for tests and health.
func (f *Feed) SubscriberCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

func (f *Feed) serve(ctx context.Context, conn *websocket.Conn, cancel context.CancelFunc) {
	ch := f.subscribe()
	defer f.unsubscribe(ch)

	// Reader exists only to notice the client going away.
	go func() {
		defer cancel()
		conn.SetReadLimit(4 << 10)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case rec := <-ch:
			_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteJSON(rec); err != nil {
				return
			}
		}
	}
}
