package ws

import (
	"log"
	"time"

	"github.com/google/uuid"
)

// OpeningsProvider reports which users have an answer window opening at the
// given instant.
type OpeningsProvider interface {
	UsersWithWindowsOpening(now time.Time) ([]uuid.UUID, error)
}

// WindowWatcher scans once a minute for windows that just opened and pushes
// a question_active event to the affected users. It is the server-side
// replacement for the old client poll.
type WindowWatcher struct {
	hub      *Hub
	provider OpeningsProvider
	interval time.Duration
	stop     chan struct{}
}

func NewWindowWatcher(hub *Hub, provider OpeningsProvider, interval time.Duration) *WindowWatcher {
	return &WindowWatcher{
		hub:      hub,
		provider: provider,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

func (w *WindowWatcher) Start() {
	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		for {
			select {
			case <-w.stop:
				return
			case now := <-ticker.C:
				w.tick(now)
			}
		}
	}()
	log.Println("window watcher started")
}

func (w *WindowWatcher) Stop() {
	close(w.stop)
}

func (w *WindowWatcher) tick(now time.Time) {
	users, err := w.provider.UsersWithWindowsOpening(now)
	if err != nil {
		log.Printf("window watcher: %v", err)
		return
	}
	for _, userID := range users {
		w.hub.Broadcast(userID, WSMessage{
			Type: "question_active",
			Data: map[string]string{"opened_at": now.Format("15:04:05")},
		})
	}
}
