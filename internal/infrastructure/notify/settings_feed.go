package notify

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/lib/pq"
)

// Channel the site_settings trigger notifies on.
const settingsChannel = "site_settings_changes"

// SettingChange is the decoded NOTIFY payload for a site_settings row.
type SettingChange struct {
	Key   string `json:"key"`
	Value bool   `json:"value"`
}

// SettingsFeed listens for site_settings changes over Postgres LISTEN/NOTIFY
// and fans them out to any number of subscribers. Delivery is best-effort:
// a subscriber that is not draining its channel misses events, and a dropped
// connection loses whatever was sent while reconnecting.
type SettingsFeed struct {
	listener *pq.Listener

	mu   sync.Mutex
	subs map[chan SettingChange]struct{}
	done chan struct{}
}

func NewSettingsFeed(connStr string) (*SettingsFeed, error) {
	listener := pq.NewListener(connStr, 10*time.Second, time.Minute,
		func(event pq.ListenerEventType, err error) {
			if err != nil {
				log.Printf("settings feed listener event %d: %v", event, err)
			}
		})

	if err := listener.Listen(settingsChannel); err != nil {
		listener.Close()
		return nil, err
	}

	f := &SettingsFeed{
		listener: listener,
		subs:     make(map[chan SettingChange]struct{}),
		done:     make(chan struct{}),
	}
	go f.run()
	return f, nil
}

func (f *SettingsFeed) run() {
	for {
		select {
		case n, ok := <-f.listener.Notify:
			if !ok {
				return
			}
			if n == nil {
				// nil notification signals a reconnect; events in between are lost
				continue
			}
			var change SettingChange
			if err := json.Unmarshal([]byte(n.Extra), &change); err != nil {
				log.Printf("settings feed: bad payload %q: %v", n.Extra, err)
				continue
			}
			f.broadcast(change)
		case <-f.done:
			return
		}
	}
}

func (f *SettingsFeed) broadcast(change SettingChange) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for ch := range f.subs {
		select {
		case ch <- change:
		default:
			// slow subscriber, drop rather than block the feed
		}
	}
}

// Subscribe registers a new listener channel. Callers must Unsubscribe it.
func (f *SettingsFeed) Subscribe() chan SettingChange {
	ch := make(chan SettingChange, 8)
	f.mu.Lock()
	f.subs[ch] = struct{}{}
	f.mu.Unlock()
	return ch
}

func (f *SettingsFeed) Unsubscribe(ch chan SettingChange) {
	f.mu.Lock()
	if _, ok := f.subs[ch]; ok {
		delete(f.subs, ch)
		close(ch)
	}
	f.mu.Unlock()
}

func (f *SettingsFeed) Close() error {
	close(f.done)
	f.mu.Lock()
	for ch := range f.subs {
		delete(f.subs, ch)
		close(ch)
	}
	f.mu.Unlock()
	return f.listener.Close()
}
