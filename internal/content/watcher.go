package content

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for a burst of file events
// to settle before reloading.
const DefaultDebounce = 500 * time.Millisecond

// Watch reloads the store whenever a file in its data directory changes,
// until ctx is cancelled.
func (s *Store) Watch(ctx context.Context, debounce time.Duration) error {
	if s.dir == "" {
		<-ctx.Done()
		return nil
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(s.dir); err != nil {
		return fmt.Errorf("watch %s: %w", s.dir, err)
	}
	log.Printf("[content] watching %s", s.dir)

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			log.Printf("[content] change detected: %s (%s)", event.Name, event.Op)
			timer.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("[content] watcher error: %v", err)
		case <-timer.C:
			if err := s.Reload(); err != nil {
				log.Printf("[content] reload failed, keeping previous content: %v", err)
			}
		}
	}
}
