package project

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const _markerDebounce = 500 * time.Millisecond

func (m *manager) startWatcher(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	m.watchMu.Lock()
	m.watcher = watcher
	// Roots detected before Start are watched as well.
	for root := range m.watched {
		if err := watcher.Add(root); err != nil {
			m.logger.Warnw("failed to watch root", "root", root, "error", err)
		}
	}
	m.watchMu.Unlock()

	m.wg.Add(1)
	go m.watchMarkers(ctx, watcher)
	return nil
}

func (m *manager) stopWatcher() {
	m.watchMu.Lock()
	defer m.watchMu.Unlock()

	for root, t := range m.debounce {
		t.Stop()
		delete(m.debounce, root)
	}
	if m.watcher != nil {
		if err := m.watcher.Close(); err != nil {
			m.logger.Warnw("closing marker watcher", "error", err)
		}
		m.watcher = nil
	}
}

// watch registers root for marker watching. Roots are only watched while the manager runs.
func (m *manager) watch(root string) {
	m.watchMu.Lock()
	defer m.watchMu.Unlock()

	if _, ok := m.watched[root]; ok {
		return
	}
	m.watched[root] = struct{}{}
	if m.watcher != nil {
		if err := m.watcher.Add(root); err != nil {
			m.logger.Warnw("failed to watch root", "root", root, "error", err)
		}
	}
}

// unwatch stops watching root and drops any pending re-detection for it.
func (m *manager) unwatch(root string) {
	m.watchMu.Lock()
	defer m.watchMu.Unlock()

	if t, ok := m.debounce[root]; ok {
		t.Stop()
		delete(m.debounce, root)
	}
	if _, ok := m.watched[root]; !ok {
		return
	}
	delete(m.watched, root)
	if m.watcher != nil {
		if err := m.watcher.Remove(root); err != nil {
			m.logger.Warnw("failed to unwatch root", "root", root, "error", err)
		}
	}
}

func (m *manager) watchMarkers(ctx context.Context, watcher *fsnotify.Watcher) {
	defer m.wg.Done()

	markers := m.detector.watchedMarkers()
	for {
		select {
		case <-ctx.Done():
			return
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			m.logger.Warnw("marker watcher error", "error", err)
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if _, ok := markers[filepath.Base(event.Name)]; !ok {
				continue
			}
			m.scheduleRedetect(ctx, filepath.Dir(event.Name))
		}
	}
}

// scheduleRedetect detects root again once its markers stopped changing.
func (m *manager) scheduleRedetect(ctx context.Context, root string) {
	m.watchMu.Lock()
	defer m.watchMu.Unlock()

	if t, ok := m.debounce[root]; ok {
		t.Stop()
	}
	m.debounce[root] = m.clock.AfterFunc(_markerDebounce, func() {
		m.watchMu.Lock()
		delete(m.debounce, root)
		m.watchMu.Unlock()

		if ctx.Err() != nil {
			return
		}
		m.logger.Infow("project markers changed", "root", root)
		if _, err := m.DetectProject(ctx, root); err != nil {
			m.logger.Infow("re-detection failed", "root", root, "error", err)
		}
	})
}
