package viewer

import (
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/cubeview/pkg/cubemap"
)

// DefaultDebounce is how long the directory must be quiet before reloading.
const DefaultDebounce = 250 * time.Millisecond

// Watcher reloads a cube map directory when its files change. A reload that
// fails is logged and the previously loaded cube map stays in use.
type Watcher struct {
	dir      string
	debounce time.Duration
	load     func(dir string) (*cubemap.Cubemap, error)
	onLoad   func(*cubemap.Cubemap)
	log      *zap.Logger

	fsw       *fsnotify.Watcher
	quit      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewWatcher watches dir and calls onLoad with every successfully reloaded
// cube map. onLoad runs on the watcher goroutine.
func NewWatcher(dir string, debounce time.Duration, onLoad func(*cubemap.Cubemap), log *zap.Logger) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if log == nil {
		log = zap.NewNop()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}
	return &Watcher{
		dir:      dir,
		debounce: debounce,
		load:     cubemap.Load,
		onLoad:   onLoad,
		log:      log,
		fsw:      fsw,
		quit:     make(chan struct{}),
	}, nil
}

// Start launches the watch goroutine.
func (w *Watcher) Start() {
	w.wg.Add(1)
	go w.run()
}

// Close stops watching and waits for a reload in progress.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.quit)
		err = w.fsw.Close()
		w.wg.Wait()
	})
	return err
}

func (w *Watcher) run() {
	defer w.wg.Done()

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-w.quit:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename) {
				continue
			}
			w.log.Debug("cube map file changed", zap.String("file", ev.Name), zap.Stringer("op", ev.Op))
			timer.Reset(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", zap.Error(err))

		case <-timer.C:
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	cm, err := w.load(w.dir)
	if err != nil {
		w.log.Warn("cube map reload failed, keeping previous",
			zap.String("dir", w.dir), zap.Error(err))
		return
	}
	w.log.Info("cube map reloaded",
		zap.String("dir", w.dir), zap.Int("size", cm.Size()))
	w.onLoad(cm)
}
