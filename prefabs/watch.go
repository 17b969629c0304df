package prefabs

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 100 * time.Millisecond

// ChangeKind says which part of the tuning an edited file feeds.
type ChangeKind int

const (
	ChangeTuning ChangeKind = iota
	ChangeRoster
)

func (k ChangeKind) String() string {
	if k == ChangeRoster {
		return "roster"
	}
	return "tuning"
}

// Change is one edited prefab file, reported once its burst of writes has
// settled.
type Change struct {
	Path string
	Kind ChangeKind
}

func classify(path string) (ChangeKind, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ChangeTuning, true
	case ".tengo":
		return ChangeRoster, true
	}
	return 0, false
}

// Watcher reports edits to tuning and roster script files so a running game
// can reload them between waves. A prefab directory's scripts/ folder is
// watched along with it.
type Watcher struct {
	fs      *fsnotify.Watcher
	Events  chan Change
	Errors  chan error
	closeCh chan struct{}
	doneCh  chan struct{}
	once    sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, err
		}
		scripts := filepath.Join(dir, "scripts")
		if info, err := os.Stat(scripts); err == nil && info.IsDir() {
			if err := fw.Add(scripts); err != nil {
				_ = fw.Close()
				return nil, err
			}
		}
	}

	w := &Watcher{
		fs:      fw,
		Events:  make(chan Change, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Close stops the watcher and closes Events and Errors. It is safe to call
// more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.fs.Close()
		<-w.doneCh
	})
	return err
}

func (w *Watcher) run() {
	defer func() {
		close(w.Events)
		close(w.Errors)
		close(w.doneCh)
	}()

	pending := make(map[string]ChangeKind)
	settle := time.NewTimer(watchDebounce)
	settle.Stop()
	defer settle.Stop()

	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			kind, ok := classify(event.Name)
			if !ok {
				continue
			}
			pending[event.Name] = kind
			settle.Reset(watchDebounce)
		case <-settle.C:
			if !w.flush(pending) {
				return
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

// flush reports every settled path in name order. It returns false when the
// watcher closed while delivering.
func (w *Watcher) flush(pending map[string]ChangeKind) bool {
	paths := make([]string, 0, len(pending))
	for p := range pending {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		select {
		case w.Events <- Change{Path: p, Kind: pending[p]}:
		case <-w.closeCh:
			return false
		}
		delete(pending, p)
	}
	return true
}
