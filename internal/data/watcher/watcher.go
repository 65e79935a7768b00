package watcher

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/CynaCons/powertimeline-layout/internal/core/model"
	"github.com/CynaCons/powertimeline-layout/internal/util"
)

// FileWatcher watches one events file and re-emits change notices. Editors
// often replace files via rename, so the parent directory is watched and
// events are filtered down to the target path.
type FileWatcher struct {
	watcher *fsnotify.Watcher
	target  string
	events  chan model.FileEvent
}

// NewFileWatcher starts watching the directory containing path.
func NewFileWatcher(path string) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, err
	}

	fw := &FileWatcher{
		watcher: watcher,
		target:  abs,
		events:  make(chan model.FileEvent, 100),
	}

	go fw.processEvents()

	return fw, nil
}

func (fw *FileWatcher) processEvents() {
	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				close(fw.events)
				return
			}

			if event.Name != fw.target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			fw.events <- model.FileEvent{
				Path:      event.Name,
				Operation: event.Op.String(),
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				close(fw.events)
				return
			}
			// Log error but continue running
			util.LogError("File monitoring error: " + err.Error())
		}
	}
}

// Events returns the change notice channel.
func (fw *FileWatcher) Events() <-chan model.FileEvent {
	return fw.events
}

// Close stops watching.
func (fw *FileWatcher) Close() error {
	return fw.watcher.Close()
}
