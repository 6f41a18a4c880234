package main

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/dledwards/ped/internal/source"
)

// fileWatch tails the open file's containing directory for external edits,
// the purely-advisory edge feature SPEC_FULL.md's DOMAIN STACK section
// assigns to fsnotify: a change only posts a notice to the workspace's
// alert line, never touching the buffer's own content.
type fileWatch struct {
	watcher *fsnotify.Watcher
	path    string
	events  chan string
	log     *zap.Logger
}

// newFileWatch watches src's directory when src names a real file on disk.
// A watcher that can't be started (ephemeral buffer, missing directory,
// fsnotify init failure) degrades to a no-op: Events() simply never fires.
func newFileWatch(src source.Source, log *zap.Logger) *fileWatch {
	fw := &fileWatch{path: src.Path, events: make(chan string, 1), log: log}
	if !src.IsFile() {
		return fw
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		log.Debug("file watch disabled", zap.Error(err))
		return fw
	}
	dir := filepath.Dir(src.Path)
	if err := w.Add(dir); err != nil {
		log.Debug("file watch add failed", zap.String("dir", dir), zap.Error(err))
		w.Close()
		return fw
	}
	fw.watcher = w

	go fw.run()
	return fw
}

func (fw *fileWatch) run() {
	for {
		select {
		case ev, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(fw.path) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			select {
			case fw.events <- ev.Name:
			default:
				// a pending notification already covers this file
			}
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.log.Debug("file watch error", zap.Error(err))
		}
	}
}

// Events reports the path of the watched file each time it changes on
// disk. Closed/no-op watches return a channel that never fires.
func (fw *fileWatch) Events() <-chan string { return fw.events }

func (fw *fileWatch) Close() {
	if fw.watcher != nil {
		fw.watcher.Close()
	}
}
