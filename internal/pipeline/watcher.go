package pipeline

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// newStoppedTimer returns a timer that is not running and whose channel is
// drained, ready for Reset.
func newStoppedTimer(d time.Duration) *time.Timer {
	t := time.NewTimer(d)
	if !t.Stop() {
		<-t.C
	}
	return t
}

// Watch runs the pipeline once, then reruns it whenever the input card
// files, the lookup maps, or the layout file change. Events are debounced
// so an editor save or a bulk copy triggers a single rerun. A failed rerun
// is logged and the watcher keeps going; Watch returns when ctx is
// cancelled.
func (r *Runner) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	dirs := map[string]bool{r.cfg.InputDir: true, r.cfg.MapsDir: true}
	if r.cfg.LayoutPath != "" {
		dirs[filepath.Dir(r.cfg.LayoutPath)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return err
		}
	}

	run := func() {
		if err := r.Run(ctx); err != nil {
			r.log.Error().Err(err).Msg("pipeline run failed")
		}
	}
	run()

	// Timer starts drained; relevant events arm it.
	timer := newStoppedTimer(r.cfg.Debounce)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !r.relevant(event) {
				continue
			}
			r.log.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("input changed")
			timer.Reset(r.cfg.Debounce)

		case <-timer.C:
			r.log.Info().Msg("inputs changed, rerunning pipeline")
			run()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.log.Error().Err(err).Msg("watcher error")
		}
	}
}

// relevant reports whether a filesystem event concerns a pipeline input:
// a card file, a lookup map, or the layout override. The run summary the
// pipeline writes itself is excluded, or a run with the output directory
// inside a watched directory would retrigger forever.
func (r *Runner) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	name := filepath.Clean(event.Name)
	if name == filepath.Clean(r.status.Path()) {
		return false
	}
	if r.cfg.LayoutPath != "" && name == filepath.Clean(r.cfg.LayoutPath) {
		return true
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt", ".json":
		return true
	}
	return false
}
