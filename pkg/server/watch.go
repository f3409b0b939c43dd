package server

import (
	"path/filepath"

	"github.com/snipserve/snipserve/pkg/config"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// WatchConfig reloads settings whenever the config file changes, so
// suppression rules and capability toggles take effect without a restart.
// The parent directory is watched rather than the file itself because
// most editors replace files on save.
func (s *Server) WatchConfig(path string) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	name := filepath.Base(path)
	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != name {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				s.reloadConfig(path)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warnf("Config watcher: %v", err)
			}
		}
	}()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, err
	}
	log.Debugf("Watching config file: %s", path)
	return watcher, nil
}

// reloadConfig re-reads the config file and swaps the engine settings.
// A file that fails to load keeps the previous settings in place.
func (s *Server) reloadConfig(path string) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		log.Warnf("Config reload failed, keeping previous settings: %v", err)
		return
	}
	s.swapSettings(cfg.Compile())
	log.Infof("Reloaded config from %s", path)
}
