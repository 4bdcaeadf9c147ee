package commands

import (
	"fmt"
	"io"
	"path/filepath"

	"sfstage/internal/config"
	"sfstage/internal/logging"
	"sfstage/internal/manifest"
	"sfstage/internal/registry"
	"sfstage/internal/stage"
	"sfstage/internal/storage"
)

// workspace holds what every command shares: the config, the metadata
// registry and the operation log.
type workspace struct {
	config   *config.Config
	registry *registry.Registry
	logger   *logging.Logger
}

func newWorkspace(cfg *config.Config, reg *registry.Registry) *workspace {
	return &workspace{config: cfg, registry: reg}
}

// log returns the operation logger, opening the log file on first use. A log
// that cannot be opened is replaced by a discarding one.
func (w *workspace) log() *logging.Logger {
	if w.logger == nil {
		logger, err := logging.New(w.config.GetLogPath())
		if err != nil {
			logger = logging.Discard()
		}
		w.logger = logger
	}
	return w.logger
}

// Close closes the operation log
func (w *workspace) Close() error {
	if w.logger == nil {
		return nil
	}
	return w.logger.Close()
}

// stageSession is a provider restored from the stage store
type stageSession struct {
	provider *stage.OutlineProvider
	store    storage.StageStore
}

// openStage restores the saved stage. The manifest generator is created here so
// it picks up an --api-version flag parsed after startup.
func (w *workspace) openStage() (*stageSession, error) {
	store, err := storage.NewStageStore(w.config)
	if err != nil {
		return nil, err
	}
	components, err := store.Load()
	if err != nil {
		closeStore(store)
		return nil, fmt.Errorf("failed to load stage: %w", err)
	}

	provider := stage.NewOutlineProvider(w.registry, manifest.NewGenerator(w.config.APIVersion))
	provider.Restore(components)
	return &stageSession{provider: provider, store: store}, nil
}

// save persists the current tree
func (s *stageSession) save() error {
	if err := s.store.Save(s.provider.Components()); err != nil {
		return fmt.Errorf("failed to save stage: %w", err)
	}
	return nil
}

func (s *stageSession) close() {
	closeStore(s.store)
}

func closeStore(store storage.StageStore) {
	if closer, ok := store.(io.Closer); ok {
		closer.Close()
	}
}

// absPath makes a user-supplied path absolute so the stage stays valid from
// any working directory
func absPath(path string) string {
	if path == "" {
		return ""
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
