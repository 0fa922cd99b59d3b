package app

import (
	"context"
	"fmt"
	"time"

	"github.com/Adda-Baaj/simple-uber/internal/config"
	"github.com/Adda-Baaj/simple-uber/internal/logger"
	"github.com/Adda-Baaj/simple-uber/internal/storage"
	"github.com/Adda-Baaj/simple-uber/internal/watcher"
	"github.com/Adda-Baaj/simple-uber/pkg/publishers"
	"github.com/Adda-Baaj/simple-uber/pkg/targets"
)

// Watcher is the polling runtime: it owns the target registry, the publisher
// fanout and the snapshot store, and drives the watcher service on a ticker.
type Watcher struct {
	cfg       *config.Config
	targetReg *targets.Registry
	fanout    *publishers.Fanout
	service   *watcher.Service
	interval  time.Duration
	log       logger.Logger
	store     storage.Store
}

// NewWatcher builds a watcher runtime from config files.
func NewWatcher(ctx context.Context, cfg *config.Config, log logger.Logger) (*Watcher, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := cfg.RequireToken(); err != nil {
		return nil, err
	}

	targetReg, err := targets.LoadRegistry(cfg.TargetsFile)
	if err != nil {
		return nil, fmt.Errorf("load targets registry: %w", err)
	}
	targetList := targetReg.All()
	targetIDs := make([]string, 0, len(targetList))
	for _, t := range targetList {
		targetIDs = append(targetIDs, t.ID)
	}
	log.InfoObj("targets registry loaded", "targets_meta", map[string]any{
		"count": len(targetIDs),
		"ids":   targetIDs,
	})

	publisherReg, err := publishers.LoadRegistry(cfg.PublishersFile)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}
	enabled := publisherReg.Enabled()
	if len(enabled) == 0 {
		return nil, fmt.Errorf("no publishers configured")
	}
	pubClients, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabled, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}
	fanout := publishers.NewFanout(pubClients)
	summaries := make([]map[string]string, 0, len(enabled))
	for _, p := range enabled {
		summaries = append(summaries, map[string]string{"id": p.ID, "type": p.Type})
	}
	log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count":      len(summaries),
		"publishers": summaries,
	})

	store, err := storage.NewStore(cfg.StorageType, cfg.BBoltPath, storage.Options{
		SnapshotTTL:     cfg.StorageTTL,
		CleanupInterval: cfg.StorageCleanupInterval,
	})
	if err != nil {
		_ = fanout.Close()
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.InfoObj("storage initialized", "storage_config", map[string]any{
		"type":                     cfg.StorageType,
		"path":                     cfg.BBoltPath,
		"snapshot_ttl_seconds":     int(cfg.StorageTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.StorageCleanupInterval.Seconds()),
	})

	return &Watcher{
		cfg:       cfg,
		targetReg: targetReg,
		fanout:    fanout,
		service:   watcher.NewService(NewAPIClient(cfg, log), fanout, log, store),
		interval:  cfg.WatchInterval,
		log:       log,
		store:     store,
	}, nil
}

// Run polls once immediately, then on every tick until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	if w == nil || w.service == nil {
		return fmt.Errorf("watcher is not initialized")
	}
	defer w.close()

	tgts := w.targetReg.All()
	if len(tgts) == 0 {
		w.log.WarnObj("no targets configured; watcher idle", "targets_file", w.cfg.TargetsFile)
		<-ctx.Done()
		return nil
	}

	w.log.InfoObj("watch loop starting", "watcher_state", map[string]any{
		"targets_count":    len(tgts),
		"publishers_count": w.fanout.Size(),
		"watch_interval":   w.interval.String(),
	})

	if err := w.runOnce(ctx, tgts); err != nil {
		w.log.ErrorObj("initial poll failed", "error", err)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.InfoObj("watch loop exiting", "reason", ctx.Err())
			return nil
		case <-ticker.C:
			if err := w.runOnce(ctx, tgts); err != nil {
				w.log.ErrorObj("scheduled poll failed", "error", err)
			}
		}
	}
}

func (w *Watcher) runOnce(ctx context.Context, tgts []targets.Target) error {
	start := time.Now()
	if err := w.service.Run(ctx, tgts); err != nil {
		return err
	}
	w.log.InfoObj("poll completed", "poll_meta", map[string]any{
		"targets_count": len(tgts),
		"elapsed_ms":    time.Since(start).Milliseconds(),
	})
	return nil
}

func (w *Watcher) close() {
	if err := w.fanout.Close(); err != nil {
		w.log.ErrorObj("publisher close failed", "error", err)
	}
	if w.store == nil {
		return
	}
	if err := w.store.Close(); err != nil {
		w.log.ErrorObj("storage close failed", "error", err)
	}
}
