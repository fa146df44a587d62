// Package schedulerengine runs the periodic housekeeping of the service.
package schedulerengine

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gitlab.com/llmeet.net/internal/config"
	"gitlab.com/llmeet.net/internal/core/ports/primary"
)

const workspacePrefix = "run-"

// SchedulerEngine removes judge workspaces that outlived the process that
// created them, for example after a crash between MkdirTemp and cleanup.
type SchedulerEngine struct {
	workDir  string
	interval time.Duration
	maxAge   time.Duration
	logger   primary.Logger
	now      func() time.Time
	wg       sync.WaitGroup
}

func NewSchedulerEngine(cfg *config.JudgeConfig, logger primary.Logger) *SchedulerEngine {
	s := &SchedulerEngine{
		workDir:  cfg.WorkDir,
		interval: cfg.SweepInterval,
		maxAge:   cfg.SweepMaxAge,
		logger:   logger,
		now:      time.Now,
	}
	if s.interval <= 0 {
		s.interval = 5 * time.Minute
	}
	if s.maxAge <= 0 {
		s.maxAge = 10 * time.Minute
	}
	return s
}

// StartWorkspaceSweeper sweeps once right away and then on every tick until ctx ends.
// Without a dedicated work dir it does nothing, since the shared temp dir
// holds other programs' files.
func (s *SchedulerEngine) StartWorkspaceSweeper(ctx context.Context) {
	if s.workDir == "" {
		s.logger.Debug("Workspace sweeper disabled, no dedicated work dir")
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		s.SweepWorkspaces()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.SweepWorkspaces()
			}
		}
	}()
}

// Wait blocks until the sweeper goroutine has exited
func (s *SchedulerEngine) Wait() {
	s.wg.Wait()
}

// SweepWorkspaces removes stale workspaces and returns how many were removed.
func (s *SchedulerEngine) SweepWorkspaces() int {
	entries, err := os.ReadDir(s.workDir)
	if err != nil {
		s.logger.Warn("Failed to read work dir", "dir", s.workDir, "error", err)
		return 0
	}

	cutoff := s.now().Add(-s.maxAge)
	removed := 0
	for _, e := range entries {
		if !e.IsDir() || !strings.HasPrefix(e.Name(), workspacePrefix) {
			continue
		}
		info, err := e.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		dir := filepath.Join(s.workDir, e.Name())
		if err := os.RemoveAll(dir); err != nil {
			s.logger.Error("Failed to remove stale workspace", "dir", dir, "error", err)
			continue
		}
		removed++
	}
	if removed > 0 {
		s.logger.Info("Removed stale workspaces", "count", removed)
	}
	return removed
}
