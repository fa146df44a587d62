package schedulerengine

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gitlab.com/llmeet.net/internal/adapter/logging"
	"gitlab.com/llmeet.net/internal/config"
)

func mkdirAged(t *testing.T, root, name string, age time.Duration) string {
	t.Helper()
	dir := filepath.Join(root, name)
	if err := os.Mkdir(dir, 0o700); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "main.py"), []byte("x"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	old := time.Now().Add(-age)
	if err := os.Chtimes(dir, old, old); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	return dir
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func TestSweepWorkspaces(t *testing.T) {
	root := t.TempDir()
	stale := mkdirAged(t, root, "run-111", time.Hour)
	fresh := mkdirAged(t, root, "run-222", time.Second)
	foreign := mkdirAged(t, root, "keep-me", time.Hour)

	s := NewSchedulerEngine(&config.JudgeConfig{WorkDir: root, SweepMaxAge: time.Minute}, logging.NewNopLogger())
	if n := s.SweepWorkspaces(); n != 1 {
		t.Fatalf("expected 1 removal, got %d", n)
	}
	if exists(stale) {
		t.Fatalf("stale workspace survived")
	}
	if !exists(fresh) || !exists(foreign) {
		t.Fatalf("sweeper removed a directory it does not own")
	}
}

func TestSweeperRunsUntilCancelled(t *testing.T) {
	root := t.TempDir()
	stale := mkdirAged(t, root, "run-333", time.Hour)

	s := NewSchedulerEngine(&config.JudgeConfig{WorkDir: root, SweepInterval: time.Hour, SweepMaxAge: time.Minute}, logging.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	s.StartWorkspaceSweeper(ctx)

	deadline := time.Now().Add(2 * time.Second)
	for exists(stale) && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if exists(stale) {
		t.Fatalf("initial sweep did not run")
	}
	cancel()
	s.Wait()
}

func TestSweeperDisabledWithoutWorkDir(t *testing.T) {
	s := NewSchedulerEngine(&config.JudgeConfig{}, logging.NewNopLogger())
	s.StartWorkspaceSweeper(context.Background())
	s.Wait()
}
