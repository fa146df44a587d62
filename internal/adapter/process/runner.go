// Package process runs scripts in throwaway workspaces, one OS process group per run.
package process

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync/atomic"
	"time"

	"gitlab.com/llmeet.net/internal/core/ports/primary"
	"gitlab.com/llmeet.net/internal/core/ports/secondary"
	"gitlab.com/llmeet.net/internal/domain"
	"gitlab.com/llmeet.net/internal/static/errs"
)

const (
	defaultFileName    = "main.py"
	defaultOutputLimit = 64 * 1024
	defaultPath        = "/usr/local/bin:/usr/bin:/bin"
	waitDelay          = 500 * time.Millisecond
)

var _ secondary.ScriptRunner = (*Runner)(nil)

type Runner struct {
	baseDir string
	logger  primary.Logger
}

// NewRunner creates workspaces under baseDir, or the OS temp dir when empty.
func NewRunner(baseDir string, logger primary.Logger) *Runner {
	return &Runner{
		baseDir: baseDir,
		logger:  logger,
	}
}

func (r *Runner) Run(ctx context.Context, req domain.ExecRequest) (*domain.ExecResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir, err := os.MkdirTemp(r.baseDir, "run-")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.WorkspaceSetup, err)
	}
	defer func() {
		if rmErr := os.RemoveAll(dir); rmErr != nil {
			r.logger.Warn("Failed to remove workspace", "dir", dir, "error", rmErr)
		}
	}()

	fileName := req.FileName
	if fileName == "" {
		fileName = defaultFileName
	}
	script := filepath.Join(dir, fileName)
	if err := os.WriteFile(script, []byte(req.Source), 0o600); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.WorkspaceSetup, err)
	}

	limit := req.OutputLimit
	if limit <= 0 {
		limit = defaultOutputLimit
	}
	stdout := newTailBuffer(limit)
	stderr := newTailBuffer(limit)

	runCtx, cancel := context.WithTimeout(ctx, req.Timeout)
	defer cancel()

	args := append(append([]string{}, req.Args...), script)
	cmd := exec.CommandContext(runCtx, req.Interpreter, args...)
	cmd.Dir = dir
	cmd.Env = sandboxEnv(dir)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.WaitDelay = waitDelay
	configureProcessGroup(cmd)
	var killed atomic.Bool
	cancelCmd := cmd.Cancel
	cmd.Cancel = func() error {
		killed.Store(true)
		return cancelCmd()
	}

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errs.ProcessStart, req.Interpreter, err)
	}
	pid := cmd.Process.Pid
	waitErr := cmd.Wait()
	// the leader is gone, take down anything it left in its group
	_ = killProcessGroup(pid)

	res := &domain.ExecResult{
		Duration: time.Since(start),
		ExitCode: -1,
	}
	if cmd.ProcessState != nil {
		res.ExitCode = cmd.ProcessState.ExitCode()
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if killedByDeadline(killed.Load(), runCtx.Err(), cmd.ProcessState) {
		res.TimedOut = true
		r.logger.Debug("Process timed out", "pid", pid, "timeout", req.Timeout)
		return res, nil
	}

	var exitErr *exec.ExitError
	switch {
	case waitErr == nil:
	case errors.As(waitErr, &exitErr):
	case errors.Is(waitErr, context.DeadlineExceeded):
		// the deadline kill raced a clean exit
	case errors.Is(waitErr, exec.ErrWaitDelay):
		r.logger.Debug("Process left output pipes open", "pid", pid)
	default:
		return nil, fmt.Errorf("%w: %v", errs.ProcessWait, waitErr)
	}

	res.Stdout = stdout.String()
	res.Stderr = stderr.String()
	return res, nil
}

// killedByDeadline reports a timeout only when the deadline kill fired and the
// process did not exit on its own first.
func killedByDeadline(killed bool, ctxErr error, state *os.ProcessState) bool {
	if !killed || !errors.Is(ctxErr, context.DeadlineExceeded) {
		return false
	}
	return state == nil || !state.Exited()
}

// sandboxEnv gives the child only what an interpreter needs. Nothing from the
// server's environment leaks through except PATH.
func sandboxEnv(dir string) []string {
	path := os.Getenv("PATH")
	if path == "" {
		path = defaultPath
	}
	return []string{
		"PATH=" + path,
		"HOME=" + dir,
		"TMPDIR=" + dir,
		"LANG=C.UTF-8",
		"PYTHONDONTWRITEBYTECODE=1",
		"PYTHONIOENCODING=utf-8",
	}
}
