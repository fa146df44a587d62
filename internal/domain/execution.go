package domain

import "time"

// ExecRequest describes one script to run in a fresh, isolated process
type ExecRequest struct {
	Interpreter string
	Args        []string
	FileName    string
	Source      string
	Timeout     time.Duration
	OutputLimit int
}

// ExecResult is what a finished (or killed) process left behind.
// Stdout and Stderr are empty when TimedOut is set.
type ExecResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
	TimedOut bool
	Duration time.Duration
}
