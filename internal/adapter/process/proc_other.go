//go:build !unix

package process

import (
	"os"
	"os/exec"
)

// Without process groups only the direct child is killed on timeout.
func configureProcessGroup(cmd *exec.Cmd) {}

func killProcessGroup(pid int) error {
	return os.ErrProcessDone
}
