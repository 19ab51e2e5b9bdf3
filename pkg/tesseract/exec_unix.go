//go:build unix

package tesseract

import (
	"errors"
	"os"
	"os/exec"
	"syscall"
)

// isolate starts the process in its own process group, so wrappers and everything
// they spawn can be killed together.
func isolate(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// kill sends SIGKILL to the process group led by the process.
func kill(p *os.Process) error {
	if err := syscall.Kill(-p.Pid, syscall.SIGKILL); err != nil {
		if errors.Is(err, syscall.ESRCH) {
			return os.ErrProcessDone
		}
		return err
	}
	return nil
}
