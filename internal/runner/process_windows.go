//go:build windows

package runner

import "os/exec"

func setupProcessGroup(cmd *exec.Cmd) {}

// killProcessGroup kills the shell. Children started by cmd /C are not
// tracked; WaitDelay still releases the output pipes.
func killProcessGroup(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	return cmd.Process.Kill()
}
