package out

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"

	launcherout "threadsuite/internal/modules/launcher/port/out"
)

type OSSpawner struct{}

func NewOSSpawner() launcherout.ProcessSpawner {
	return OSSpawner{}
}

// Spawn starts path in its own directory, detached from this process's
// session and stdio. The child is not bound to ctx and outlives the caller.
func (OSSpawner) Spawn(_ context.Context, path string) (launcherout.Process, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("absolute path: %w", err)
	}
	cmd := exec.Command(abs)
	cmd.Dir = filepath.Dir(abs)
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	detach(cmd)

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", abs, err)
	}
	p := &osProcess{cmd: cmd, done: make(chan struct{})}
	go p.reap()
	return p, nil
}

type osProcess struct {
	cmd  *exec.Cmd
	done chan struct{}
}

// reap collects the exit status so finished children do not linger as
// zombies while the launcher stays open.
func (p *osProcess) reap() {
	_ = p.cmd.Wait()
	close(p.done)
}

func (p *osProcess) PID() int {
	return p.cmd.Process.Pid
}

func (p *osProcess) Exited() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

func (p *osProcess) Terminate() error {
	if p.Exited() {
		return nil
	}
	return terminate(p.cmd.Process)
}
