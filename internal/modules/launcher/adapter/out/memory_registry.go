package out

import (
	"sync"

	"threadsuite/internal/modules/launcher/domain"
	launcherout "threadsuite/internal/modules/launcher/port/out"
	"threadsuite/internal/platform/clock"
)

// MemoryRegistry remembers processes started by this launcher so it can
// report and stop them. It never refuses a launch.
type MemoryRegistry struct {
	mu      sync.Mutex
	clock   clock.Clock
	entries []registryEntry
}

type registryEntry struct {
	info domain.RunningProcess
	proc launcherout.Process
}

func NewMemoryRegistry(clk clock.Clock) *MemoryRegistry {
	return &MemoryRegistry{clock: clk}
}

func (r *MemoryRegistry) Track(target, path string, proc launcherout.Process) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, registryEntry{
		info: domain.RunningProcess{
			Target:    target,
			Path:      path,
			PID:       proc.PID(),
			StartedAt: r.clock.Now(),
		},
		proc: proc,
	})
}

// Running drops exited processes and returns the rest in launch order.
func (r *MemoryRegistry) Running() []domain.RunningProcess {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pruneLocked()
	out := make([]domain.RunningProcess, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.info)
	}
	return out
}

// StopAll terminates every live process and forgets all entries. It returns
// how many were signalled successfully.
func (r *MemoryRegistry) StopAll() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pruneLocked()
	stopped := 0
	for _, e := range r.entries {
		if err := e.proc.Terminate(); err == nil {
			stopped++
		}
	}
	r.entries = nil
	return stopped
}

func (r *MemoryRegistry) pruneLocked() {
	live := r.entries[:0]
	for _, e := range r.entries {
		if !e.proc.Exited() {
			live = append(live, e)
		}
	}
	r.entries = live
}
