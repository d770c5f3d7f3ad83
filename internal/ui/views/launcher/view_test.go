package launcher

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	launcherdto "threadsuite/internal/modules/launcher/dto"
)

type fakePort struct {
	launched []string
	running  []launcherdto.RunningOutput
}

func (f *fakePort) Targets(context.Context) ([]launcherdto.TargetOutput, error) {
	return []launcherdto.TargetOutput{{Name: "main", PrimaryPath: "/s/dist/main", PrimaryExists: true}}, nil
}

func (f *fakePort) Launch(_ context.Context, target string) (launcherdto.LaunchOutput, error) {
	f.launched = append(f.launched, target)
	return launcherdto.LaunchOutput{Target: target, Started: true, PID: 7, ResolvedPath: "/s/dist/main"}, nil
}

func (f *fakePort) Running(context.Context) []launcherdto.RunningOutput { return f.running }
func (f *fakePort) StopAll(context.Context) int                       { return len(f.running) }

func TestLauncherViewFlow(t *testing.T) {
	t.Parallel()
	port := &fakePort{}
	at := time.Date(2026, 1, 1, 9, 30, 0, 0, time.UTC)
	m := New(port, func() time.Time { return at })

	m, _ = m.Update(m.loadTargetsCmd()())
	name, ok := m.SelectedTarget()
	require.True(t, ok)
	assert.Equal(t, "main", name)

	m, _ = m.Update(m.Launch(name)())
	assert.Equal(t, []string{"main"}, port.launched)
	assert.Equal(t, 1, m.RunningCount())

	m, _ = m.Update(LaunchedMsg{Result: launcherdto.LaunchOutput{Target: "ideator", Error: "not found", Reason: "not_found"}})
	assert.Equal(t, 1, m.RunningCount())

	port.running = []launcherdto.RunningOutput{{Target: "main", PID: 7}, {Target: "main", PID: 8}}
	m, _ = m.Update(m.Refresh(true)())
	assert.Equal(t, 2, m.RunningCount())

	m, _ = m.Update(m.StopAll()())
	assert.Equal(t, 0, m.RunningCount())

	lines := m.Lines()
	require.Len(t, lines, 5)
	for _, l := range lines {
		assert.True(t, strings.HasPrefix(l, "[09:30:00] "), l)
	}
	assert.Contains(t, lines[1], "started main (pid 7)")
	assert.Contains(t, lines[2], "ideator: not found")
	assert.Contains(t, lines[3], "2 running")
	assert.Contains(t, lines[4], "closed 2 applications")
}
