package collector

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/memtree/memtree/model"
)

var psOut = `    1     0  1200 launchd
   68     1   920 Google Chrome
   73     1  3108 fseventsd
  102    68     0 chrome_crashpad
garbage line
  205    68 51200 Google Chrome Helper (Renderer)
`

var psArgsOut = `    1 /sbin/launchd
   68 /Applications/Google Chrome.app/Contents/MacOS/Google Chrome --restore-last-session
`

type runnerMock struct {
	mock.Mock
}

func (m *runnerMock) run(ctx context.Context, name string, args ...string) (string, error) {
	called := m.Called(name, args)
	return called.String(0), called.Error(1)
}

func TestPSProviderSnapshot(t *testing.T) {
	r := new(runnerMock)
	r.On("run", "ps", mock.Anything).Return(psOut, nil).Once()

	p := &PSProvider{runner: r}
	snap, err := p.Snapshot(context.Background(), Options{})
	assert.NoError(t, err)
	assert.Equal(t, 5, snap.Len(), "one record per parseable line")

	chrome, ok := snap.Get(68)
	assert.True(t, ok)
	assert.Equal(t, "Google Chrome", chrome.Name, "comm keeps its spaces")
	assert.Equal(t, uint64(920*1024), chrome.RSSBytes, "ps reports KiB")
	assert.True(t, chrome.HasParent)
	assert.Equal(t, model.PID(1), chrome.ParentPID)

	init, _ := snap.Get(1)
	assert.False(t, init.HasParent, "ppid 0 means no known parent")

	crashpad, _ := snap.Get(102)
	assert.Zero(t, crashpad.RSSBytes)

	helper, _ := snap.Get(205)
	assert.Equal(t, "Google Chrome Helper (Renderer)", helper.Name)

	r.AssertExpectations(t)
}

func TestPSProviderWithArgs(t *testing.T) {
	r := new(runnerMock)
	r.On("run", "ps", mock.Anything).Return(psOut, nil).Once()
	r.On("run", "ps", mock.Anything).Return(psArgsOut, nil).Once()

	p := &PSProvider{runner: r}
	snap, err := p.Snapshot(context.Background(), Options{WithArgs: true})
	assert.NoError(t, err)

	chrome, _ := snap.Get(68)
	assert.Contains(t, chrome.Cmdline, "--restore-last-session")

	// No args line for 73; the record survives without one.
	fsevents, _ := snap.Get(73)
	assert.Empty(t, fsevents.Cmdline)

	r.AssertExpectations(t)
}

func TestPSProviderArgsPassFailureIsNotFatal(t *testing.T) {
	r := new(runnerMock)
	r.On("run", "ps", mock.Anything).Return(psOut, nil).Once()
	r.On("run", "ps", mock.Anything).Return("", errors.New("ps: exited 1")).Once()

	p := &PSProvider{runner: r}
	snap, err := p.Snapshot(context.Background(), Options{WithArgs: true})
	assert.NoError(t, err)
	assert.Equal(t, 5, snap.Len())
}

func TestPSProviderRunFailure(t *testing.T) {
	r := new(runnerMock)
	r.On("run", "ps", mock.Anything).Return("", errors.New("exec: \"ps\": not found"))

	p := &PSProvider{runner: r}
	_, err := p.Snapshot(context.Background(), Options{})
	assert.ErrorIs(t, err, ErrSnapshotUnavailable)
}

func TestPSProviderEmptyOutput(t *testing.T) {
	r := new(runnerMock)
	r.On("run", "ps", mock.Anything).Return("\n   \n", nil)

	p := &PSProvider{runner: r}
	_, err := p.Snapshot(context.Background(), Options{})
	assert.ErrorIs(t, err, ErrSnapshotUnavailable)
}

func TestParsePSLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		ok   bool
		rec  model.ProcessRecord
	}{
		{
			"plain line",
			"  42   1  2048 nginx",
			true,
			model.ProcessRecord{PID: 42, ParentPID: 1, HasParent: true, RSSBytes: 2048 * 1024, Name: "nginx"},
		},
		{
			"name with spaces",
			"  99   42  100 helper process (gpu)",
			true,
			model.ProcessRecord{PID: 99, ParentPID: 42, HasParent: true, RSSBytes: 100 * 1024, Name: "helper process (gpu)"},
		},
		{"header leftovers", "PID PPID RSS COMM", false, model.ProcessRecord{}},
		{"too few fields", "42 1 2048", false, model.ProcessRecord{}},
		{"negative pid", "-1 0 0 weird", false, model.ProcessRecord{}},
		{"empty", "", false, model.ProcessRecord{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, ok := parsePSLine(tt.line)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.rec, rec)
			}
		})
	}
}
