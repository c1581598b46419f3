package scheduler

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/specialistvlad/typecollect/internal/ctxlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTask finishes after a fixed number of steps, optionally reporting
// progress on each step through the ring it belongs to.
type fakeTask struct {
	name     string
	ring     *Ring
	steps    int
	progress bool
	err      error
	log      *[]string
	closed   bool
	// waitFor blocks the task until the flag is set.
	waitFor *bool
	// sets is raised when the task finishes.
	sets *bool
}

func (f *fakeTask) Step() (bool, error) {
	*f.log = append(*f.log, f.name)
	if f.err != nil {
		return false, f.err
	}
	if f.waitFor != nil && !*f.waitFor {
		return false, nil
	}
	if f.progress {
		f.ring.Progress()
	}
	f.steps--
	if f.steps <= 0 {
		if f.sets != nil {
			*f.sets = true
		}
		return true, nil
	}
	return false, nil
}

func (f *fakeTask) Close()         { f.closed = true }
func (f *fakeTask) String() string { return f.name }

func testContext() context.Context {
	return ctxlog.Discard(context.Background())
}

func TestDrain_RoundRobinOrder(t *testing.T) {
	// --- Arrange ---
	r := New()
	var log []string
	r.Spawn(&fakeTask{name: "a", ring: r, steps: 2, progress: true, log: &log})
	r.Spawn(&fakeTask{name: "b", ring: r, steps: 1, progress: true, log: &log})
	r.Spawn(&fakeTask{name: "c", ring: r, steps: 3, progress: true, log: &log})

	// --- Act ---
	err := r.Drain(testContext())

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "a", "c", "c"}, log)
	assert.Equal(t, 0, r.Len())
	assert.Equal(t, 6, r.Turns())
}

func TestDrain_WaitingTaskResumesAfterProducer(t *testing.T) {
	r := New()
	var log []string
	ready := false
	r.Spawn(&fakeTask{name: "consumer", ring: r, steps: 1, log: &log, waitFor: &ready})
	r.Spawn(&fakeTask{name: "producer", ring: r, steps: 2, progress: true, log: &log, sets: &ready})

	require.NoError(t, r.Drain(testContext()))
	assert.Equal(t, []string{"consumer", "producer", "consumer", "producer", "consumer"}, log)
}

func TestDrain_Deadlock(t *testing.T) {
	// --- Arrange ---
	r := New()
	var log []string
	never := false
	a := &fakeTask{name: "a waiting for B", ring: r, steps: 1, log: &log, waitFor: &never}
	b := &fakeTask{name: "b waiting for A", ring: r, steps: 1, log: &log, waitFor: &never}
	r.Spawn(a)
	r.Spawn(b)
	r.Progress()

	// --- Act ---
	err := r.Drain(testContext())

	// --- Assert ---
	require.ErrorIs(t, err, ErrDeadlock)
	var dl *DeadlockError
	require.True(t, errors.As(err, &dl))
	assert.ElementsMatch(t, []string{"a waiting for B", "b waiting for A"}, dl.Pending)
	assert.True(t, a.closed)
	assert.True(t, b.closed)
	assert.Equal(t, 0, r.Len())
}

func TestDrain_DeadlockAfterOtherTaskFinished(t *testing.T) {
	r := New()
	var log []string
	never := false
	r.Spawn(&fakeTask{name: "done", ring: r, steps: 1, log: &log})
	r.Spawn(&fakeTask{name: "stuck", ring: r, steps: 1, log: &log, waitFor: &never})

	err := r.Drain(testContext())
	require.ErrorIs(t, err, ErrDeadlock)
	assert.Equal(t, []string{"done", "stuck", "stuck"}, log)
}

func TestDrain_LoneWaitingTask(t *testing.T) {
	r := New()
	var log []string
	never := false
	r.Spawn(&fakeTask{name: "alone", ring: r, steps: 1, log: &log, waitFor: &never})

	err := r.Drain(testContext())

	require.ErrorIs(t, err, ErrDeadlock)
	assert.Equal(t, []string{"alone", "alone"}, log)
}

func TestDrain_TaskErrorAbortsRun(t *testing.T) {
	r := New()
	var log []string
	boom := fmt.Errorf("boom")
	other := &fakeTask{name: "other", ring: r, steps: 5, progress: true, log: &log}
	r.Spawn(&fakeTask{name: "failing", ring: r, err: boom, log: &log})
	r.Spawn(other)

	err := r.Drain(testContext())
	require.ErrorIs(t, err, boom)
	assert.True(t, other.closed)
	assert.Equal(t, []string{"failing"}, log)
}

func TestDrain_ContextCancelled(t *testing.T) {
	r := New()
	var log []string
	task := &fakeTask{name: "a", ring: r, steps: 1, log: &log}
	r.Spawn(task)

	ctx, cancel := context.WithCancel(testContext())
	cancel()

	require.ErrorIs(t, r.Drain(ctx), context.Canceled)
	assert.Empty(t, log)
	assert.True(t, task.closed)
}

func TestDrain_EmptyRing(t *testing.T) {
	require.NoError(t, New().Drain(testContext()))
}
