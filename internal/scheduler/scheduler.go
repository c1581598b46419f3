package scheduler

import (
	"container/list"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/specialistvlad/typecollect/internal/ctxlog"
)

// ErrDeadlock is returned when a full rotation of the ring makes no progress.
var ErrDeadlock = errors.New("unresolvable reference: no task can make progress")

// Task is one suspendable unit of work. Identity is the Task value itself,
// so implementations must be pointers.
type Task interface {
	// Step resumes the task until it suspends or finishes.
	Step() (done bool, err error)
	// Close releases a task that will never be resumed again.
	Close()
	// String describes the task and what it is waiting for.
	String() string
}

// DeadlockError lists the tasks left waiting when a deadlock was detected.
type DeadlockError struct {
	Pending []string
}

func (e *DeadlockError) Error() string {
	return fmt.Sprintf("%s: %d task(s) waiting:\n- %s", ErrDeadlock, len(e.Pending), strings.Join(e.Pending, "\n- "))
}

// Is makes errors.Is(err, ErrDeadlock) match.
func (e *DeadlockError) Is(target error) bool {
	return target == ErrDeadlock
}

// Ring is the round-robin queue of pending tasks.
type Ring struct {
	tasks    *list.List
	progress bool
	turns    int
}

// New creates an empty ring.
func New() *Ring {
	return &Ring{tasks: list.New()}
}

// Spawn enqueues t at the tail of the ring. New work counts as progress.
func (r *Ring) Spawn(t Task) {
	r.tasks.PushBack(t)
	r.progress = true
}

// Progress records that real work happened since the marker was last set.
func (r *Ring) Progress() {
	r.progress = true
}

// Len returns the number of pending tasks.
func (r *Ring) Len() int {
	return r.tasks.Len()
}

// Turns returns how many steps have been taken since the ring was created.
func (r *Ring) Turns() int {
	return r.turns
}

// Drain runs tasks until the ring is empty. A task error, a deadlock or the
// cancellation of ctx stops the loop; all remaining tasks are then closed and
// discarded.
func (r *Ring) Drain(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Scheduler drain started.", "pending", r.tasks.Len())

	var marker Task
	for r.tasks.Len() > 0 {
		if err := ctx.Err(); err != nil {
			r.abort()
			return err
		}

		t := r.tasks.Remove(r.tasks.Front()).(Task)
		done, err := t.Step()
		r.turns++
		if err != nil {
			logger.Debug("Task failed, aborting drain.", "task", t.String(), "error", err)
			t.Close()
			r.abort()
			return err
		}
		if done {
			r.progress = true
			continue
		}

		r.tasks.PushBack(t)

		if r.progress {
			marker = t
			r.progress = false
		} else if t == marker {
			pending := r.pending()
			logger.Debug("Full rotation without progress.", "pending", len(pending))
			r.abort()
			return &DeadlockError{Pending: pending}
		}
	}

	logger.Debug("Scheduler drain finished.", "turns", r.turns)
	return nil
}

func (r *Ring) pending() []string {
	out := make([]string, 0, r.tasks.Len())
	for e := r.tasks.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value.(Task).String())
	}
	return out
}

func (r *Ring) abort() {
	for e := r.tasks.Front(); e != nil; e = e.Next() {
		e.Value.(Task).Close()
	}
	r.tasks.Init()
	r.progress = false
}
