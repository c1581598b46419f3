package collector

import (
	"context"
	"fmt"
	"iter"

	"github.com/specialistvlad/typecollect/internal/command"
	"github.com/specialistvlad/typecollect/internal/ctxlog"
	"github.com/specialistvlad/typecollect/internal/scope"
	"github.com/specialistvlad/typecollect/internal/syntax"
)

// task runs its body in a pull coroutine. The body suspends by yielding and
// is resumed by the scheduler one step at a time.
type task struct {
	id      int
	label   string
	waiting string

	yield func(struct{}) bool
	next  func() (struct{}, bool)
	stop  func()
	err   error
}

func (t *task) Step() (bool, error) {
	if _, ok := t.next(); ok {
		return false, nil
	}
	return true, t.err
}

func (t *task) Close() {
	t.stop()
}

func (t *task) String() string {
	if t.waiting == "" {
		return fmt.Sprintf("#%d %s", t.id, t.label)
	}
	return fmt.Sprintf("#%d %s, waiting for %s", t.id, t.label, t.waiting)
}

// suspend hands control back to the scheduler. It fails once the task has
// been closed and must not be resumed.
func (t *task) suspend(waiting string) error {
	t.waiting = waiting
	if !t.yield(struct{}{}) {
		return errStopped
	}
	t.waiting = ""
	return nil
}

// spawn enqueues a task whose body starts on its first step.
func (c *Collector) spawn(ctx context.Context, group, label string, body func(t *task) error) {
	t := &task{id: c.nextID, label: label}
	c.nextID++
	t.next, t.stop = iter.Pull(func(yield func(struct{}) bool) {
		t.yield = yield
		t.err = body(t)
	})
	c.ring.Spawn(t)
	c.metrics.TaskSpawned(group)
	ctxlog.FromContext(ctx).Debug("Task spawned.", "task", t.String())
}

// spawnNode spawns the task that extracts one claimed node.
func (c *Collector) spawnNode(ctx context.Context, group *command.Group, n *syntax.Node, s *scope.Scope, bindings []binding) {
	label := fmt.Sprintf("%s %s %s at %s", group.Name(), n.Kind, scope.InstanceKey(n.Name, values(bindings)), n.Range.String())
	c.spawn(ctx, group.Name(), label, func(t *task) error {
		f := &frame{c: c, ctx: ctx, task: t, group: group, scope: s, bindings: bindings}
		if _, err := f.extract(n); err != nil {
			return fmt.Errorf("%s: %w", label, err)
		}
		return nil
	})
}

// spawnExport spawns the task that resolves one exported name.
func (c *Collector) spawnExport(ctx context.Context, e scope.Export) {
	label := fmt.Sprintf("export %s of %s", e.Name, e.Scope.Module().Path)
	c.spawn(ctx, "export", label, func(t *task) error {
		f := &frame{c: c, ctx: ctx, task: t, group: c.definition, scope: e.Scope}
		if _, err := f.resolve(e.Scope, e.Name, nil); err != nil {
			return fmt.Errorf("%s: %w", label, err)
		}
		return nil
	})
}
