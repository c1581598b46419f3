// Package scheduler drives cooperative resolution tasks to completion.
//
// # Why Scheduler Exists
//
// Resolving a declaration often has to wait: an imported module has not been
// declared yet, or a referenced type is still being defined by another task.
// Instead of blocking, a task suspends and hands control back. The scheduler
// owns the single loop that resumes suspended tasks until every one of them
// has finished.
//
// # How It Works
//
// The Ring is a strict round-robin queue:
//  1. Pop the task at the head of the ring
//  2. Advance it by exactly one step (until it finishes or suspends)
//  3. If it did not finish, push it back at the tail
//  4. Repeat until the ring is empty
//
// There is no priority and no preemption. Exactly one task runs at a time, so
// the state tasks share needs ordering, not locking.
//
// # Deadlock Detection
//
// Tasks report real work through Progress. Whenever a requeued task is seen
// while the progress flag is set, the flag is cleared and that task becomes
// the marker. Meeting the marker again with the flag still clear means a full
// rotation passed without any task advancing: the remaining tasks wait on
// each other and Drain fails with ErrDeadlock. Spawning or finishing a task
// counts as progress.
//
// # Re-entrancy
//
// Tasks may Spawn new tasks while the ring is draining. Only the caller that
// started Drain runs the loop; spawned tasks are simply picked up in turn.
package scheduler
