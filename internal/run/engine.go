// Package run drives a user through one playlist's ordered tasks for a
// single day: per-task countdown, start/pause/complete/restart transitions
// and persistence of completion events. The in-memory state is a disposable
// working copy; the completion rows in storage stay the source of truth.
package run

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/juanvolpe/Productivity-app/internal/model"
	"github.com/juanvolpe/Productivity-app/internal/schedule"
)

// State is the lifecycle of one task inside a run.
type State int

const (
	Idle State = iota
	Running
	Paused
	Completed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Completed:
		return "completed"
	}
	return "unknown"
}

var (
	ErrClosed        = errors.New("run session is closed")
	ErrTaskCompleted = errors.New("task is already completed")
	ErrNotCompleted  = errors.New("task is not completed")
	ErrNoTasks       = errors.New("playlist has no tasks")
	ErrBadIndex      = errors.New("task index out of range")
)

// CompletionStore is the persistence port the engine writes completion
// events through. Implementations must be idempotent per (task, day).
type CompletionStore interface {
	SetTaskCompletion(taskID int, day time.Time, completed bool) error
}

// TaskRun is one task's live state within the engine.
type TaskRun struct {
	Task      model.Task
	State     State
	Remaining int // seconds
}

// Expired reports whether the countdown ran out without the task being
// completed. Reaching zero never completes a task by itself.
func (t TaskRun) Expired() bool {
	return t.Remaining == 0 && t.State != Completed
}

// Engine is a single-playlist run. All methods are safe for concurrent use,
// but the model is cooperative: one cursor, one live countdown, ticks for
// anything but the current generation are dropped.
type Engine struct {
	mu    sync.Mutex
	store CompletionStore

	playlistID int
	day        time.Time
	tasks      []TaskRun
	cursor     int

	// gen invalidates outstanding timer callbacks. Every transition that
	// stops or restarts the countdown bumps it; a tick carrying a stale
	// generation is a no-op.
	gen    int
	closed bool
}

// New builds an engine for one playlist and day. Tasks are ordered by their
// sequence position; completedToday marks tasks that already have a
// completion row for the day.
func New(store CompletionStore, playlistID int, day time.Time, tasks []model.Task, completedToday map[int]bool) *Engine {
	ordered := make([]model.Task, len(tasks))
	copy(ordered, tasks)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Order < ordered[j].Order })

	runs := make([]TaskRun, 0, len(ordered))
	for _, t := range ordered {
		state := Idle
		if completedToday[t.ID] {
			state = Completed
		}
		runs = append(runs, TaskRun{
			Task:      t,
			State:     state,
			Remaining: t.Duration * 60,
		})
	}

	return &Engine{
		store:      store,
		playlistID: playlistID,
		day:        schedule.StartOfDay(day),
		tasks:      runs,
		cursor:     0,
	}
}

// Start begins (or resumes) the countdown on the current task and returns
// the timer generation the caller's tick loop must present. started is false
// when the task was already running; the live generation comes back and no
// new tick loop may be spawned for it, so one engine never has two live
// timer tokens. Completed tasks cannot be started.
func (e *Engine) Start() (gen int, started bool, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return 0, false, ErrClosed
	}
	if len(e.tasks) == 0 {
		return 0, false, ErrNoTasks
	}
	t := &e.tasks[e.cursor]
	if t.State == Completed {
		return 0, false, ErrTaskCompleted
	}
	if t.State == Running {
		return e.gen, false, nil
	}
	t.State = Running
	e.gen++
	return e.gen, true, nil
}

// Pause freezes the current task's countdown. Pausing something that is not
// running is a no-op.
func (e *Engine) Pause() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrClosed
	}
	if len(e.tasks) == 0 {
		return nil
	}
	t := &e.tasks[e.cursor]
	if t.State == Running {
		t.State = Paused
		e.gen++
	}
	return nil
}

// Tick applies one elapsed second to the current task. It returns false when
// the caller's timer loop should stop: the generation is stale, the session
// is closed, or the task is no longer running. Remaining time never goes
// below zero and hitting zero does not complete the task.
func (e *Engine) Tick(gen int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed || gen != e.gen {
		return false
	}
	t := &e.tasks[e.cursor]
	if t.State != Running {
		return false
	}
	if t.Remaining > 0 {
		t.Remaining--
	}
	return true
}

// Complete stops the timer, persists a completion for (task, day) and
// advances the cursor to the next task unless this was the last one. The
// in-memory mark is applied optimistically; if the write fails the previous
// state and cursor are restored and the error surfaces to the caller.
func (e *Engine) Complete() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrClosed
	}
	if len(e.tasks) == 0 {
		return ErrNoTasks
	}

	t := &e.tasks[e.cursor]
	if t.State == Completed {
		// re-completing the same day is a no-op; storage is idempotent too
		return nil
	}

	prevState := t.State
	prevCursor := e.cursor

	e.gen++ // cancel the countdown before anything else
	t.State = Completed

	var next *TaskRun
	var prevNext TaskRun
	if e.cursor < len(e.tasks)-1 {
		e.cursor++
		next = &e.tasks[e.cursor]
		prevNext = *next
		if next.State != Completed {
			next.State = Idle
			next.Remaining = next.Task.Duration * 60
		}
	}

	if err := e.store.SetTaskCompletion(t.Task.ID, e.day, true); err != nil {
		// compensating transition: un-complete, restore the cursor and the
		// next task's state and countdown. A task that was Running comes back
		// Paused: the generation bump already cancelled its timer token, so
		// reporting Running would claim a countdown that no longer ticks.
		if prevState == Running {
			prevState = Paused
		}
		t.State = prevState
		e.cursor = prevCursor
		if next != nil {
			*next = prevNext
		}
		return fmt.Errorf("save completion for task %d: %w", t.Task.ID, err)
	}
	return nil
}

// Restart returns the current task from Completed to Idle with a full
// countdown and clears its completion mark for the day. Like Complete, the
// local change is provisional until the write succeeds.
func (e *Engine) Restart() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrClosed
	}
	if len(e.tasks) == 0 {
		return ErrNoTasks
	}

	t := &e.tasks[e.cursor]
	if t.State != Completed {
		return ErrNotCompleted
	}

	prevRemaining := t.Remaining
	e.gen++
	t.State = Idle
	t.Remaining = t.Task.Duration * 60

	if err := e.store.SetTaskCompletion(t.Task.ID, e.day, false); err != nil {
		t.State = Completed
		t.Remaining = prevRemaining
		return fmt.Errorf("clear completion for task %d: %w", t.Task.ID, err)
	}
	return nil
}

// Select repoints the cursor at another task. The active countdown stops
// first — no two tasks ever tick at once — and every other task keeps its
// remaining time.
func (e *Engine) Select(index int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrClosed
	}
	if index < 0 || index >= len(e.tasks) {
		return ErrBadIndex
	}
	cur := &e.tasks[e.cursor]
	if cur.State == Running {
		cur.State = Paused
	}
	e.gen++
	e.cursor = index
	return nil
}

// Close cancels any pending countdown and makes every later call fail fast.
// A persistence result arriving after Close cannot touch this state.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	e.gen++
}

// Progress reports completed/total and a percentage. An empty task list is
// 0%, never a division error.
func (e *Engine) Progress() (completed, total int, percent float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.progressLocked()
}

func (e *Engine) progressLocked() (completed, total int, percent float64) {
	total = len(e.tasks)
	for _, t := range e.tasks {
		if t.State == Completed {
			completed++
		}
	}
	if total == 0 {
		return 0, 0, 0
	}
	return completed, total, float64(completed) / float64(total) * 100
}

// Snapshot is a point-in-time copy of the run for presentation.
type Snapshot struct {
	PlaylistID     int
	Day            time.Time
	Cursor         int
	Tasks          []TaskRun
	CompletedCount int
	TotalCount     int
	Percent        float64
}

func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	tasks := make([]TaskRun, len(e.tasks))
	copy(tasks, e.tasks)
	completed, total, percent := e.progressLocked()
	return Snapshot{
		PlaylistID:     e.playlistID,
		Day:            e.day,
		Cursor:         e.cursor,
		Tasks:          tasks,
		CompletedCount: completed,
		TotalCount:     total,
		Percent:        percent,
	}
}
