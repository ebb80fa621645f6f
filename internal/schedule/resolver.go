// Package schedule resolves which playlists are active on a calendar date
// and what their per-day completion state looks like. The resolver is a pure
// function over persisted records; it holds no state and performs no IO.
package schedule

import (
	"sort"
	"time"

	"github.com/juanvolpe/Productivity-app/internal/apperr"
	"github.com/juanvolpe/Productivity-app/internal/model"
)

// DayFormat is the wire format for calendar dates.
const DayFormat = "2006-01-02"

// ParseDay parses a YYYY-MM-DD date. It never falls back to "today";
// defaulting belongs to the caller.
func ParseDay(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, apperr.Invalid("date parameter is required")
	}
	t, err := time.Parse(DayFormat, s)
	if err != nil {
		return time.Time{}, apperr.Invalid("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// StartOfDay normalizes any time-of-day component to the day boundary.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether two instants fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// TaskDayView is a task definition joined with its completion state for one
// day. The schedule data is immutable; Completed is derived per day.
type TaskDayView struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Duration  int    `json:"duration"`
	Order     int    `json:"order"`
	Completed bool   `json:"is_completed"`
}

type PlaylistDayView struct {
	ID          int           `json:"id"`
	Name        string        `json:"name"`
	Description *string       `json:"description,omitempty"`
	Icon        *string       `json:"icon,omitempty"`
	Date        string        `json:"date"`
	// Completed preserves the historical playlist-level reading: true as soon
	// as any task has a completion recorded for the day. Strict callers can
	// compare CompletedCount against TotalCount instead.
	Completed      bool          `json:"is_completed"`
	CompletedCount int           `json:"completed_count"`
	TotalCount     int           `json:"total_count"`
	Tasks          []TaskDayView `json:"tasks"`
}

// ResolveForDate returns a day view for every playlist whose weekday flag
// matches date's weekday (Sunday=0 .. Saturday=6). Only completions falling
// on date's calendar day are joined; duplicate rows for a (task, day) count
// once. Tasks come back ascending by order; playlists keep the caller's
// order.
func ResolveForDate(date time.Time, playlists []model.Playlist, completions []model.TaskCompletion) []PlaylistDayView {
	day := StartOfDay(date)

	doneTasks := make(map[int]bool)
	for _, c := range completions {
		if SameDay(c.CompletedOn, day) {
			doneTasks[c.TaskID] = true
		}
	}

	views := make([]PlaylistDayView, 0, len(playlists))
	for _, p := range playlists {
		if !p.ActiveOn(day.Weekday()) {
			continue
		}

		tasks := make([]model.Task, len(p.Tasks))
		copy(tasks, p.Tasks)
		sort.SliceStable(tasks, func(i, j int) bool { return tasks[i].Order < tasks[j].Order })

		view := PlaylistDayView{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Icon:        p.Icon,
			Date:        day.Format(DayFormat),
			TotalCount:  len(tasks),
			Tasks:       make([]TaskDayView, 0, len(tasks)),
		}
		for _, t := range tasks {
			done := doneTasks[t.ID]
			if done {
				view.CompletedCount++
			}
			view.Tasks = append(view.Tasks, TaskDayView{
				ID:        t.ID,
				Title:     t.Title,
				Duration:  t.Duration,
				Order:     t.Order,
				Completed: done,
			})
		}
		view.Completed = view.CompletedCount > 0
		views = append(views, view)
	}
	return views
}
