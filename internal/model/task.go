package model

import "time"

type Task struct {
	ID         int       `db:"id"           json:"id"`
	PlaylistID int       `db:"playlist_id"  json:"playlist_id"`
	Title      string    `db:"title"        json:"title"`
	Duration   int       `db:"duration"     json:"duration"` // whole minutes
	Order      int       `db:"position"     json:"order"`
	// Legacy flag kept for older clients. Day-scoped TaskCompletion rows are
	// authoritative; this is re-derived from them on reads and by the nightly
	// rollover job.
	IsCompleted bool      `db:"is_completed" json:"is_completed"`
	CreatedAt   time.Time `db:"created_at"   json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"   json:"updated_at"`
}

// TaskCompletion records that a task was completed on one calendar day.
// At most one row exists per (task, day).
type TaskCompletion struct {
	ID          int       `db:"id"           json:"id"`
	TaskID      int       `db:"task_id"      json:"task_id"`
	CompletedOn time.Time `db:"completed_on" json:"completed_on"`
	CreatedAt   time.Time `db:"created_at"   json:"created_at"`
}
