package model

import (
	"strings"
	"time"

	"github.com/juanvolpe/Productivity-app/internal/apperr"
)

type Playlist struct {
	ID          int       `db:"id"           json:"id"`
	Name        string    `db:"name"         json:"name"`
	Description *string   `db:"description"  json:"description,omitempty"`
	Icon        *string   `db:"icon"         json:"icon,omitempty"`
	Sunday      bool      `db:"sunday"       json:"sunday"`
	Monday      bool      `db:"monday"       json:"monday"`
	Tuesday     bool      `db:"tuesday"      json:"tuesday"`
	Wednesday   bool      `db:"wednesday"    json:"wednesday"`
	Thursday    bool      `db:"thursday"     json:"thursday"`
	Friday      bool      `db:"friday"       json:"friday"`
	Saturday    bool      `db:"saturday"     json:"saturday"`
	CreatedAt   time.Time `db:"created_at"   json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"   json:"updated_at"`
	Tasks       []Task    `db:"-"            json:"tasks,omitempty"`
}

// ActiveOn reports whether the playlist recurs on the given weekday
// (Sunday=0 .. Saturday=6).
func (p Playlist) ActiveOn(day time.Weekday) bool {
	switch day {
	case time.Sunday:
		return p.Sunday
	case time.Monday:
		return p.Monday
	case time.Tuesday:
		return p.Tuesday
	case time.Wednesday:
		return p.Wednesday
	case time.Thursday:
		return p.Thursday
	case time.Friday:
		return p.Friday
	case time.Saturday:
		return p.Saturday
	}
	return false
}

// WeekdayFlags is the seven-day recurrence pattern of a playlist.
type WeekdayFlags struct {
	Sunday    bool `json:"sunday"`
	Monday    bool `json:"monday"`
	Tuesday   bool `json:"tuesday"`
	Wednesday bool `json:"wednesday"`
	Thursday  bool `json:"thursday"`
	Friday    bool `json:"friday"`
	Saturday  bool `json:"saturday"`
}

func (w WeekdayFlags) Any() bool {
	return w.Sunday || w.Monday || w.Tuesday || w.Wednesday || w.Thursday || w.Friday || w.Saturday
}

// PlaylistCreate is the input for the atomic playlist+tasks create.
type PlaylistCreate struct {
	Name        string
	Description *string
	Icon        *string
	Days        WeekdayFlags
	Tasks       []TaskCreate
}

type TaskCreate struct {
	Title    string
	Duration int // whole minutes
}

// Validate rejects bad input before anything is written. A playlist with
// no active weekday is refused at creation even though readers tolerate one.
func (in PlaylistCreate) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return apperr.Invalid("playlist name must not be empty")
	}
	if !in.Days.Any() {
		return apperr.Invalid("at least one weekday must be selected")
	}
	for i, t := range in.Tasks {
		if strings.TrimSpace(t.Title) == "" {
			return apperr.Invalid("task %d: title must not be empty", i+1)
		}
		if t.Duration <= 0 {
			return apperr.Invalid("task %d: duration must be a positive number of minutes", i+1)
		}
	}
	return nil
}

// PlaylistPatch is a partial update; nil fields are left untouched.
type PlaylistPatch struct {
	Name        *string
	Description *string
	Icon        *string
	Days        *WeekdayFlags
}
