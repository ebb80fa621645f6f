// exposes a Store interface that is passed to API handlers and jobs
package db

import (
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/juanvolpe/Productivity-app/internal/model"
)

type Store interface {
	// playlist functions
	CreatePlaylist(in model.PlaylistCreate) (model.Playlist, error)
	GetPlaylistByID(id int) (model.Playlist, error)
	ListPlaylists() ([]model.Playlist, error)
	ListPlaylistsForWeekday(day time.Weekday) ([]model.Playlist, error)
	UpdatePlaylist(id int, patch model.PlaylistPatch) error
	DeletePlaylist(id int) error

	// task + completion functions
	GetTaskByID(id int) (model.Task, error)
	SetTaskCompletion(taskID int, day time.Time, completed bool) error
	ListCompletionsForDay(playlistID int, day time.Time) ([]model.TaskCompletion, error)
	ClearCompletionsForDay(playlistID int, day time.Time) error
	SyncLegacyFlags(day time.Time) error
}

type pgStore struct {
	db *sqlx.DB
}

// compile-time check that pgStore implements Store
var _ Store = (*pgStore)(nil)

func NewStore(conn *sqlx.DB) Store {
	return &pgStore{db: conn}
}
