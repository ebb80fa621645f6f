package db

import (
	"database/sql"
	"errors"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/juanvolpe/Productivity-app/internal/apperr"
	"github.com/juanvolpe/Productivity-app/internal/model"
)

// weekdayColumn maps a weekday to its boolean column. Whitelist keeps the
// dynamic column name out of user control.
func weekdayColumn(day time.Weekday) string {
	switch day {
	case time.Sunday:
		return "sunday"
	case time.Monday:
		return "monday"
	case time.Tuesday:
		return "tuesday"
	case time.Wednesday:
		return "wednesday"
	case time.Thursday:
		return "thursday"
	case time.Friday:
		return "friday"
	case time.Saturday:
		return "saturday"
	}
	return "sunday"
}

// CreatePlaylist inserts the playlist and its ordered tasks in one
// transaction; order is assigned 1..N from the submitted sequence. A playlist
// is never persisted without its task set.
func (s *pgStore) CreatePlaylist(in model.PlaylistCreate) (model.Playlist, error) {
	if err := in.Validate(); err != nil {
		return model.Playlist{}, err
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return model.Playlist{}, apperr.Persistence("begin create playlist", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				log.Error().Err(rbErr).Msg("[db] CreatePlaylist: rollback failed")
			}
		}
	}()

	var p model.Playlist
	const q = `
	INSERT INTO playlists
	  (name, description, icon, sunday, monday, tuesday, wednesday, thursday, friday, saturday, created_at, updated_at)
	VALUES
	  ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now(), now())
	RETURNING id, name, description, icon,
	          sunday, monday, tuesday, wednesday, thursday, friday, saturday,
	          created_at, updated_at;`
	if err = tx.Get(&p, q,
		in.Name, in.Description, in.Icon,
		in.Days.Sunday, in.Days.Monday, in.Days.Tuesday, in.Days.Wednesday,
		in.Days.Thursday, in.Days.Friday, in.Days.Saturday,
	); err != nil {
		log.Error().Err(err).Msg("[db] CreatePlaylist: failed to insert playlist")
		return model.Playlist{}, apperr.Persistence("insert playlist", err)
	}

	const taskQ = `
	INSERT INTO tasks (playlist_id, title, duration, position, is_completed, created_at, updated_at)
	VALUES ($1, $2, $3, $4, false, now(), now())
	RETURNING id, playlist_id, title, duration, position, is_completed, created_at, updated_at;`
	for i, t := range in.Tasks {
		var task model.Task
		if err = tx.Get(&task, taskQ, p.ID, t.Title, t.Duration, i+1); err != nil {
			log.Error().Err(err).Int("playlist_id", p.ID).Msg("[db] CreatePlaylist: failed to insert task")
			return model.Playlist{}, apperr.Persistence("insert task", err)
		}
		p.Tasks = append(p.Tasks, task)
	}

	if err = tx.Commit(); err != nil {
		return model.Playlist{}, apperr.Persistence("commit create playlist", err)
	}
	return p, nil
}

func (s *pgStore) GetPlaylistByID(id int) (model.Playlist, error) {
	var p model.Playlist
	const q = `
	SELECT id, name, description, icon,
	       sunday, monday, tuesday, wednesday, thursday, friday, saturday,
	       created_at, updated_at
	  FROM playlists
	 WHERE id = $1;`
	if err := s.db.Get(&p, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Playlist{}, apperr.ErrNotFound
		}
		log.Error().Err(err).Int("playlist_id", id).Msg("[db] GetPlaylistByID: query failed")
		return model.Playlist{}, apperr.Persistence("get playlist", err)
	}

	tasks, err := s.listTasks(id)
	if err != nil {
		return p, err
	}
	p.Tasks = tasks
	return p, nil
}

// ListPlaylists returns every playlist with its tasks attached,
// most-recently-updated first.
func (s *pgStore) ListPlaylists() ([]model.Playlist, error) {
	var out []model.Playlist
	const q = `
	SELECT id, name, description, icon,
	       sunday, monday, tuesday, wednesday, thursday, friday, saturday,
	       created_at, updated_at
	  FROM playlists
	 ORDER BY updated_at DESC, id;`
	if err := s.db.Select(&out, q); err != nil {
		log.Error().Err(err).Msg("[db] ListPlaylists: failed to select playlists")
		return nil, apperr.Persistence("list playlists", err)
	}

	for i := range out {
		tasks, err := s.listTasks(out[i].ID)
		if err != nil {
			log.Error().Err(err).Msgf("[db] ListPlaylists: failed to load tasks for playlist %d", out[i].ID)
			return nil, err
		}
		out[i].Tasks = tasks
	}
	return out, nil
}

// ListPlaylistsForWeekday returns playlists whose flag for the given weekday
// is true, most-recently-updated first, tasks attached.
func (s *pgStore) ListPlaylistsForWeekday(day time.Weekday) ([]model.Playlist, error) {
	var out []model.Playlist
	q := `
	SELECT id, name, description, icon,
	       sunday, monday, tuesday, wednesday, thursday, friday, saturday,
	       created_at, updated_at
	  FROM playlists
	 WHERE ` + weekdayColumn(day) + ` = true
	 ORDER BY updated_at DESC, id;`
	if err := s.db.Select(&out, q); err != nil {
		log.Error().Err(err).Str("weekday", day.String()).Msg("[db] ListPlaylistsForWeekday: query failed")
		return nil, apperr.Persistence("list playlists for weekday", err)
	}

	for i := range out {
		tasks, err := s.listTasks(out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Tasks = tasks
	}
	return out, nil
}

// UpdatePlaylist applies the field patch and the weekday patch in one
// transaction; a failed weekday write rolls the field changes back too.
func (s *pgStore) UpdatePlaylist(id int, patch model.PlaylistPatch) error {
	if patch.Name != nil && *patch.Name == "" {
		return apperr.Invalid("playlist name must not be empty")
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return apperr.Persistence("begin update playlist", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				log.Error().Err(rbErr).Msg("[db] UpdatePlaylist: rollback failed")
			}
		}
	}()

	var res sql.Result
	res, err = tx.Exec(`
		UPDATE playlists
		SET
		name        = COALESCE($2, name),
		description = COALESCE($3, description),
		icon        = COALESCE($4, icon),
		updated_at  = now()
		WHERE id = $1;`,
		id, patch.Name, patch.Description, patch.Icon,
	)
	if err != nil {
		log.Error().Err(err).Int("playlist_id", id).Msg("[db] UpdatePlaylist: update failed")
		return apperr.Persistence("update playlist", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = apperr.ErrNotFound
		return err
	}

	if patch.Days != nil {
		d := patch.Days
		if _, err = tx.Exec(`
			UPDATE playlists
			SET sunday = $2, monday = $3, tuesday = $4, wednesday = $5,
			    thursday = $6, friday = $7, saturday = $8, updated_at = now()
			WHERE id = $1;`,
			id, d.Sunday, d.Monday, d.Tuesday, d.Wednesday, d.Thursday, d.Friday, d.Saturday,
		); err != nil {
			log.Error().Err(err).Int("playlist_id", id).Msg("[db] UpdatePlaylist: weekday update failed")
			return apperr.Persistence("update playlist weekdays", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return apperr.Persistence("commit update playlist", err)
	}
	return nil
}

// DeletePlaylist removes the playlist; tasks and their completions go with it
// via ON DELETE CASCADE.
func (s *pgStore) DeletePlaylist(id int) error {
	res, err := s.db.Exec(`DELETE FROM playlists WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("playlist_id", id).Msg("[db] DeletePlaylist: delete failed")
		return apperr.Persistence("delete playlist", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (s *pgStore) GetTaskByID(id int) (model.Task, error) {
	var t model.Task
	const q = `
	SELECT id, playlist_id, title, duration, position, is_completed, created_at, updated_at
	  FROM tasks
	 WHERE id = $1;`
	if err := s.db.Get(&t, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Task{}, apperr.ErrNotFound
		}
		log.Error().Err(err).Int("task_id", id).Msg("[db] GetTaskByID: query failed")
		return model.Task{}, apperr.Persistence("get task", err)
	}
	return t, nil
}

func (s *pgStore) listTasks(playlistID int) ([]model.Task, error) {
	var list []model.Task
	const q = `
	SELECT id, playlist_id, title, duration, position, is_completed, created_at, updated_at
	  FROM tasks
	 WHERE playlist_id = $1
	 ORDER BY position;`
	if err := s.db.Select(&list, q, playlistID); err != nil {
		log.Error().Err(err).Int("playlist_id", playlistID).Msg("[db] listTasks: query failed")
		return nil, apperr.Persistence("list tasks", err)
	}
	return list, nil
}
