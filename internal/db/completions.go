package db

import (
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/juanvolpe/Productivity-app/internal/apperr"
	"github.com/juanvolpe/Productivity-app/internal/model"
)

// dateOf strips any time-of-day component; completions compare by calendar
// day, never by timestamp.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SetTaskCompletion records or removes a completion for (task, day).
// Idempotent in both directions: re-completing hits the unique
// (task_id, completed_on) key and inserts nothing.
func (s *pgStore) SetTaskCompletion(taskID int, day time.Time, completed bool) error {
	if completed {
		_, err := s.db.Exec(`
		INSERT INTO task_completions (task_id, completed_on, created_at)
		VALUES ($1, $2, now())
		ON CONFLICT (task_id, completed_on) DO NOTHING;`,
			taskID, dateOf(day),
		)
		if err != nil {
			log.Error().Err(err).Int("task_id", taskID).Msg("[db] SetTaskCompletion: insert failed")
			return apperr.Persistence("set task completion", err)
		}
		return nil
	}

	_, err := s.db.Exec(`
	DELETE FROM task_completions
	 WHERE task_id = $1 AND completed_on = $2;`,
		taskID, dateOf(day),
	)
	if err != nil {
		log.Error().Err(err).Int("task_id", taskID).Msg("[db] SetTaskCompletion: delete failed")
		return apperr.Persistence("clear task completion", err)
	}
	return nil
}

// ListCompletionsForDay returns the completion rows for one playlist scoped
// to a single calendar day.
func (s *pgStore) ListCompletionsForDay(playlistID int, day time.Time) ([]model.TaskCompletion, error) {
	var out []model.TaskCompletion
	const q = `
	SELECT c.id, c.task_id, c.completed_on, c.created_at
	  FROM task_completions c
	  JOIN tasks t ON c.task_id = t.id
	 WHERE t.playlist_id = $1
	   AND c.completed_on = $2
	 ORDER BY c.id;`
	if err := s.db.Select(&out, q, playlistID, dateOf(day)); err != nil {
		log.Error().Err(err).Int("playlist_id", playlistID).Msg("[db] ListCompletionsForDay: query failed")
		return nil, apperr.Persistence("list completions", err)
	}
	return out, nil
}

// ClearCompletionsForDay resets one playlist's progress for a single day.
// Other days' history is untouched.
func (s *pgStore) ClearCompletionsForDay(playlistID int, day time.Time) error {
	_, err := s.db.Exec(`
	DELETE FROM task_completions c
	 USING tasks t
	 WHERE c.task_id = t.id
	   AND t.playlist_id = $1
	   AND c.completed_on = $2;`,
		playlistID, dateOf(day),
	)
	if err != nil {
		log.Error().Err(err).Int("playlist_id", playlistID).Msg("[db] ClearCompletionsForDay: delete failed")
		return apperr.Persistence("clear completions for day", err)
	}
	return nil
}

// SyncLegacyFlags recomputes every task's legacy is_completed column from
// the completion rows of the given day. Run nightly so older clients that
// still read the flag see "completed today".
func (s *pgStore) SyncLegacyFlags(day time.Time) error {
	_, err := s.db.Exec(`
	UPDATE tasks
	   SET is_completed = EXISTS (
	           SELECT 1 FROM task_completions c
	            WHERE c.task_id = tasks.id
	              AND c.completed_on = $1
	       ),
	       updated_at = now();`,
		dateOf(day),
	)
	if err != nil {
		log.Error().Err(err).Msg("[db] SyncLegacyFlags: update failed")
		return apperr.Persistence("sync legacy flags", err)
	}
	return nil
}
