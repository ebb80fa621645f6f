package run

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/juanvolpe/Productivity-app/internal/apperr"
	"github.com/juanvolpe/Productivity-app/internal/model"
)

// Store is what the session manager needs from persistence: loading the
// playlist and day state when a run opens, and writing completion events
// while it progresses.
type Store interface {
	CompletionStore
	GetPlaylistByID(id int) (model.Playlist, error)
	ListCompletionsForDay(playlistID int, day time.Time) ([]model.TaskCompletion, error)
}

// Session is one user-driven traversal of a playlist's tasks for a day.
type Session struct {
	ID         string
	PlaylistID int
	Day        time.Time
	engine     *Engine
}

func (s *Session) Engine() *Engine { return s.engine }

// Manager owns the live run sessions. Sessions are in-memory only; closing
// one discards the working copy, never the persisted history.
type Manager struct {
	mu       sync.Mutex
	store    Store
	sessions map[string]*Session

	// tickEvery is one second in production; tests shorten it.
	tickEvery time.Duration
}

func NewManager(store Store) *Manager {
	return &Manager{
		store:     store,
		sessions:  make(map[string]*Session),
		tickEvery: time.Second,
	}
}

// Open loads the playlist and the day's completion rows and builds a fresh
// engine for them.
func (m *Manager) Open(playlistID int, day time.Time) (*Session, error) {
	playlist, err := m.store.GetPlaylistByID(playlistID)
	if err != nil {
		return nil, err
	}
	completions, err := m.store.ListCompletionsForDay(playlistID, day)
	if err != nil {
		return nil, err
	}

	completedToday := make(map[int]bool, len(completions))
	for _, c := range completions {
		completedToday[c.TaskID] = true
	}

	s := &Session{
		ID:         uuid.NewString(),
		PlaylistID: playlistID,
		Day:        day,
		engine:     New(m.store, playlistID, day, playlist.Tasks, completedToday),
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	log.Info().Str("session_id", s.ID).Int("playlist_id", playlistID).
		Str("date", day.Format("2006-01-02")).Msg("run session opened")
	return s, nil
}

func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return s, nil
}

// Start begins the countdown on the session's current task and spawns the
// tick loop for the new timer generation. The loop exits on its own as soon
// as the engine reports the generation stale. Starting an already running
// session spawns nothing: the existing tick loop stays the only live one.
func (m *Manager) Start(id string) error {
	s, err := m.Get(id)
	if err != nil {
		return err
	}
	gen, started, err := s.engine.Start()
	if err != nil {
		return err
	}
	if started {
		go m.runTicker(s.engine, gen)
	}
	return nil
}

func (m *Manager) runTicker(e *Engine, gen int) {
	t := time.NewTicker(m.tickEvery)
	defer t.Stop()
	for range t.C {
		if !e.Tick(gen) {
			return
		}
	}
}

// Close discards the session. The engine is closed first so a late tick or
// persistence result cannot touch state that is no longer current.
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	if !ok {
		return apperr.ErrNotFound
	}
	s.engine.Close()
	log.Info().Str("session_id", id).Msg("run session closed")
	return nil
}
