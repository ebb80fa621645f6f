package run

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juanvolpe/Productivity-app/internal/apperr"
	"github.com/juanvolpe/Productivity-app/internal/model"
)

// fakeSessionStore backs a Manager with one canned playlist.
type fakeSessionStore struct {
	*fakeCompletions
	playlist    model.Playlist
	completions []model.TaskCompletion
}

func (f *fakeSessionStore) GetPlaylistByID(id int) (model.Playlist, error) {
	if id != f.playlist.ID {
		return model.Playlist{}, apperr.ErrNotFound
	}
	return f.playlist, nil
}

func (f *fakeSessionStore) ListCompletionsForDay(playlistID int, day time.Time) ([]model.TaskCompletion, error) {
	return f.completions, nil
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{
		fakeCompletions: newFakeCompletions(),
		playlist: model.Playlist{
			ID:     1,
			Name:   "Morning",
			Monday: true,
			Tasks:  twoTasks(),
		},
	}
}

func TestManagerOpenLoadsDayState(t *testing.T) {
	store := newFakeSessionStore()
	store.completions = []model.TaskCompletion{{ID: 1, TaskID: 10, CompletedOn: runDay}}
	mgr := NewManager(store)

	s, err := mgr.Open(1, runDay)
	require.NoError(t, err)
	assert.NotEmpty(t, s.ID)

	snap := s.Engine().Snapshot()
	assert.Equal(t, Completed, snap.Tasks[0].State)
	assert.Equal(t, Idle, snap.Tasks[1].State)

	got, err := mgr.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)
}

func TestManagerOpenUnknownPlaylist(t *testing.T) {
	mgr := NewManager(newFakeSessionStore())
	_, err := mgr.Open(99, runDay)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestManagerStartTicksTheCurrentTask(t *testing.T) {
	store := newFakeSessionStore()
	mgr := NewManager(store)
	mgr.tickEvery = time.Millisecond

	s, err := mgr.Open(1, runDay)
	require.NoError(t, err)
	require.NoError(t, mgr.Start(s.ID))

	assert.Eventually(t, func() bool {
		return s.Engine().Snapshot().Tasks[0].Remaining < 5*60
	}, time.Second, time.Millisecond, "ticker should decrement the running task")

	// pausing cancels the live ticker; remaining time settles
	require.NoError(t, s.Engine().Pause())
	settled := s.Engine().Snapshot().Tasks[0].Remaining
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, settled, s.Engine().Snapshot().Tasks[0].Remaining)
}

func TestManagerDoubleStartKeepsSingleTicker(t *testing.T) {
	store := newFakeSessionStore()
	mgr := NewManager(store)
	mgr.tickEvery = 10 * time.Millisecond

	s, err := mgr.Open(1, runDay)
	require.NoError(t, err)
	require.NoError(t, mgr.Start(s.ID))
	require.NoError(t, mgr.Start(s.ID), "starting a running session is a no-op")

	time.Sleep(300 * time.Millisecond)
	require.NoError(t, s.Engine().Pause())

	// one ticker yields roughly 30 decrements here; a leaked second ticker
	// would double that
	elapsed := 5*60 - s.Engine().Snapshot().Tasks[0].Remaining
	assert.Greater(t, elapsed, 0)
	assert.LessOrEqual(t, elapsed, 45, "remaining time must drop one unit per tick interval")
}

func TestManagerCloseDiscardsSession(t *testing.T) {
	store := newFakeSessionStore()
	mgr := NewManager(store)

	s, err := mgr.Open(1, runDay)
	require.NoError(t, err)
	require.NoError(t, mgr.Close(s.ID))

	_, err = mgr.Get(s.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.ErrorIs(t, mgr.Close(s.ID), apperr.ErrNotFound)

	// the discarded engine refuses further work
	_, _, err = s.Engine().Start()
	assert.ErrorIs(t, err, ErrClosed)
}
