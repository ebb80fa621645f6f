package db

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juanvolpe/Productivity-app/internal/apperr"
	"github.com/juanvolpe/Productivity-app/internal/model"
)

// testStore connects to the database named by TEST_DATABASE_URL and runs the
// migrations. Tests using it are skipped when the variable is unset.
func testStore(t *testing.T) Store {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	conn, err := Init(url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, RunMigrations(conn, "../../migrations"))
	return NewStore(conn)
}

func TestUpdatePlaylistAppliesFieldsAndDaysTogether(t *testing.T) {
	store := testStore(t)

	desc := "integration fixture"
	pl, err := store.CreatePlaylist(model.PlaylistCreate{
		Name:        "Update target",
		Description: &desc,
		Days:        model.WeekdayFlags{Monday: true},
		Tasks:       []model.TaskCreate{{Title: "Stretch", Duration: 5}},
	})
	require.NoError(t, err)

	newName := "Renamed"
	days := model.WeekdayFlags{Tuesday: true, Thursday: true}
	require.NoError(t, store.UpdatePlaylist(pl.ID, model.PlaylistPatch{Name: &newName, Days: &days}))

	// a patch touching both fields and weekdays lands as one change
	got, err := store.GetPlaylistByID(pl.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	require.NotNil(t, got.Description)
	assert.Equal(t, desc, *got.Description)
	assert.False(t, got.Monday)
	assert.True(t, got.Tuesday)
	assert.True(t, got.Thursday)
}

func TestUpdatePlaylistMissing(t *testing.T) {
	store := testStore(t)

	name := "nobody home"
	err := store.UpdatePlaylist(99999999, model.PlaylistPatch{Name: &name})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
