package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juanvolpe/Productivity-app/internal/apperr"
	"github.com/juanvolpe/Productivity-app/internal/model"
)

// 2024-01-01 was a Monday.
var (
	monday  = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tuesday = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
)

func morningPlaylist() model.Playlist {
	return model.Playlist{
		ID:     1,
		Name:   "Morning",
		Monday: true,
		Tasks: []model.Task{
			{ID: 10, PlaylistID: 1, Title: "Stretch", Duration: 5, Order: 1},
			{ID: 11, PlaylistID: 1, Title: "Journal", Duration: 10, Order: 2},
		},
	}
}

func TestResolveForDate_WeekdayMembership(t *testing.T) {
	playlists := []model.Playlist{morningPlaylist()}

	views := ResolveForDate(monday, playlists, nil)
	require.Len(t, views, 1)
	assert.Equal(t, "Morning", views[0].Name)
	require.Len(t, views[0].Tasks, 2)
	assert.Equal(t, "Stretch", views[0].Tasks[0].Title)
	assert.Equal(t, "Journal", views[0].Tasks[1].Title)

	views = ResolveForDate(tuesday, playlists, nil)
	assert.Empty(t, views)
}

func TestResolveForDate_EveryWeekday(t *testing.T) {
	// one playlist per weekday; each date resolves exactly its own
	playlists := make([]model.Playlist, 7)
	for i := range playlists {
		playlists[i] = model.Playlist{ID: i, Name: time.Weekday(i).String()}
		switch time.Weekday(i) {
		case time.Sunday:
			playlists[i].Sunday = true
		case time.Monday:
			playlists[i].Monday = true
		case time.Tuesday:
			playlists[i].Tuesday = true
		case time.Wednesday:
			playlists[i].Wednesday = true
		case time.Thursday:
			playlists[i].Thursday = true
		case time.Friday:
			playlists[i].Friday = true
		case time.Saturday:
			playlists[i].Saturday = true
		}
	}

	for offset := 0; offset < 7; offset++ {
		date := monday.AddDate(0, 0, offset)
		views := ResolveForDate(date, playlists, nil)
		require.Len(t, views, 1, "date %s", date)
		assert.Equal(t, date.Weekday().String(), views[0].Name)
	}
}

func TestResolveForDate_CompletionsAreDayScoped(t *testing.T) {
	playlists := []model.Playlist{morningPlaylist()}
	completions := []model.TaskCompletion{
		{ID: 1, TaskID: 10, CompletedOn: monday},
	}

	views := ResolveForDate(monday, playlists, completions)
	require.Len(t, views, 1)
	assert.True(t, views[0].Tasks[0].Completed)
	assert.False(t, views[0].Tasks[1].Completed)
	assert.True(t, views[0].Completed)
	assert.Equal(t, 1, views[0].CompletedCount)
	assert.Equal(t, 2, views[0].TotalCount)

	// a week later, same weekday, nothing is completed
	nextMonday := monday.AddDate(0, 0, 7)
	views = ResolveForDate(nextMonday, playlists, completions)
	require.Len(t, views, 1)
	assert.False(t, views[0].Tasks[0].Completed)
	assert.False(t, views[0].Completed)
	assert.Equal(t, 0, views[0].CompletedCount)
}

func TestResolveForDate_DuplicateRowsCountOnce(t *testing.T) {
	playlists := []model.Playlist{morningPlaylist()}
	completions := []model.TaskCompletion{
		{ID: 1, TaskID: 10, CompletedOn: monday},
		{ID: 2, TaskID: 10, CompletedOn: monday},
	}

	views := ResolveForDate(monday, playlists, completions)
	require.Len(t, views, 1)
	assert.Equal(t, 1, views[0].CompletedCount)
}

func TestResolveForDate_TimeOfDayIsNormalized(t *testing.T) {
	playlists := []model.Playlist{morningPlaylist()}
	completions := []model.TaskCompletion{
		// completion stamped late in the day still counts for that day
		{ID: 1, TaskID: 10, CompletedOn: monday.Add(23*time.Hour + 59*time.Minute)},
	}

	views := ResolveForDate(monday.Add(9*time.Hour), playlists, completions)
	require.Len(t, views, 1)
	assert.True(t, views[0].Tasks[0].Completed)
	assert.Equal(t, "2024-01-01", views[0].Date)
}

func TestResolveForDate_TasksSortedByOrder(t *testing.T) {
	p := model.Playlist{
		ID:     1,
		Name:   "Shuffled",
		Monday: true,
		Tasks: []model.Task{
			{ID: 3, Title: "third", Order: 3},
			{ID: 1, Title: "first", Order: 1},
			{ID: 2, Title: "second", Order: 2},
		},
	}

	views := ResolveForDate(monday, []model.Playlist{p}, nil)
	require.Len(t, views, 1)
	require.Len(t, views[0].Tasks, 3)
	assert.Equal(t, "first", views[0].Tasks[0].Title)
	assert.Equal(t, "second", views[0].Tasks[1].Title)
	assert.Equal(t, "third", views[0].Tasks[2].Title)
}

func TestResolveForDate_PreservesCallerPlaylistOrder(t *testing.T) {
	a := model.Playlist{ID: 1, Name: "A", Monday: true}
	b := model.Playlist{ID: 2, Name: "B", Monday: true}

	views := ResolveForDate(monday, []model.Playlist{b, a}, nil)
	require.Len(t, views, 2)
	assert.Equal(t, "B", views[0].Name)
	assert.Equal(t, "A", views[1].Name)
}

func TestParseDay(t *testing.T) {
	day, err := ParseDay("2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, monday, day)

	_, err = ParseDay("")
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, err = ParseDay("not-a-date")
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, err = ParseDay("01/02/2024")
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}
