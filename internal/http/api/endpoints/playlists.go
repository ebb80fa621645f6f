package endpoints

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/juanvolpe/Productivity-app/internal/db"
	"github.com/juanvolpe/Productivity-app/internal/http/api"
	"github.com/juanvolpe/Productivity-app/internal/http/api/packets"
	"github.com/juanvolpe/Productivity-app/internal/model"
	"github.com/juanvolpe/Productivity-app/internal/redis"
	"github.com/juanvolpe/Productivity-app/internal/schedule"
)

type PlaylistController struct {
	store db.Store
	cache *redis.Cache
}

func newPlaylistController(store db.Store, cache *redis.Cache) *PlaylistController {
	return &PlaylistController{store: store, cache: cache}
}

// PlaylistModule mounts all /playlists endpoints.
func PlaylistModule(store db.Store, cache *redis.Cache) api.Module {
	ctl := newPlaylistController(store, cache)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/playlists", ctl.listPlaylists)
		c.POST("/playlists", ctl.createPlaylist)
		c.GET("/playlists/today", ctl.todaysPlaylists)
		c.GET("/playlists/date", ctl.playlistsForDate)
		c.GET("/playlists/:id", ctl.getPlaylist)
		c.PATCH("/playlists/:id", ctl.updatePlaylist)
		c.DELETE("/playlists/:id", ctl.deletePlaylist)

		c.PATCH("/playlists/:id/tasks/:task_id", ctl.setTaskCompletion)
		c.POST("/playlists/:id/tasks/cleanup", ctl.cleanupDay)
	})
}

func mapPlaylist(pl model.Playlist) packets.PlaylistResponse {
	tasks := make([]packets.TaskResponse, len(pl.Tasks))
	for i, t := range pl.Tasks {
		tasks[i] = mapTask(t)
	}

	var desc, icon string
	if pl.Description != nil {
		desc = *pl.Description
	}
	if pl.Icon != nil {
		icon = *pl.Icon
	}

	return packets.PlaylistResponse{
		ID:          pl.ID,
		Name:        pl.Name,
		Description: desc,
		Icon:        icon,
		Sunday:      pl.Sunday,
		Monday:      pl.Monday,
		Tuesday:     pl.Tuesday,
		Wednesday:   pl.Wednesday,
		Thursday:    pl.Thursday,
		Friday:      pl.Friday,
		Saturday:    pl.Saturday,
		CreatedAt:   pl.CreatedAt,
		UpdatedAt:   pl.UpdatedAt,
		Tasks:       tasks,
	}
}

func mapTask(t model.Task) packets.TaskResponse {
	return packets.TaskResponse{
		ID:          t.ID,
		PlaylistID:  t.PlaylistID,
		Title:       t.Title,
		Duration:    t.Duration,
		Order:       t.Order,
		IsCompleted: t.IsCompleted,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func weekdayFlags(in packets.WeekdayFlagsRequest) model.WeekdayFlags {
	return model.WeekdayFlags{
		Sunday:    in.Sunday,
		Monday:    in.Monday,
		Tuesday:   in.Tuesday,
		Wednesday: in.Wednesday,
		Thursday:  in.Thursday,
		Friday:    in.Friday,
		Saturday:  in.Saturday,
	}
}

// dayOrToday parses an optional YYYY-MM-DD parameter; a missing value means
// the server's current day. A malformed value is always rejected.
func dayOrToday(s *string) (time.Time, error) {
	if s == nil || *s == "" {
		return schedule.StartOfDay(time.Now()), nil
	}
	return schedule.ParseDay(*s)
}

// ===== Handlers =====

func (p *PlaylistController) listPlaylists(ctx *gin.Context) (any, *api.APIError) {
	all, err := p.store.ListPlaylists()
	if err != nil {
		log.Error().Err(err).Msg("[playlist] list: could not list playlists")
		return nil, api.FromError(err, "could not list playlists")
	}

	out := make([]packets.PlaylistResponse, 0, len(all))
	for _, pl := range all {
		out = append(out, mapPlaylist(pl))
	}
	return out, nil
}

func (p *PlaylistController) createPlaylist(ctx *gin.Context) (any, *api.APIError) {
	var req packets.CreatePlaylistRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Error().Err(err).Msg("[playlist] create: bad request")
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	in := model.PlaylistCreate{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		Days:        weekdayFlags(req.Days),
	}
	for _, t := range req.Tasks {
		in.Tasks = append(in.Tasks, model.TaskCreate{Title: t.Title, Duration: t.Duration})
	}

	pl, err := p.store.CreatePlaylist(in)
	if err != nil {
		log.Error().Err(err).Msg("[playlist] create: could not create playlist")
		return nil, api.FromError(err, "could not create playlist")
	}

	p.cache.InvalidateAll(ctx.Request.Context())
	return mapPlaylist(pl), nil
}

func (p *PlaylistController) getPlaylist(ctx *gin.Context) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}
	pl, err := p.store.GetPlaylistByID(id)
	if err != nil {
		return nil, api.FromError(err, "could not fetch playlist")
	}
	return mapPlaylist(pl), nil
}

func (p *PlaylistController) updatePlaylist(ctx *gin.Context) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	var req packets.UpdatePlaylistRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	patch := model.PlaylistPatch{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
	}
	if req.Days != nil {
		days := weekdayFlags(*req.Days)
		patch.Days = &days
	}

	if err := p.store.UpdatePlaylist(id, patch); err != nil {
		log.Error().Err(err).Int("playlist_id", id).Msg("[playlist] update: could not update playlist")
		return nil, api.FromError(err, "could not update playlist")
	}

	p.cache.InvalidateAll(ctx.Request.Context())

	pl, err := p.store.GetPlaylistByID(id)
	if err != nil {
		return nil, api.FromError(err, "could not fetch playlist")
	}
	return mapPlaylist(pl), nil
}

func (p *PlaylistController) deletePlaylist(ctx *gin.Context) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}
	if err := p.store.DeletePlaylist(id); err != nil {
		log.Error().Err(err).Int("playlist_id", id).Msg("[playlist] delete: could not delete playlist")
		return nil, api.FromError(err, "could not delete playlist")
	}

	p.cache.InvalidateAll(ctx.Request.Context())
	return packets.MessageResponse{Message: "playlist deleted"}, nil
}

// todaysPlaylists keeps the legacy shape: raw playlists active today with
// the per-task flag derived from today's completion rows.
func (p *PlaylistController) todaysPlaylists(ctx *gin.Context) (any, *api.APIError) {
	today := schedule.StartOfDay(time.Now())

	playlists, err := p.store.ListPlaylistsForWeekday(today.Weekday())
	if err != nil {
		log.Error().Err(err).Msg("[playlist] today: could not list playlists")
		return nil, api.FromError(err, "could not fetch playlists")
	}

	out := make([]packets.PlaylistResponse, 0, len(playlists))
	for _, pl := range playlists {
		done, err := p.completedTaskSet(pl.ID, today)
		if err != nil {
			return nil, api.FromError(err, "could not fetch completions")
		}
		for i := range pl.Tasks {
			pl.Tasks[i].IsCompleted = done[pl.Tasks[i].ID]
		}
		out = append(out, mapPlaylist(pl))
	}
	return out, nil
}

// playlistsForDate resolves day views for an explicit date. Responses are
// cached per date and served from cache when fresh.
func (p *PlaylistController) playlistsForDate(ctx *gin.Context) (any, *api.APIError) {
	date, err := schedule.ParseDay(ctx.Query("date"))
	if err != nil {
		return nil, api.FromError(err, "invalid date")
	}
	dateKey := date.Format(schedule.DayFormat)

	if payload, ok := p.cache.GetDayView(ctx.Request.Context(), dateKey); ok {
		return json.RawMessage(payload), nil
	}

	playlists, err := p.store.ListPlaylistsForWeekday(date.Weekday())
	if err != nil {
		log.Error().Err(err).Str("date", dateKey).Msg("[playlist] date: could not list playlists")
		return nil, api.FromError(err, "could not fetch playlists")
	}

	var completions []model.TaskCompletion
	for _, pl := range playlists {
		rows, err := p.store.ListCompletionsForDay(pl.ID, date)
		if err != nil {
			log.Error().Err(err).Int("playlist_id", pl.ID).Msg("[playlist] date: could not list completions")
			return nil, api.FromError(err, "could not fetch completions")
		}
		completions = append(completions, rows...)
	}

	views := schedule.ResolveForDate(date, playlists, completions)
	log.Info().Str("date", dateKey).Int("playlists", len(views)).Msg("resolved playlists for date")

	if payload, err := json.Marshal(views); err == nil {
		p.cache.SetDayView(ctx.Request.Context(), dateKey, payload)
	}
	return views, nil
}

func (p *PlaylistController) setTaskCompletion(ctx *gin.Context) (any, *api.APIError) {
	playlistID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}
	taskID, err := strconv.Atoi(ctx.Param("task_id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid task id"}
	}

	var req packets.SetTaskCompletionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	task, err := p.store.GetTaskByID(taskID)
	if err != nil {
		return nil, api.FromError(err, "could not fetch task")
	}
	if task.PlaylistID != playlistID {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "not found"}
	}

	day, err := dayOrToday(req.Date)
	if err != nil {
		return nil, api.FromError(err, "invalid date")
	}

	if err := p.store.SetTaskCompletion(taskID, day, *req.IsCompleted); err != nil {
		log.Error().Err(err).Int("task_id", taskID).Msg("[playlist] completion: write failed")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to save completion, please retry"}
	}

	p.cache.InvalidateDay(ctx.Request.Context(), day.Format(schedule.DayFormat))
	return packets.TaskStatusResponse{ID: taskID, IsCompleted: *req.IsCompleted}, nil
}

// cleanupDay resets one playlist's progress for a single day without
// touching historical days.
func (p *PlaylistController) cleanupDay(ctx *gin.Context) (any, *api.APIError) {
	playlistID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	var req packets.CleanupRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
		}
	}

	if _, err := p.store.GetPlaylistByID(playlistID); err != nil {
		return nil, api.FromError(err, "could not fetch playlist")
	}

	day, err := dayOrToday(req.Date)
	if err != nil {
		return nil, api.FromError(err, "invalid date")
	}

	if err := p.store.ClearCompletionsForDay(playlistID, day); err != nil {
		log.Error().Err(err).Int("playlist_id", playlistID).Msg("[playlist] cleanup: clear failed")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to clean up tasks, please retry"}
	}

	p.cache.InvalidateDay(ctx.Request.Context(), day.Format(schedule.DayFormat))
	log.Info().Int("playlist_id", playlistID).Str("date", day.Format(schedule.DayFormat)).Msg("cleaned up tasks for day")
	return packets.MessageResponse{Message: "Tasks cleaned up successfully"}, nil
}

func (p *PlaylistController) completedTaskSet(playlistID int, day time.Time) (map[int]bool, error) {
	rows, err := p.store.ListCompletionsForDay(playlistID, day)
	if err != nil {
		return nil, err
	}
	done := make(map[int]bool, len(rows))
	for _, c := range rows {
		done[c.TaskID] = true
	}
	return done, nil
}
