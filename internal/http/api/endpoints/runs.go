package endpoints

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/juanvolpe/Productivity-app/internal/http/api"
	"github.com/juanvolpe/Productivity-app/internal/http/api/packets"
	"github.com/juanvolpe/Productivity-app/internal/redis"
	"github.com/juanvolpe/Productivity-app/internal/run"
	"github.com/juanvolpe/Productivity-app/internal/schedule"
)

type RunController struct {
	mgr   *run.Manager
	cache *redis.Cache
}

// RunModule mounts the run-session endpoints that drive a playlist traversal.
func RunModule(mgr *run.Manager, cache *redis.Cache) api.Module {
	ctl := &RunController{mgr: mgr, cache: cache}
	return api.ModuleFunc(func(c *api.Controller) {
		c.POST("/runs", ctl.openRun)
		c.GET("/runs/:id", ctl.getRun)
		c.POST("/runs/:id/start", ctl.startRun)
		c.POST("/runs/:id/pause", ctl.pauseRun)
		c.POST("/runs/:id/complete", ctl.completeTask)
		c.POST("/runs/:id/restart", ctl.restartTask)
		c.POST("/runs/:id/select", ctl.selectTask)
		c.DELETE("/runs/:id", ctl.closeRun)
	})
}

func mapRun(s *run.Session) packets.RunResponse {
	snap := s.Engine().Snapshot()

	tasks := make([]packets.RunTaskResponse, len(snap.Tasks))
	for i, t := range snap.Tasks {
		tasks[i] = packets.RunTaskResponse{
			ID:               t.Task.ID,
			Title:            t.Task.Title,
			Duration:         t.Task.Duration,
			Order:            t.Task.Order,
			State:            t.State.String(),
			RemainingSeconds: t.Remaining,
			Expired:          t.Expired(),
			IsCompleted:      t.State == run.Completed,
		}
	}

	return packets.RunResponse{
		ID:             s.ID,
		PlaylistID:     snap.PlaylistID,
		Date:           snap.Day.Format(schedule.DayFormat),
		Cursor:         snap.Cursor,
		CompletedCount: snap.CompletedCount,
		TotalCount:     snap.TotalCount,
		Percent:        snap.Percent,
		Tasks:          tasks,
	}
}

// mapRunErr turns engine errors into actionable responses. Persistence
// failures keep the session usable and tell the user to retry.
func mapRunErr(err error) *api.APIError {
	switch {
	case errors.Is(err, run.ErrClosed):
		return &api.APIError{Code: http.StatusNotFound, Message: "run session is closed"}
	case errors.Is(err, run.ErrTaskCompleted),
		errors.Is(err, run.ErrNotCompleted),
		errors.Is(err, run.ErrNoTasks),
		errors.Is(err, run.ErrBadIndex):
		return &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	default:
		return api.FromError(err, "failed to save completion, please retry")
	}
}

func (r *RunController) openRun(ctx *gin.Context) (any, *api.APIError) {
	var req packets.OpenRunRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	day, err := dayOrToday(req.Date)
	if err != nil {
		return nil, api.FromError(err, "invalid date")
	}

	s, err := r.mgr.Open(req.PlaylistID, day)
	if err != nil {
		log.Error().Err(err).Int("playlist_id", req.PlaylistID).Msg("[run] open: failed")
		return nil, api.FromError(err, "could not open run")
	}
	return mapRun(s), nil
}

func (r *RunController) getRun(ctx *gin.Context) (any, *api.APIError) {
	s, err := r.mgr.Get(ctx.Param("id"))
	if err != nil {
		return nil, api.FromError(err, "could not fetch run")
	}
	return mapRun(s), nil
}

func (r *RunController) startRun(ctx *gin.Context) (any, *api.APIError) {
	id := ctx.Param("id")
	if err := r.mgr.Start(id); err != nil {
		return nil, mapRunErr(err)
	}
	s, err := r.mgr.Get(id)
	if err != nil {
		return nil, api.FromError(err, "could not fetch run")
	}
	return mapRun(s), nil
}

func (r *RunController) pauseRun(ctx *gin.Context) (any, *api.APIError) {
	s, err := r.mgr.Get(ctx.Param("id"))
	if err != nil {
		return nil, api.FromError(err, "could not fetch run")
	}
	if err := s.Engine().Pause(); err != nil {
		return nil, mapRunErr(err)
	}
	return mapRun(s), nil
}

func (r *RunController) completeTask(ctx *gin.Context) (any, *api.APIError) {
	s, err := r.mgr.Get(ctx.Param("id"))
	if err != nil {
		return nil, api.FromError(err, "could not fetch run")
	}
	if err := s.Engine().Complete(); err != nil {
		log.Error().Err(err).Str("session_id", s.ID).Msg("[run] complete: failed")
		return nil, mapRunErr(err)
	}

	r.cache.InvalidateDay(ctx.Request.Context(), s.Day.Format(schedule.DayFormat))
	return mapRun(s), nil
}

func (r *RunController) restartTask(ctx *gin.Context) (any, *api.APIError) {
	s, err := r.mgr.Get(ctx.Param("id"))
	if err != nil {
		return nil, api.FromError(err, "could not fetch run")
	}
	if err := s.Engine().Restart(); err != nil {
		log.Error().Err(err).Str("session_id", s.ID).Msg("[run] restart: failed")
		return nil, mapRunErr(err)
	}

	r.cache.InvalidateDay(ctx.Request.Context(), s.Day.Format(schedule.DayFormat))
	return mapRun(s), nil
}

func (r *RunController) selectTask(ctx *gin.Context) (any, *api.APIError) {
	var req packets.SelectTaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	s, err := r.mgr.Get(ctx.Param("id"))
	if err != nil {
		return nil, api.FromError(err, "could not fetch run")
	}
	if err := s.Engine().Select(*req.Index); err != nil {
		return nil, mapRunErr(err)
	}
	return mapRun(s), nil
}

func (r *RunController) closeRun(ctx *gin.Context) (any, *api.APIError) {
	if err := r.mgr.Close(ctx.Param("id")); err != nil {
		return nil, api.FromError(err, "could not close run")
	}
	return packets.MessageResponse{Message: "run session closed"}, nil
}
