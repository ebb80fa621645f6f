// Package jobs holds the background maintenance work. The only job today is
// the nightly legacy-flag rollover: task rows carry an old boolean
// is_completed column that some clients still read, and it has to track
// "completed today" as the calendar advances.
package jobs

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/juanvolpe/Productivity-app/internal/db"
	"github.com/juanvolpe/Productivity-app/internal/schedule"
)

// Rollover wraps the cron runner for the daily flag sync.
type Rollover struct {
	cron  *cron.Cron
	store db.Store
}

func NewRollover(store db.Store) *Rollover {
	return &Rollover{
		cron:  cron.New(),
		store: store,
	}
}

// ScheduleDaily registers the sync at the given HH:MM local time.
func (r *Rollover) ScheduleDaily(timeStr string) error {
	spec, err := buildDailySpec(timeStr)
	if err != nil {
		return err
	}
	if _, err := r.cron.AddFunc(spec, r.runOnce); err != nil {
		return fmt.Errorf("schedule rollover: %w", err)
	}
	return nil
}

func (r *Rollover) Start() {
	r.cron.Start()
}

func (r *Rollover) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
}

func (r *Rollover) runOnce() {
	today := schedule.StartOfDay(time.Now())
	if err := r.store.SyncLegacyFlags(today); err != nil {
		log.Error().Err(err).Msg("legacy flag rollover failed")
		return
	}
	log.Info().Str("date", today.Format(schedule.DayFormat)).Msg("legacy flags rolled over")
}

func buildDailySpec(timeStr string) (string, error) {
	parts := strings.Split(timeStr, ":")
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid time %q, expected HH:MM", timeStr)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("invalid hour in %q", timeStr)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("invalid minute in %q", timeStr)
	}
	return fmt.Sprintf("%d %d * * *", minute, hour), nil
}
