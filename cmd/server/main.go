package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/juanvolpe/Productivity-app/internal/config"
	"github.com/juanvolpe/Productivity-app/internal/db"
	"github.com/juanvolpe/Productivity-app/internal/jobs"
	"github.com/juanvolpe/Productivity-app/internal/redis"
	"github.com/juanvolpe/Productivity-app/internal/run"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// initialize PostgreSQL
	conn, err := db.Init(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("db init")
	}

	// run pending migrations
	if err := db.RunMigrations(conn, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("db migrate")
	}

	store := db.NewStore(conn)

	// day-view cache is optional; a nil cache disables it
	var cache *redis.Cache
	if cfg.RedisAddress != "" {
		cache = redis.New(cfg.RedisAddress, cfg.RedisUsername, cfg.RedisPassword)
		log.Info().Str("address", cfg.RedisAddress).Msg("day view cache enabled")
	}

	// nightly legacy-flag rollover
	rollover := jobs.NewRollover(store)
	if err := rollover.ScheduleDaily(cfg.RolloverTime); err != nil {
		log.Fatal().Err(err).Msg("failed to schedule rollover")
	}
	rollover.Start()
	defer rollover.Stop()

	sessions := run.NewManager(store)

	// set up gin router
	r := gin.Default()
	RegisterRoutes(r, store, cache, sessions)

	// start
	log.Info().Str("address", cfg.ServerAddress).Msg("listening")
	if err := r.Run(cfg.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
