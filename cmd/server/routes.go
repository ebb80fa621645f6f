package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/juanvolpe/Productivity-app/internal/db"
	"github.com/juanvolpe/Productivity-app/internal/http/api"
	"github.com/juanvolpe/Productivity-app/internal/http/api/endpoints"
	"github.com/juanvolpe/Productivity-app/internal/http/middleware"
	"github.com/juanvolpe/Productivity-app/internal/redis"
	"github.com/juanvolpe/Productivity-app/internal/run"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, store db.Store, cache *redis.Cache, sessions *run.Manager) {
	// CORS
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			"X-Request-ID",
		},
		ExposeHeaders: []string{
			"Content-Length",
			"X-Request-ID",
		},
		AllowCredentials: false,
	}))

	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api",
	},
		endpoints.PlaylistModule(store, cache),
		endpoints.RunModule(sessions, cache),
	)
}
