package handlers

import (
	"time"

	"github.com/VoltEdgeBuilds/learn/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Auth   *AuthHandler
	Course *CourseHandler
	Health *HealthHandler
}

func NewRouter(h Handlers, limiter *middleware.RateLimiter, tokens middleware.AccessValidator, origins []string) *gin.Engine {
	r := gin.Default()
	// c.Done()/c.Err() follow the request context, so handlers passing c cancel on disconnect
	r.ContextWithFallback = true
	r.Use(middleware.RequestID())

	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	config := cors.DefaultConfig()
	config.AllowOrigins = origins
	config.AllowCredentials = true
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", middleware.RequestIDHeader}
	config.AllowMethods = []string{"GET", "POST", "PUT", "OPTIONS"}
	r.Use(cors.New(config))

	r.GET("/healthz", h.Health.Healthz)

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/lookup", h.Auth.Lookup)
			auth.POST("/signup", h.Auth.Signup)
			auth.POST("/login", limiter.Limit("login", 5, 1*time.Minute), h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
			auth.POST("/logout", h.Auth.Logout)
		}
		me := api.Group("/me")
		me.Use(middleware.AuthMiddleware(tokens))
		{
			me.GET("", h.Auth.Me)
			me.GET("/progress", h.Course.MyProgress)
		}
		course := api.Group("/courses")
		course.Use(middleware.AuthMiddleware(tokens))
		{
			course.GET("", h.Course.List)
			course.GET("/facets", h.Course.Facets)
			course.GET("/:id", h.Course.GetOne)
			course.GET("/:id/progress", h.Course.Progress)
			course.PUT("/:id/lessons/:lessonId/completion", h.Course.SetCompletion)
		}
	}

	return r
}
