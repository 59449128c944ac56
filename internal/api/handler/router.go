package handler

import (
	"smartsociety/backend/internal/gate"
	"smartsociety/backend/internal/models"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter mounts every route. An empty origins list allows any origin.
func NewRouter(h *Handler, origins []string) *gin.Engine {
	r := gin.Default()

	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "Accept-Language", deviceHeader},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
		corsConfig.AllowCredentials = true
	}
	r.Use(cors.New(corsConfig))

	api := r.Group("/api")
	{
		api.POST("/auth/signup", h.SignUp)
		api.POST("/auth/login", h.Login)
		api.POST("/auth/logout", h.Logout)
		api.PUT("/onboarding", h.SetOnboarding)
		api.GET("/session", h.GetSession)
	}

	protected := api.Group("", h.RequireSession(), h.RequireGroup(gate.GroupTabs))
	{
		protected.GET("/dashboard", h.Dashboard)
		h.registerSubmissions(protected, models.KindComplaint)
		h.registerSubmissions(protected, models.KindSuggestion)
	}

	r.GET("/ws/session", h.ServeSessionStream)
	return r
}
