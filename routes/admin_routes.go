package routes

import (
	"steeraway/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupAdminRoutes sets up the admin dashboard and user management,
// plus the per-user booking summary.
func SetupAdminRoutes(r *gin.RouterGroup, h *Handlers, jwtSecret string) {
	admin := r.Group("/admin")
	admin.Use(middleware.AuthRequired(jwtSecret), middleware.AdminRequired())
	{
		admin.GET("/stats", h.Dashboard.GetStats)
		admin.GET("/users", h.Auth.ListUsers)
	}

	me := r.Group("/me")
	me.Use(middleware.AuthRequired(jwtSecret))
	{
		me.GET("/stats", h.Dashboard.GetMyStats)
	}
}
