package routes

import (
	"transandino/internal/handlers"
	"transandino/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupClientRoutes sets up routes for client directory management and the
// audit trail.
func SetupClientRoutes(r *gin.RouterGroup, clientHandler *handlers.ClientHandler, auditHandler *handlers.AuditHandler, jwtSecret string) {
	clients := r.Group("/clients")
	clients.Use(middleware.AuthRequired(jwtSecret))
	{
		clients.POST("", clientHandler.CreateClient)
		clients.GET("", clientHandler.ListClients)
		clients.GET("/:id", clientHandler.GetClient)
		clients.PUT("/:id", clientHandler.UpdateClient)
		clients.DELETE("/:id", clientHandler.DeleteClient)
	}

	audit := r.Group("/audit")
	audit.Use(middleware.AuthRequired(jwtSecret), middleware.AdminRequired())
	{
		audit.GET("", auditHandler.ListAuditLogs)
	}
}
