package routes

import (
	"transandino/internal/handlers"
	"transandino/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupTripRoutes sets up routes for trip lifecycle operations.
func SetupTripRoutes(r *gin.RouterGroup, tripHandler *handlers.TripHandler, jwtSecret string) {
	trips := r.Group("/trips")
	trips.Use(middleware.AuthRequired(jwtSecret))
	{
		trips.POST("", tripHandler.CreateTrip)
		trips.GET("", tripHandler.ListTrips)
		trips.GET("/:id", tripHandler.GetTrip)
		trips.GET("/folio/:folio", tripHandler.GetTripByFolio)
		trips.DELETE("/:id", tripHandler.DeleteTrip)

		trips.PUT("/:id/driver", tripHandler.AssignDriver)
		trips.PUT("/:id/stages/:stageID", tripHandler.UpdateStage)

		trips.POST("/:id/incidents", tripHandler.ReportIncident)
		trips.PUT("/:id/incidents/:incidentID", tripHandler.UpdateIncidentStatus)
		trips.PUT("/:id/incidents/:incidentID/resolve", tripHandler.ResolveIncident)

		trips.PUT("/:id/cancel", tripHandler.CancelTrip)
	}

	// Status override bypasses derivation; admins only.
	admin := r.Group("/trips")
	admin.Use(middleware.AuthRequired(jwtSecret), middleware.AdminRequired())
	{
		admin.PUT("/:id/status", tripHandler.OverrideStatus)
	}
}
