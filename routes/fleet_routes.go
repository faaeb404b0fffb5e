package routes

import (
	"transandino/internal/handlers"
	"transandino/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupFleetRoutes sets up routes for the fleet directory: drivers,
// vehicles and semitrailers, plus the assignment endpoints.
func SetupFleetRoutes(r *gin.RouterGroup, fleetHandler *handlers.FleetHandler, jwtSecret string) {
	drivers := r.Group("/drivers")
	drivers.Use(middleware.AuthRequired(jwtSecret))
	{
		drivers.POST("", fleetHandler.CreateDriver)
		drivers.GET("", fleetHandler.ListDrivers)
		drivers.GET("/:id", fleetHandler.GetDriver)
		drivers.PUT("/:id", fleetHandler.UpdateDriver)
		drivers.DELETE("/:id", fleetHandler.DeleteDriver)

		drivers.GET("/:id/cascade", fleetHandler.GetDriverCascade)
		drivers.GET("/:id/busy", fleetHandler.GetDriverBusy)
	}

	vehicles := r.Group("/vehicles")
	vehicles.Use(middleware.AuthRequired(jwtSecret))
	{
		vehicles.POST("", fleetHandler.CreateVehicle)
		vehicles.GET("", fleetHandler.ListVehicles)
		vehicles.GET("/:id", fleetHandler.GetVehicle)
		vehicles.PUT("/:id", fleetHandler.UpdateVehicle)
		vehicles.DELETE("/:id", fleetHandler.DeleteVehicle)

		vehicles.PUT("/:id/driver", fleetHandler.AssignVehicleDriver)
		vehicles.PUT("/:id/semitrailer", fleetHandler.AssignVehicleSemitrailer)
		vehicles.GET("/:id/busy", fleetHandler.GetVehicleBusy)
	}

	semitrailers := r.Group("/semitrailers")
	semitrailers.Use(middleware.AuthRequired(jwtSecret))
	{
		semitrailers.POST("", fleetHandler.CreateSemitrailer)
		semitrailers.GET("", fleetHandler.ListSemitrailers)
		semitrailers.GET("/:id", fleetHandler.GetSemitrailer)
		semitrailers.PUT("/:id", fleetHandler.UpdateSemitrailer)
		semitrailers.DELETE("/:id", fleetHandler.DeleteSemitrailer)
	}
}
