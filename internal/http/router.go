// README: HTTP route registration on a gin engine.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fleetflow/internal/http/handlers"
	"fleetflow/internal/http/middleware"
	"fleetflow/internal/logger"
	"fleetflow/internal/modules/analytics"
	"fleetflow/internal/modules/availability"
	"fleetflow/internal/modules/driver"
	"fleetflow/internal/modules/maintenance"
	"fleetflow/internal/modules/trip"
	"fleetflow/internal/modules/user"
	"fleetflow/internal/modules/vehicle"
)

type RouterDeps struct {
	Trips        *trip.Service
	Vehicles     *vehicle.Service
	Drivers      *driver.Service
	Maintenance  *maintenance.Service
	Users        *user.Service
	Analytics    *analytics.Service
	Availability *availability.Service
	Tokens       interface {
		handlers.TokenIssuer
		middleware.TokenVerifier
	}
	Log logger.Logger
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logging(deps.Log), middleware.Recovery(deps.Log))

	authHandler := handlers.NewAuthHandler(deps.Users, deps.Tokens)
	r.POST("/auth/login", authHandler.Login)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authed := r.Group("/", middleware.Auth(deps.Tokens))

	tripHandler := handlers.NewTripHandler(deps.Trips)
	authed.POST("/trips/", tripHandler.Create)
	authed.GET("/trips/", tripHandler.List)
	authed.GET("/trips/:id", tripHandler.Get)
	authed.PUT("/trips/:id", tripHandler.UpdateStatus)

	vehicleHandler := handlers.NewVehicleHandler(deps.Vehicles, deps.Availability)
	authed.POST("/vehicles/", vehicleHandler.Register)
	authed.GET("/vehicles/", vehicleHandler.List)
	authed.GET("/vehicles/available", vehicleHandler.ListAvailable)
	authed.GET("/vehicles/:id", vehicleHandler.Get)
	authed.PUT("/vehicles/:id", vehicleHandler.Update)
	authed.DELETE("/vehicles/:id", vehicleHandler.Delete)

	driverHandler := handlers.NewDriverHandler(deps.Drivers, deps.Availability)
	authed.POST("/drivers/", driverHandler.Add)
	authed.GET("/drivers/", driverHandler.List)
	authed.GET("/drivers/available", driverHandler.ListAvailable)
	authed.GET("/drivers/:id", driverHandler.Get)
	authed.PUT("/drivers/:id", driverHandler.Update)
	authed.PUT("/drivers/:id/status", driverHandler.SetStatus)
	authed.DELETE("/drivers/:id", driverHandler.Delete)

	maintenanceHandler := handlers.NewMaintenanceHandler(deps.Maintenance)
	authed.POST("/maintenance/", maintenanceHandler.Open)
	authed.GET("/maintenance/", maintenanceHandler.List)
	authed.PUT("/maintenance/:id/close", maintenanceHandler.Close)

	userHandler := handlers.NewUserHandler(deps.Users)
	authed.POST("/users/", userHandler.Create)
	authed.GET("/users/", userHandler.List)
	authed.DELETE("/users/:id", userHandler.Delete)

	analyticsHandler := handlers.NewAnalyticsHandler(deps.Analytics)
	authed.GET("/analytics/dashboard", analyticsHandler.Dashboard)

	return r
}
