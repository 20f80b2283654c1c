// README: Entry point; loads config, wires stores and services, starts the HTTP server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fleetflow/internal/auth"
	"fleetflow/internal/config"
	httptransport "fleetflow/internal/http"
	"fleetflow/internal/infra"
	"fleetflow/internal/logger"
	"fleetflow/internal/modules/analytics"
	"fleetflow/internal/modules/availability"
	"fleetflow/internal/modules/driver"
	"fleetflow/internal/modules/maintenance"
	"fleetflow/internal/modules/trip"
	"fleetflow/internal/modules/user"
	"fleetflow/internal/modules/vehicle"
)

func main() {
	log := logger.New("fleetflow-api")

	cfg, err := config.Load(os.Getenv("FLEET_CONFIG"))
	if err != nil {
		log.Errorf("config: %v", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tokens, err := auth.NewManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)
	if err != nil {
		log.Errorf("auth init: %v", err)
		os.Exit(1)
	}

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Errorf("postgres connect: %v", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr)

	vehicleStore := vehicle.NewPGStore(dbPool)
	driverStore := driver.NewPGStore(dbPool)

	index := availability.NewRedisIndex(redisClient)
	availabilitySvc := availability.NewService(index, vehicleStore, driverStore, logger.New("availability"))

	vehicleSvc := vehicle.NewService(vehicleStore, index)

	driverSvc := driver.NewService(driverStore, index)

	maintenanceStore := maintenance.NewPGStore(dbPool)
	maintenanceSvc := maintenance.NewService(maintenanceStore, vehicleStore, index)

	tripStore := trip.NewPGStore(dbPool)
	tripSvc := trip.NewService(tripStore, vehicleStore, driverStore, index, logger.New("trip"))

	userStore := user.NewPGStore(dbPool)
	userSvc := user.NewService(userStore)

	analyticsSvc := analytics.NewService(vehicleSvc, tripSvc, maintenanceSvc)

	// The candidate sets are a projection of store state; rebuild them so a
	// restart never serves stale availability.
	if err := availabilitySvc.Rebuild(ctx); err != nil {
		log.Errorf("availability rebuild: %v", err)
		os.Exit(1)
	}

	router := httptransport.NewRouter(httptransport.RouterDeps{
		Trips:        tripSvc,
		Vehicles:     vehicleSvc,
		Drivers:      driverSvc,
		Maintenance:  maintenanceSvc,
		Users:        userSvc,
		Analytics:    analyticsSvc,
		Availability: availabilitySvc,
		Tokens:       tokens,
		Log:          logger.New("http"),
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: router}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Warnf("shutdown: %v", err)
		}
	}()

	log.Infof("listening on %s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Errorf("server: %v", err)
		os.Exit(1)
	}
}
