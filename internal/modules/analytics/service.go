// README: Fleet-wide KPI aggregation for the dashboard.
package analytics

import (
	"context"
	"math"

	"fleetflow/internal/modules/maintenance"
	"fleetflow/internal/modules/trip"
	"fleetflow/internal/modules/vehicle"
	"fleetflow/internal/types"
)

type VehicleReader interface {
	List(ctx context.Context) ([]vehicle.Vehicle, error)
}

type TripReader interface {
	List(ctx context.Context, status trip.Status) ([]trip.Trip, error)
}

type MaintenanceReader interface {
	List(ctx context.Context) ([]maintenance.Log, error)
}

// Dashboard is the KPI snapshot served to managers and analysts.
// UtilizationRate is a percentage of the fleet currently on a trip.
type Dashboard struct {
	ActiveFleet          int         `json:"active_fleet"`
	MaintenanceAlerts    int         `json:"maintenance_alerts"`
	TotalVehicles        int         `json:"total_vehicles"`
	UtilizationRate      float64     `json:"utilization_rate"`
	TotalOperationalCost types.Money `json:"total_operational_cost"`
}

type Service struct {
	vehicles VehicleReader
	trips    TripReader
	maint    MaintenanceReader
}

func NewService(vehicles VehicleReader, trips TripReader, maint MaintenanceReader) *Service {
	return &Service{vehicles: vehicles, trips: trips, maint: maint}
}

// Dashboard aggregates live fleet state and lifetime cost. The cost figure
// sums every maintenance log plus the estimated fuel of completed trips,
// so cancelled trips never contribute.
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	vehicles, err := s.vehicles.List(ctx)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{TotalVehicles: len(vehicles)}
	for _, v := range vehicles {
		switch v.Status {
		case vehicle.StatusOnTrip:
			d.ActiveFleet++
		case vehicle.StatusInShop:
			d.MaintenanceAlerts++
		}
	}
	if d.TotalVehicles > 0 {
		rate := float64(d.ActiveFleet) / float64(d.TotalVehicles) * 100
		d.UtilizationRate = math.Round(rate*100) / 100
	}

	var cost int64
	logs, err := s.maint.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, l := range logs {
		cost += l.Cost.Amount
	}

	completed, err := s.trips.List(ctx, trip.StatusCompleted)
	if err != nil {
		return nil, err
	}
	for _, t := range completed {
		cost += t.EstimatedFuelCost.Amount
	}

	d.TotalOperationalCost = types.Money{Amount: cost, Currency: maintenance.DefaultCurrency}
	return d, nil
}
