// README: Trip store backed by PostgreSQL; reservation and release are single transactions.
package trip

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fleetflow/internal/types"
)

type PGStore struct {
	db *pgxpool.Pool
}

func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

// CreateReserving inserts the draft trip and flips vehicle and driver to
// on_trip in one transaction. The conditional updates are the availability
// check: two racing reservations on the same vehicle cannot both pass.
// Vehicle before driver everywhere, so transactions cannot deadlock.
func (s *PGStore) CreateReserving(ctx context.Context, t *Trip) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
        UPDATE vehicles SET status = 'on_trip' WHERE id = $1 AND status = 'idle'`,
		string(t.VehicleID))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return s.reservationFailure(ctx, "vehicles", string(t.VehicleID), ErrVehicleUnavailable)
	}

	tag, err = tx.Exec(ctx, `
        UPDATE drivers SET status = 'on_trip' WHERE id = $1 AND status = 'on_duty'`,
		string(t.DriverID))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return s.reservationFailure(ctx, "drivers", string(t.DriverID), ErrDriverUnavailable)
	}

	if _, err := tx.Exec(ctx, `
        INSERT INTO trips (
            id, vehicle_id, driver_id, origin, destination, cargo_weight_kg,
            estimated_fuel_cost, status, status_version, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		string(t.ID), string(t.VehicleID), string(t.DriverID), t.Origin, t.Destination,
		t.CargoWeightKg, t.EstimatedFuelCost.Amount, string(t.Status), t.StatusVersion, t.CreatedAt,
	); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// reservationFailure distinguishes an unknown id from an ineligible entity.
// The enclosing transaction rolls back either way.
func (s *PGStore) reservationFailure(ctx context.Context, table, id string, unavailable error) error {
	var exists bool
	if err := s.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM `+table+` WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	return unavailable
}

func (s *PGStore) Get(ctx context.Context, id types.ID) (*Trip, error) {
	row := s.db.QueryRow(ctx, `
        SELECT id, vehicle_id, driver_id, origin, destination, cargo_weight_kg,
               estimated_fuel_cost, status, status_version, created_at,
               dispatched_at, completed_at, cancelled_at
        FROM trips WHERE id = $1`, string(id))
	t, err := scanTrip(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return t, err
}

// List returns trips, optionally filtered by status.
func (s *PGStore) List(ctx context.Context, status Status) ([]Trip, error) {
	query := `
        SELECT id, vehicle_id, driver_id, origin, destination, cargo_weight_kg,
               estimated_fuel_cost, status, status_version, created_at,
               dispatched_at, completed_at, cancelled_at
        FROM trips`
	var args []any
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, string(status))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

// UpdateStatus applies a transition that moves no resources (draft ->
// dispatched). CAS on status and status_version: a lost race reports false.
func (s *PGStore) UpdateStatus(ctx context.Context, id types.ID, from, to Status, version int) (bool, error) {
	tag, err := s.db.Exec(ctx, `
        UPDATE trips
        SET status = $1,
            status_version = status_version + 1,
            dispatched_at = CASE WHEN $1 = 'dispatched' THEN NOW() ELSE dispatched_at END
        WHERE id = $2 AND status = $3 AND status_version = $4`,
		string(to), string(id), string(from), version,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// CloseReleasing moves the trip to a terminal status and frees its resources
// in one transaction. The vehicle lands in the shop instead of idle when an
// open maintenance log exists; a driver suspended mid-trip is left untouched.
func (s *PGStore) CloseReleasing(ctx context.Context, t *Trip, to Status) (bool, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
        UPDATE trips
        SET status = $1,
            status_version = status_version + 1,
            completed_at = CASE WHEN $1 = 'completed' THEN NOW() ELSE completed_at END,
            cancelled_at = CASE WHEN $1 = 'cancelled' THEN NOW() ELSE cancelled_at END
        WHERE id = $2 AND status = $3 AND status_version = $4`,
		string(to), string(t.ID), string(t.Status), t.StatusVersion,
	)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	if _, err := tx.Exec(ctx, `
        UPDATE vehicles
        SET status = CASE
            WHEN EXISTS (SELECT 1 FROM maintenance_logs WHERE vehicle_id = $1 AND status = 'in_shop')
            THEN 'in_shop' ELSE 'idle' END
        WHERE id = $1 AND status = 'on_trip'`,
		string(t.VehicleID)); err != nil {
		return false, err
	}
	if _, err := tx.Exec(ctx, `
        UPDATE drivers SET status = 'on_duty' WHERE id = $1 AND status = 'on_trip'`,
		string(t.DriverID)); err != nil {
		return false, err
	}
	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// HasActiveForVehicle reports whether a non-terminal trip references the vehicle.
func (s *PGStore) HasActiveForVehicle(ctx context.Context, vehicleID types.ID) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx, `
        SELECT EXISTS (
            SELECT 1 FROM trips WHERE vehicle_id = $1 AND status IN ('draft','dispatched')
        )`, string(vehicleID)).Scan(&exists)
	return exists, err
}

// HasActiveForDriver reports whether a non-terminal trip references the driver.
func (s *PGStore) HasActiveForDriver(ctx context.Context, driverID types.ID) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx, `
        SELECT EXISTS (
            SELECT 1 FROM trips WHERE driver_id = $1 AND status IN ('draft','dispatched')
        )`, string(driverID)).Scan(&exists)
	return exists, err
}

func scanTrip(row pgx.Row) (*Trip, error) {
	var t Trip
	var dispatchedAt, completedAt, cancelledAt sql.NullTime
	err := row.Scan(&t.ID, &t.VehicleID, &t.DriverID, &t.Origin, &t.Destination,
		&t.CargoWeightKg, &t.EstimatedFuelCost.Amount, &t.Status, &t.StatusVersion,
		&t.CreatedAt, &dispatchedAt, &completedAt, &cancelledAt)
	if err != nil {
		return nil, err
	}
	t.DispatchedAt = toTimePtr(dispatchedAt)
	t.CompletedAt = toTimePtr(completedAt)
	t.CancelledAt = toTimePtr(cancelledAt)
	if t.EstimatedFuelCost.Currency == "" {
		t.EstimatedFuelCost.Currency = DefaultCurrency
	}
	return &t, nil
}

func toTimePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}
