// README: Vehicle store backed by PostgreSQL.
package vehicle

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"fleetflow/internal/types"
)

type PGStore struct {
	db *pgxpool.Pool
}

func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) Create(ctx context.Context, v *Vehicle) error {
	_, err := s.db.Exec(ctx, `
        INSERT INTO vehicles (
            id, license_plate, model, vehicle_type, max_capacity_kg, odometer_km, status, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		string(v.ID), v.LicensePlate, v.Model, v.Type, v.MaxCapacityKg, v.OdometerKm,
		string(v.Status), v.CreatedAt,
	)
	if isUniqueViolation(err) {
		return ErrConflict
	}
	return err
}

func (s *PGStore) Get(ctx context.Context, id types.ID) (*Vehicle, error) {
	row := s.db.QueryRow(ctx, `
        SELECT id, license_plate, model, vehicle_type, max_capacity_kg, odometer_km, status, created_at
        FROM vehicles WHERE id = $1`, string(id),
	)
	return scanVehicle(row)
}

func (s *PGStore) List(ctx context.Context) ([]Vehicle, error) {
	rows, err := s.db.Query(ctx, `
        SELECT id, license_plate, model, vehicle_type, max_capacity_kg, odometer_km, status, created_at
        FROM vehicles ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Vehicle
	for rows.Next() {
		var v Vehicle
		if err := rows.Scan(&v.ID, &v.LicensePlate, &v.Model, &v.Type,
			&v.MaxCapacityKg, &v.OdometerKm, &v.Status, &v.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (s *PGStore) ListByStatus(ctx context.Context, status Status) ([]Vehicle, error) {
	rows, err := s.db.Query(ctx, `
        SELECT id, license_plate, model, vehicle_type, max_capacity_kg, odometer_km, status, created_at
        FROM vehicles WHERE status = $1 ORDER BY created_at`, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Vehicle
	for rows.Next() {
		var v Vehicle
		if err := rows.Scan(&v.ID, &v.LicensePlate, &v.Model, &v.Type,
			&v.MaxCapacityKg, &v.OdometerKm, &v.Status, &v.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Update writes the mutable registration fields. The odometer is monotonic:
// a smaller reading than the stored one fails the WHERE clause.
func (s *PGStore) Update(ctx context.Context, id types.ID, model, vtype string, maxCapacityKg int, odometerKm int64) error {
	tag, err := s.db.Exec(ctx, `
        UPDATE vehicles
        SET model = $1, vehicle_type = $2, max_capacity_kg = $3, odometer_km = $4
        WHERE id = $5 AND odometer_km <= $4`,
		model, vtype, maxCapacityKg, odometerKm, string(id),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		if _, err := s.Get(ctx, id); err != nil {
			return err
		}
		return ErrBadRequest
	}
	return nil
}

// Delete removes a vehicle unless a non-terminal trip or an open maintenance
// log still references it. The reference check and the delete run as one
// statement so a concurrent reservation cannot slip in between.
func (s *PGStore) Delete(ctx context.Context, id types.ID) error {
	tag, err := s.db.Exec(ctx, `
        DELETE FROM vehicles
        WHERE id = $1
          AND NOT EXISTS (SELECT 1 FROM trips WHERE vehicle_id = $1 AND status IN ('draft','dispatched'))
          AND NOT EXISTS (SELECT 1 FROM maintenance_logs WHERE vehicle_id = $1 AND status = 'in_shop')`,
		string(id),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		if _, err := s.Get(ctx, id); err != nil {
			return err
		}
		return ErrConflict
	}
	return nil
}

func scanVehicle(row pgx.Row) (*Vehicle, error) {
	var v Vehicle
	err := row.Scan(&v.ID, &v.LicensePlate, &v.Model, &v.Type,
		&v.MaxCapacityKg, &v.OdometerKm, &v.Status, &v.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
