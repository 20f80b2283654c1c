// README: Maintenance store backed by PostgreSQL; open/close couple vehicle status in one transaction.
package maintenance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fleetflow/internal/modules/vehicle"
	"fleetflow/internal/types"
)

type PGStore struct {
	db *pgxpool.Pool
}

func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

// Open inserts the log and forces the vehicle into the shop as one
// transaction. A vehicle locked by an active trip rejects with
// ErrVehicleOnTrip.
func (s *PGStore) Open(ctx context.Context, l *Log) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var status string
	err = tx.QueryRow(ctx, `SELECT status FROM vehicles WHERE id = $1 FOR UPDATE`,
		string(l.VehicleID)).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return vehicle.ErrNotFound
	}
	if err != nil {
		return err
	}
	if vehicle.Status(status) == vehicle.StatusOnTrip {
		return ErrVehicleOnTrip
	}
	if _, err := tx.Exec(ctx, `UPDATE vehicles SET status = $1 WHERE id = $2`,
		string(vehicle.StatusInShop), string(l.VehicleID)); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `
        INSERT INTO maintenance_logs (id, vehicle_id, issue, date, cost, status, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		string(l.ID), string(l.VehicleID), l.Issue, l.Date, l.Cost.Amount,
		string(l.Status), l.CreatedAt,
	); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Close marks the log closed and, when it was the vehicle's last open log,
// restores the vehicle to idle. Reports whether the vehicle was restored.
func (s *PGStore) Close(ctx context.Context, id types.ID) (restored bool, vehicleID types.ID, err error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return false, "", err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var vid string
	err = tx.QueryRow(ctx, `
        UPDATE maintenance_logs SET status = $1, closed_at = NOW()
        WHERE id = $2 AND status = $3
        RETURNING vehicle_id`,
		string(StatusClosed), string(id), string(StatusInShop),
	).Scan(&vid)
	if errors.Is(err, pgx.ErrNoRows) {
		var exists bool
		if err := s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM maintenance_logs WHERE id = $1)`,
			string(id)).Scan(&exists); err != nil {
			return false, "", err
		}
		if !exists {
			return false, "", ErrNotFound
		}
		return false, "", fmt.Errorf("%w: log already closed", ErrBadRequest)
	}
	if err != nil {
		return false, "", err
	}

	tag, err := tx.Exec(ctx, `
        UPDATE vehicles SET status = $1
        WHERE id = $2 AND status = $3
          AND NOT EXISTS (SELECT 1 FROM maintenance_logs WHERE vehicle_id = $2 AND status = $4)`,
		string(vehicle.StatusIdle), vid, string(vehicle.StatusInShop), string(StatusInShop),
	)
	if err != nil {
		return false, "", err
	}
	if err := tx.Commit(ctx); err != nil {
		return false, "", err
	}
	return tag.RowsAffected() == 1, types.ID(vid), nil
}

func (s *PGStore) Get(ctx context.Context, id types.ID) (*Log, error) {
	row := s.db.QueryRow(ctx, `
        SELECT id, vehicle_id, issue, date, cost, status, created_at, closed_at
        FROM maintenance_logs WHERE id = $1`, string(id))
	l, err := scanLog(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return l, err
}

func (s *PGStore) List(ctx context.Context) ([]Log, error) {
	rows, err := s.db.Query(ctx, `
        SELECT id, vehicle_id, issue, date, cost, status, created_at, closed_at
        FROM maintenance_logs ORDER BY date DESC, created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Log
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *l)
	}
	return out, rows.Err()
}

// HasOpenForVehicle reports whether the vehicle has any open log.
func (s *PGStore) HasOpenForVehicle(ctx context.Context, vehicleID types.ID) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx, `
        SELECT EXISTS (SELECT 1 FROM maintenance_logs WHERE vehicle_id = $1 AND status = $2)`,
		string(vehicleID), string(StatusInShop)).Scan(&exists)
	return exists, err
}

func scanLog(row pgx.Row) (*Log, error) {
	var l Log
	var closedAt sql.NullTime
	err := row.Scan(&l.ID, &l.VehicleID, &l.Issue, &l.Date, &l.Cost.Amount,
		&l.Status, &l.CreatedAt, &closedAt)
	if err != nil {
		return nil, err
	}
	if closedAt.Valid {
		t := closedAt.Time
		l.ClosedAt = &t
	}
	if l.Cost.Currency == "" {
		l.Cost.Currency = DefaultCurrency
	}
	return &l, nil
}
