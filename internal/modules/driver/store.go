// README: Driver store backed by PostgreSQL.
package driver

import (
	"context"
	"errors"

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

func (s *PGStore) Create(ctx context.Context, d *Driver) error {
	_, err := s.db.Exec(ctx, `
        INSERT INTO drivers (id, name, license_category, status, created_at)
        VALUES ($1, $2, $3, $4, $5)`,
		string(d.ID), d.Name, d.LicenseCategory, string(d.Status), d.CreatedAt,
	)
	return err
}

func (s *PGStore) Get(ctx context.Context, id types.ID) (*Driver, error) {
	row := s.db.QueryRow(ctx, `
        SELECT id, name, license_category, status, created_at
        FROM drivers WHERE id = $1`, string(id),
	)
	var d Driver
	err := row.Scan(&d.ID, &d.Name, &d.LicenseCategory, &d.Status, &d.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *PGStore) List(ctx context.Context) ([]Driver, error) {
	return s.list(ctx, `
        SELECT id, name, license_category, status, created_at
        FROM drivers ORDER BY created_at`)
}

func (s *PGStore) ListByStatus(ctx context.Context, status Status) ([]Driver, error) {
	return s.list(ctx, `
        SELECT id, name, license_category, status, created_at
        FROM drivers WHERE status = $1 ORDER BY created_at`, string(status))
}

func (s *PGStore) list(ctx context.Context, query string, args ...any) ([]Driver, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Driver
	for rows.Next() {
		var d Driver
		if err := rows.Scan(&d.ID, &d.Name, &d.LicenseCategory, &d.Status, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *PGStore) Update(ctx context.Context, id types.ID, name, licenseCategory string) error {
	tag, err := s.db.Exec(ctx, `
        UPDATE drivers SET name = $1, license_category = $2 WHERE id = $3`,
		name, licenseCategory, string(id),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CompareAndSwapStatus flips the duty status only when the current value
// matches from. Reports whether the swap happened.
func (s *PGStore) CompareAndSwapStatus(ctx context.Context, id types.ID, from, to Status) (bool, error) {
	tag, err := s.db.Exec(ctx, `
        UPDATE drivers SET status = $1 WHERE id = $2 AND status = $3`,
		string(to), string(id), string(from),
	)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() == 0 {
		if _, err := s.Get(ctx, id); err != nil {
			return false, err
		}
		return false, nil
	}
	return true, nil
}

// ForceStatus overrides the duty status unconditionally. Reserved for the
// safety suspension path.
func (s *PGStore) ForceStatus(ctx context.Context, id types.ID, to Status) error {
	tag, err := s.db.Exec(ctx, `UPDATE drivers SET status = $1 WHERE id = $2`,
		string(to), string(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a driver unless a non-terminal trip still references them.
func (s *PGStore) Delete(ctx context.Context, id types.ID) error {
	tag, err := s.db.Exec(ctx, `
        DELETE FROM drivers
        WHERE id = $1
          AND NOT EXISTS (SELECT 1 FROM trips WHERE driver_id = $1 AND status IN ('draft','dispatched'))`,
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
