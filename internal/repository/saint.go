package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hagiodex/hagiodex/internal/model"
)

// ErrSaintNotFound is returned when no saint matches the lookup.
var ErrSaintNotFound = errors.New("saint not found")

const saintColumns = `id, name, patronage, feast_day, veneration, birthplace,
	birth_date, death_date, history, attributes`

func scanSaint(row pgx.Row) (*model.Saint, error) {
	var s model.Saint
	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Patronage,
		&s.FeastDay,
		&s.Veneration,
		&s.Birthplace,
		&s.BirthDate,
		&s.DeathDate,
		&s.History,
		&s.Attributes,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ListSaints returns every saint ordered by name.
func (r *Repository) ListSaints(ctx context.Context) ([]*model.Saint, error) {
	query := `SELECT ` + saintColumns + ` FROM saints ORDER BY name, id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list saints: %w", err)
	}
	defer rows.Close()

	saints := []*model.Saint{}
	for rows.Next() {
		s, err := scanSaint(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan saint: %w", err)
		}
		saints = append(saints, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate saints: %w", err)
	}

	return saints, nil
}

// GetSaintByID retrieves a saint by its ID.
func (r *Repository) GetSaintByID(ctx context.Context, id int64) (*model.Saint, error) {
	query := `SELECT ` + saintColumns + ` FROM saints WHERE id = $1`

	s, err := scanSaint(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSaintNotFound
		}
		return nil, fmt.Errorf("failed to get saint by ID: %w", err)
	}

	return s, nil
}

// GetSaintByName retrieves a saint by name, ignoring case. Names are not
// unique; the lowest id wins.
func (r *Repository) GetSaintByName(ctx context.Context, name string) (*model.Saint, error) {
	query := `SELECT ` + saintColumns + ` FROM saints
		WHERE lower(name) = lower($1) ORDER BY id LIMIT 1`

	s, err := scanSaint(r.pool.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSaintNotFound
		}
		return nil, fmt.Errorf("failed to get saint by name: %w", err)
	}

	return s, nil
}

// CreateSaint inserts a saint and sets its ID.
func (r *Repository) CreateSaint(ctx context.Context, s *model.Saint) error {
	query := `
		INSERT INTO saints (name, patronage, feast_day, veneration, birthplace,
			birth_date, death_date, history, attributes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query,
		s.Name,
		s.Patronage,
		s.FeastDay,
		s.Veneration,
		s.Birthplace,
		s.BirthDate,
		s.DeathDate,
		s.History,
		s.Attributes,
	).Scan(&s.ID)

	if err != nil {
		return fmt.Errorf("failed to create saint: %w", err)
	}

	return nil
}

// UpdateSaint applies patch to the stored saint inside a transaction so the
// read and the write see the same row.
func (r *Repository) UpdateSaint(ctx context.Context, id int64, patch model.SaintPatch) (*model.Saint, error) {
	var updated *model.Saint

	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		current, err := scanSaint(tx.QueryRow(ctx,
			`SELECT `+saintColumns+` FROM saints WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			return err
		}

		patch.Apply(current)

		_, err = tx.Exec(ctx, `
			UPDATE saints
			SET name = $2, patronage = $3, feast_day = $4, veneration = $5,
				birthplace = $6, birth_date = $7, death_date = $8,
				history = $9, attributes = $10
			WHERE id = $1
		`,
			current.ID,
			current.Name,
			current.Patronage,
			current.FeastDay,
			current.Veneration,
			current.Birthplace,
			current.BirthDate,
			current.DeathDate,
			current.History,
			current.Attributes,
		)
		if err != nil {
			return err
		}

		updated = current
		return nil
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSaintNotFound
		}
		return nil, fmt.Errorf("failed to update saint: %w", err)
	}

	return updated, nil
}

// DeleteSaint removes a saint by ID.
func (r *Repository) DeleteSaint(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM saints WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete saint: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSaintNotFound
	}
	return nil
}
