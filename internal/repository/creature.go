package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"github.com/hagiodex/hagiodex/internal/model"
)

// Common errors for creature repository operations.
var (
	ErrCreatureNotFound   = errors.New("creature not found")
	ErrCreatureNameExists = errors.New("creature name already exists")
)

// creatureSelect joins each creature with its types in insertion order.
const creatureSelect = `
	SELECT c.id, c.name, c.hp, c.attack, c.defense,
	       COALESCE(array_agg(t.type_name ORDER BY t.position, t.id)
	                FILTER (WHERE t.type_name IS NOT NULL), '{}')
	FROM creatures c
	LEFT JOIN creature_types t ON t.creature_id = c.id
`

func scanCreature(row pgx.Row) (*model.Creature, error) {
	var c model.Creature
	var types []string
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Stats.HP,
		&c.Stats.Attack,
		&c.Stats.Defense,
		pq.Array(&types),
	)
	if err != nil {
		return nil, err
	}
	if types == nil {
		types = []string{}
	}
	c.Types = types
	return &c, nil
}

// ListCreatures returns every creature ordered by id.
func (r *Repository) ListCreatures(ctx context.Context) ([]*model.Creature, error) {
	query := creatureSelect + ` GROUP BY c.id ORDER BY c.id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list creatures: %w", err)
	}
	defer rows.Close()

	creatures := []*model.Creature{}
	for rows.Next() {
		c, err := scanCreature(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan creature: %w", err)
		}
		creatures = append(creatures, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate creatures: %w", err)
	}

	return creatures, nil
}

// GetCreatureByID retrieves a creature by its ID.
func (r *Repository) GetCreatureByID(ctx context.Context, id int64) (*model.Creature, error) {
	query := creatureSelect + ` WHERE c.id = $1 GROUP BY c.id`

	c, err := scanCreature(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCreatureNotFound
		}
		return nil, fmt.Errorf("failed to get creature by ID: %w", err)
	}

	return c, nil
}

// GetCreatureByName retrieves a creature by name, ignoring case.
func (r *Repository) GetCreatureByName(ctx context.Context, name string) (*model.Creature, error) {
	query := creatureSelect + ` WHERE lower(c.name) = lower($1) GROUP BY c.id`

	c, err := scanCreature(r.pool.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCreatureNotFound
		}
		return nil, fmt.Errorf("failed to get creature by name: %w", err)
	}

	return c, nil
}

// CreateCreature inserts a creature and its types in one transaction.
func (r *Repository) CreateCreature(ctx context.Context, c *model.Creature) error {
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO creatures (name, hp, attack, defense)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, c.Name, c.Stats.HP, c.Stats.Attack, c.Stats.Defense).Scan(&c.ID)
		if err != nil {
			return err
		}

		if len(c.Types) == 0 {
			return nil
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO creature_types (creature_id, type_name, position)
			SELECT $1, t.name, t.ord
			FROM unnest($2::text[]) WITH ORDINALITY AS t(name, ord)
		`, c.ID, pq.Array(c.Types))
		return err
	})

	if err != nil {
		if uniqueViolation(err) != "" {
			return ErrCreatureNameExists
		}
		return fmt.Errorf("failed to create creature: %w", err)
	}

	if c.Types == nil {
		c.Types = []string{}
	}
	return nil
}
