package repository

import (
	"context"
	"fmt"

	"skill-community/internal/database"
)

type SkillRepository interface {
	ListSkillNames(ctx context.Context) ([]string, error)
}

type PostgresSkillRepository struct {
	db database.DB
}

func NewPostgresSkillRepository(db database.DB) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db}
}

func (r *PostgresSkillRepository) ListSkillNames(ctx context.Context) ([]string, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("nil db")
	}
	rows, err := r.db.Query(ctx, `SELECT name FROM skills ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// StaticSkillRepository serves a fixed list; used when no database is configured.
type StaticSkillRepository struct {
	Names []string
}

func (r StaticSkillRepository) ListSkillNames(context.Context) ([]string, error) {
	return append([]string(nil), r.Names...), nil
}
