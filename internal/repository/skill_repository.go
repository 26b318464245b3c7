package repository

import (
	"context"
	"errors"

	"skillswap/internal/database"
	"skillswap/internal/domain/skill"

	"github.com/jackc/pgx/v5"
)

var ErrSkillNotFound = errors.New("skill not found")

type SkillRepository interface {
	List(ctx context.Context) ([]skill.Skill, error)
	FindByName(ctx context.Context, name string) (skill.Skill, error)
	GetOrCreate(ctx context.Context, name string) (skill.Skill, error)
}

type PostgresSkillRepository struct {
	db database.DB
}

func NewPostgresSkillRepository(db database.DB) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db}
}

func (r *PostgresSkillRepository) List(ctx context.Context) ([]skill.Skill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, category, created_at FROM skills ORDER BY name ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.Skill, 0)
	for rows.Next() {
		var s skill.Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.Category, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// FindByName is a case-sensitive exact-match lookup.
func (r *PostgresSkillRepository) FindByName(ctx context.Context, name string) (skill.Skill, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, name, category, created_at FROM skills WHERE name = $1`,
		name,
	)

	var s skill.Skill
	if err := row.Scan(&s.ID, &s.Name, &s.Category, &s.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return skill.Skill{}, ErrSkillNotFound
		}
		return skill.Skill{}, err
	}
	return s, nil
}

// GetOrCreate inserts the skill if absent. The unique constraint on name
// dedupes concurrent creations of the same skill; the loser of the race
// falls through to the select.
func (r *PostgresSkillRepository) GetOrCreate(ctx context.Context, name string) (skill.Skill, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO skills (id, name, category) VALUES (gen_random_uuid(), $1, $2)
		 ON CONFLICT (name) DO NOTHING`,
		name, skill.DefaultCategory,
	)
	if err != nil {
		return skill.Skill{}, err
	}
	return r.FindByName(ctx, name)
}
