package repository

import (
	"context"

	"skillswap/internal/database"
	"skillswap/internal/domain/skill"

	"github.com/google/uuid"
)

type UserSkillRow struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	SkillID   uuid.UUID
	SkillName string
	Direction skill.Direction
}

type UserSkillRepository interface {
	Upsert(ctx context.Context, us skill.UserSkill) error
	Delete(ctx context.Context, userID, skillID uuid.UUID, direction skill.Direction) (int64, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]UserSkillRow, error)
	ListByUserIDs(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID][]UserSkillRow, error)
	HasOffered(ctx context.Context, userID, skillID uuid.UUID) (bool, error)
}

type PostgresUserSkillRepository struct {
	db database.DB
}

func NewPostgresUserSkillRepository(db database.DB) *PostgresUserSkillRepository {
	return &PostgresUserSkillRepository{db: db}
}

// Upsert is idempotent: adding an entry the user already has is a no-op.
func (r *PostgresUserSkillRepository) Upsert(ctx context.Context, us skill.UserSkill) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO user_skills (id, user_id, skill_id, direction)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id, skill_id, direction) DO NOTHING`,
		us.ID, us.UserID, us.SkillID, us.Direction,
	)
	return err
}

func (r *PostgresUserSkillRepository) Delete(ctx context.Context, userID, skillID uuid.UUID, direction skill.Direction) (int64, error) {
	return r.db.Exec(ctx,
		`DELETE FROM user_skills WHERE user_id = $1 AND skill_id = $2 AND direction = $3`,
		userID, skillID, direction,
	)
}

func (r *PostgresUserSkillRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]UserSkillRow, error) {
	rows, err := r.db.Query(ctx,
		`SELECT us.id, us.user_id, us.skill_id, s.name, us.direction
		 FROM user_skills us
		 JOIN skills s ON s.id = us.skill_id
		 WHERE us.user_id = $1
		 ORDER BY s.name ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectUserSkillRows(rows)
}

func (r *PostgresUserSkillRepository) ListByUserIDs(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID][]UserSkillRow, error) {
	out := make(map[uuid.UUID][]UserSkillRow, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT us.id, us.user_id, us.skill_id, s.name, us.direction
		 FROM user_skills us
		 JOIN skills s ON s.id = us.skill_id
		 WHERE us.user_id = ANY($1)
		 ORDER BY s.name ASC`,
		userIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items, err := collectUserSkillRows(rows)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		out[it.UserID] = append(out[it.UserID], it)
	}
	return out, nil
}

func (r *PostgresUserSkillRepository) HasOffered(ctx context.Context, userID, skillID uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM user_skills
			WHERE user_id = $1 AND skill_id = $2 AND direction = $3
		 )`,
		userID, skillID, skill.DirectionOffered,
	)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func collectUserSkillRows(rows database.Rows) ([]UserSkillRow, error) {
	out := make([]UserSkillRow, 0)
	for rows.Next() {
		var it UserSkillRow
		if err := rows.Scan(&it.ID, &it.UserID, &it.SkillID, &it.SkillName, &it.Direction); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
