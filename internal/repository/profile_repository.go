package repository

import (
	"context"
	"errors"

	"skillswap/internal/database"
	"skillswap/internal/domain/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrProfileNotFound = errors.New("profile not found")

const profileColumns = `id, name, location, profile_photo, availability, is_public, is_admin, is_banned, rating, total_swaps, created_at, updated_at`

type ProfileRepository interface {
	Create(ctx context.Context, tx database.Tx, p user.Profile) error
	FindByID(ctx context.Context, id uuid.UUID) (user.Profile, error)
	Update(ctx context.Context, p user.Profile) (user.Profile, error)
	SetBanned(ctx context.Context, id uuid.UUID, banned bool) error
	ListPublic(ctx context.Context) ([]user.Profile, error)
	ListAll(ctx context.Context) ([]user.Profile, error)
}

type PostgresProfileRepository struct {
	db database.DB
}

func NewPostgresProfileRepository(db database.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

func (r *PostgresProfileRepository) Create(ctx context.Context, tx database.Tx, p user.Profile) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO profiles (id, name, location, profile_photo, availability, is_public)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.Name, p.Location, p.ProfilePhoto, p.Availability, p.IsPublic,
	)
	return err
}

func (r *PostgresProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (user.Profile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE id = $1`,
		id,
	)
	return scanProfile(row)
}

func (r *PostgresProfileRepository) Update(ctx context.Context, p user.Profile) (user.Profile, error) {
	affected, err := r.db.Exec(ctx,
		`UPDATE profiles
		 SET name = $1, location = $2, profile_photo = $3, availability = $4, is_public = $5, updated_at = now()
		 WHERE id = $6`,
		p.Name, p.Location, p.ProfilePhoto, p.Availability, p.IsPublic, p.ID,
	)
	if err != nil {
		return user.Profile{}, err
	}
	if affected == 0 {
		return user.Profile{}, ErrProfileNotFound
	}
	return r.FindByID(ctx, p.ID)
}

func (r *PostgresProfileRepository) SetBanned(ctx context.Context, id uuid.UUID, banned bool) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE profiles SET is_banned = $1, updated_at = now() WHERE id = $2`,
		banned, id,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *PostgresProfileRepository) ListPublic(ctx context.Context) ([]user.Profile, error) {
	return r.list(ctx,
		`SELECT `+profileColumns+` FROM profiles
		 WHERE is_public = TRUE AND is_banned = FALSE
		 ORDER BY created_at DESC`,
	)
}

func (r *PostgresProfileRepository) ListAll(ctx context.Context) ([]user.Profile, error) {
	return r.list(ctx, `SELECT `+profileColumns+` FROM profiles ORDER BY created_at DESC`)
}

func (r *PostgresProfileRepository) list(ctx context.Context, query string) ([]user.Profile, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]user.Profile, 0)
	for rows.Next() {
		var p user.Profile
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Location, &p.ProfilePhoto, &p.Availability,
			&p.IsPublic, &p.IsAdmin, &p.IsBanned, &p.Rating, &p.TotalSwaps,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanProfile(row database.Row) (user.Profile, error) {
	var p user.Profile
	if err := row.Scan(
		&p.ID, &p.Name, &p.Location, &p.ProfilePhoto, &p.Availability,
		&p.IsPublic, &p.IsAdmin, &p.IsBanned, &p.Rating, &p.TotalSwaps,
		&p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.Profile{}, ErrProfileNotFound
		}
		return user.Profile{}, err
	}
	return p, nil
}
