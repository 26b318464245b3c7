package repository

import (
	"context"
	"errors"

	"skillswap/internal/database"
	"skillswap/internal/domain/swap"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrSwapNotFound = errors.New("swap request not found")

// RequestDetails is a swap request hydrated with both participants' profile
// summaries and the skill names, as rendered in request lists.
type RequestDetails struct {
	swap.Request

	FromName         string
	FromPhoto        *string
	FromLocation     *string
	ToName           string
	ToPhoto          *string
	ToLocation       *string
	SkillOfferedName string
	SkillWantedName  string
}

type SwapRepository interface {
	Create(ctx context.Context, req swap.Request) (swap.Request, error)
	FindByID(ctx context.Context, id uuid.UUID) (swap.Request, error)
	// UpdateStatus flips status only when the stored status still matches
	// expected, and reports the number of rows affected. Zero rows means the
	// request vanished or its status moved on concurrently.
	UpdateStatus(ctx context.Context, id uuid.UUID, expected, next swap.Status) (int64, error)
	DeletePending(ctx context.Context, id uuid.UUID) (int64, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]RequestDetails, error)
}

type PostgresSwapRepository struct {
	db database.DB
}

func NewPostgresSwapRepository(db database.DB) *PostgresSwapRepository {
	return &PostgresSwapRepository{db: db}
}

func (r *PostgresSwapRepository) Create(ctx context.Context, req swap.Request) (swap.Request, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO swap_requests (id, from_user_id, to_user_id, skill_offered_id, skill_wanted_id, message, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		req.ID, req.FromUserID, req.ToUserID, req.SkillOfferedID, req.SkillWantedID, req.Message, swap.StatusPending,
	)
	if err != nil {
		return swap.Request{}, err
	}
	return r.FindByID(ctx, req.ID)
}

func (r *PostgresSwapRepository) FindByID(ctx context.Context, id uuid.UUID) (swap.Request, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, from_user_id, to_user_id, skill_offered_id, skill_wanted_id, message, status, created_at, updated_at
		 FROM swap_requests WHERE id = $1`,
		id,
	)

	var req swap.Request
	if err := row.Scan(
		&req.ID, &req.FromUserID, &req.ToUserID, &req.SkillOfferedID, &req.SkillWantedID,
		&req.Message, &req.Status, &req.CreatedAt, &req.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return swap.Request{}, ErrSwapNotFound
		}
		return swap.Request{}, err
	}
	return req, nil
}

func (r *PostgresSwapRepository) UpdateStatus(ctx context.Context, id uuid.UUID, expected, next swap.Status) (int64, error) {
	return r.db.Exec(ctx,
		`UPDATE swap_requests SET status = $1, updated_at = now() WHERE id = $2 AND status = $3`,
		next, id, expected,
	)
}

func (r *PostgresSwapRepository) DeletePending(ctx context.Context, id uuid.UUID) (int64, error) {
	return r.db.Exec(ctx,
		`DELETE FROM swap_requests WHERE id = $1 AND status = $2`,
		id, swap.StatusPending,
	)
}

func (r *PostgresSwapRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]RequestDetails, error) {
	rows, err := r.db.Query(ctx,
		`SELECT sr.id, sr.from_user_id, sr.to_user_id, sr.skill_offered_id, sr.skill_wanted_id,
		        sr.message, sr.status, sr.created_at, sr.updated_at,
		        pf.name, pf.profile_photo, pf.location,
		        pt.name, pt.profile_photo, pt.location,
		        so.name, sw.name
		 FROM swap_requests sr
		 JOIN profiles pf ON pf.id = sr.from_user_id
		 JOIN profiles pt ON pt.id = sr.to_user_id
		 JOIN skills so ON so.id = sr.skill_offered_id
		 JOIN skills sw ON sw.id = sr.skill_wanted_id
		 WHERE sr.from_user_id = $1 OR sr.to_user_id = $1
		 ORDER BY sr.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]RequestDetails, 0)
	for rows.Next() {
		var d RequestDetails
		if err := rows.Scan(
			&d.ID, &d.FromUserID, &d.ToUserID, &d.SkillOfferedID, &d.SkillWantedID,
			&d.Message, &d.Status, &d.CreatedAt, &d.UpdatedAt,
			&d.FromName, &d.FromPhoto, &d.FromLocation,
			&d.ToName, &d.ToPhoto, &d.ToLocation,
			&d.SkillOfferedName, &d.SkillWantedName,
		); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
