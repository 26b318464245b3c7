package repository

import (
	"context"
	"time"

	"skillswap/internal/database"

	"github.com/google/uuid"
)

type Rating struct {
	ID            uuid.UUID
	SwapRequestID uuid.UUID
	FromUserID    uuid.UUID
	ToUserID      uuid.UUID
	Rating        int
	Feedback      *string
	CreatedAt     time.Time
}

// ReceivedRating is a rating hydrated with the rater's profile summary.
type ReceivedRating struct {
	Rating

	FromName  string
	FromPhoto *string
}

type RatingRepository interface {
	Create(ctx context.Context, rt Rating) (Rating, error)
	ExistsForSwapAndRater(ctx context.Context, swapID, raterID uuid.UUID) (bool, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]ReceivedRating, error)
	// RecomputeProfileAggregates refreshes the recipient's average rating and
	// completed-swap count from the ledger.
	RecomputeProfileAggregates(ctx context.Context, userID uuid.UUID) error
}

type PostgresRatingRepository struct {
	db database.DB
}

func NewPostgresRatingRepository(db database.DB) *PostgresRatingRepository {
	return &PostgresRatingRepository{db: db}
}

func (r *PostgresRatingRepository) Create(ctx context.Context, rt Rating) (Rating, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO ratings (id, swap_request_id, from_user_id, to_user_id, rating, feedback)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		rt.ID, rt.SwapRequestID, rt.FromUserID, rt.ToUserID, rt.Rating, rt.Feedback,
	)
	if err != nil {
		return Rating{}, err
	}

	row := r.db.QueryRow(ctx,
		`SELECT id, swap_request_id, from_user_id, to_user_id, rating, feedback, created_at
		 FROM ratings WHERE id = $1`,
		rt.ID,
	)
	var created Rating
	if err := row.Scan(
		&created.ID, &created.SwapRequestID, &created.FromUserID, &created.ToUserID,
		&created.Rating, &created.Feedback, &created.CreatedAt,
	); err != nil {
		return Rating{}, err
	}
	return created, nil
}

func (r *PostgresRatingRepository) ExistsForSwapAndRater(ctx context.Context, swapID, raterID uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM ratings WHERE swap_request_id = $1 AND from_user_id = $2)`,
		swapID, raterID,
	)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresRatingRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]ReceivedRating, error) {
	rows, err := r.db.Query(ctx,
		`SELECT rt.id, rt.swap_request_id, rt.from_user_id, rt.to_user_id, rt.rating, rt.feedback, rt.created_at,
		        p.name, p.profile_photo
		 FROM ratings rt
		 JOIN profiles p ON p.id = rt.from_user_id
		 WHERE rt.to_user_id = $1
		 ORDER BY rt.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ReceivedRating, 0)
	for rows.Next() {
		var it ReceivedRating
		if err := rows.Scan(
			&it.ID, &it.SwapRequestID, &it.FromUserID, &it.ToUserID,
			&it.Rating, &it.Feedback, &it.CreatedAt,
			&it.FromName, &it.FromPhoto,
		); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresRatingRepository) RecomputeProfileAggregates(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`UPDATE profiles SET
			rating = COALESCE((SELECT AVG(rating) FROM ratings WHERE to_user_id = $1), 0),
			total_swaps = (
				SELECT COUNT(*) FROM swap_requests
				WHERE status = 'completed' AND (from_user_id = $1 OR to_user_id = $1)
			),
			updated_at = now()
		 WHERE id = $1`,
		userID,
	)
	return err
}
