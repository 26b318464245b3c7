package repository

import (
	"context"
	"errors"
	"time"

	"skillswap/internal/database"

	"github.com/google/uuid"
)

var ErrAdminMessageNotFound = errors.New("admin message not found")

type AdminMessage struct {
	ID        uuid.UUID
	Title     string
	Content   string
	Type      string
	IsActive  bool
	CreatedAt time.Time
}

type AdminAction struct {
	ID        uuid.UUID
	AdminID   uuid.UUID
	Action    string
	TargetID  uuid.UUID
	Reason    *string
	CreatedAt time.Time
}

// ReportCounts is the moderation dashboard summary.
type ReportCounts struct {
	Users         int
	SwapsByStatus map[string]int
	Ratings       int
	AverageRating float64
}

type AdminRepository interface {
	CreateMessage(ctx context.Context, m AdminMessage) (AdminMessage, error)
	DeactivateMessage(ctx context.Context, id uuid.UUID) error
	ListActiveMessages(ctx context.Context) ([]AdminMessage, error)
	LogAction(ctx context.Context, a AdminAction) error
	Report(ctx context.Context) (ReportCounts, error)
}

type PostgresAdminRepository struct {
	db database.DB
}

func NewPostgresAdminRepository(db database.DB) *PostgresAdminRepository {
	return &PostgresAdminRepository{db: db}
}

func (r *PostgresAdminRepository) CreateMessage(ctx context.Context, m AdminMessage) (AdminMessage, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO admin_messages (id, title, content, type, is_active) VALUES ($1, $2, $3, $4, TRUE)`,
		m.ID, m.Title, m.Content, m.Type,
	)
	if err != nil {
		return AdminMessage{}, err
	}

	row := r.db.QueryRow(ctx,
		`SELECT id, title, content, type, is_active, created_at FROM admin_messages WHERE id = $1`,
		m.ID,
	)
	var created AdminMessage
	if err := row.Scan(&created.ID, &created.Title, &created.Content, &created.Type, &created.IsActive, &created.CreatedAt); err != nil {
		return AdminMessage{}, err
	}
	return created, nil
}

func (r *PostgresAdminRepository) DeactivateMessage(ctx context.Context, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE admin_messages SET is_active = FALSE WHERE id = $1`,
		id,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrAdminMessageNotFound
	}
	return nil
}

func (r *PostgresAdminRepository) ListActiveMessages(ctx context.Context) ([]AdminMessage, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, title, content, type, is_active, created_at
		 FROM admin_messages
		 WHERE is_active = TRUE
		 ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]AdminMessage, 0)
	for rows.Next() {
		var m AdminMessage
		if err := rows.Scan(&m.ID, &m.Title, &m.Content, &m.Type, &m.IsActive, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresAdminRepository) LogAction(ctx context.Context, a AdminAction) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO admin_actions (id, admin_id, action, target_id, reason) VALUES ($1, $2, $3, $4, $5)`,
		a.ID, a.AdminID, a.Action, a.TargetID, a.Reason,
	)
	return err
}

func (r *PostgresAdminRepository) Report(ctx context.Context) (ReportCounts, error) {
	rc := ReportCounts{SwapsByStatus: make(map[string]int)}

	row := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM profiles`)
	if err := row.Scan(&rc.Users); err != nil {
		return ReportCounts{}, err
	}

	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM swap_requests GROUP BY status`)
	if err != nil {
		return ReportCounts{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return ReportCounts{}, err
		}
		rc.SwapsByStatus[status] = n
	}
	if err := rows.Err(); err != nil {
		return ReportCounts{}, err
	}

	row = r.db.QueryRow(ctx, `SELECT COUNT(*), COALESCE(AVG(rating), 0) FROM ratings`)
	if err := row.Scan(&rc.Ratings, &rc.AverageRating); err != nil {
		return ReportCounts{}, err
	}

	return rc, nil
}
