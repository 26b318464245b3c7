package usecase

import (
	"context"
	"errors"
	"strings"

	"skillswap/internal/domain/user"
	"skillswap/internal/repository"

	"github.com/google/uuid"
)

var ErrMessageNotFound = errors.New("admin message not found")

const (
	adminActionBan   = "ban_user"
	adminActionUnban = "unban_user"
)

var adminMessageTypes = map[string]bool{
	"info":        true,
	"warning":     true,
	"maintenance": true,
}

type CreateMessageInput struct {
	Title   string
	Content string
	Type    string
}

type AdminUsecase interface {
	BanUser(ctx context.Context, adminID, targetID uuid.UUID, reason string) error
	UnbanUser(ctx context.Context, adminID, targetID uuid.UUID) error
	ListUsers(ctx context.Context) ([]user.Profile, error)
	CreateMessage(ctx context.Context, in CreateMessageInput) (repository.AdminMessage, error)
	DeactivateMessage(ctx context.Context, id uuid.UUID) error
	ListActiveMessages(ctx context.Context) ([]repository.AdminMessage, error)
	Report(ctx context.Context) (repository.ReportCounts, error)
}

type Admin struct {
	profiles repository.ProfileRepository
	admin    repository.AdminRepository
	cache    Cache
}

func NewAdminUsecase(profiles repository.ProfileRepository, admin repository.AdminRepository, c Cache) *Admin {
	return &Admin{profiles: profiles, admin: admin, cache: c}
}

func (u *Admin) BanUser(ctx context.Context, adminID, targetID uuid.UUID, reason string) error {
	return u.setBanned(ctx, adminID, targetID, true, strings.TrimSpace(reason))
}

func (u *Admin) UnbanUser(ctx context.Context, adminID, targetID uuid.UUID) error {
	return u.setBanned(ctx, adminID, targetID, false, "")
}

func (u *Admin) setBanned(ctx context.Context, adminID, targetID uuid.UUID, banned bool, reason string) error {
	if err := u.profiles.SetBanned(ctx, targetID, banned); err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return ErrUserNotFound
		}
		return ErrInternal
	}

	action := adminActionUnban
	if banned {
		action = adminActionBan
	}
	var reasonPtr *string
	if reason != "" {
		reasonPtr = &reason
	}
	// The moderation action stands even if the audit write fails; the audit
	// log is advisory.
	_ = u.admin.LogAction(ctx, repository.AdminAction{
		ID:       uuid.New(),
		AdminID:  adminID,
		Action:   action,
		TargetID: targetID,
		Reason:   reasonPtr,
	})

	if u.cache != nil {
		_ = u.cache.Delete(ctx, cacheKeyPublicUsers)
	}
	return nil
}

func (u *Admin) ListUsers(ctx context.Context) ([]user.Profile, error) {
	items, err := u.profiles.ListAll(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Admin) CreateMessage(ctx context.Context, in CreateMessageInput) (repository.AdminMessage, error) {
	title := strings.TrimSpace(in.Title)
	content := strings.TrimSpace(in.Content)
	msgType := strings.TrimSpace(in.Type)
	if msgType == "" {
		msgType = "info"
	}
	if title == "" || content == "" || !adminMessageTypes[msgType] {
		return repository.AdminMessage{}, ErrInvalidInput
	}

	created, err := u.admin.CreateMessage(ctx, repository.AdminMessage{
		ID:      uuid.New(),
		Title:   title,
		Content: content,
		Type:    msgType,
	})
	if err != nil {
		return repository.AdminMessage{}, ErrInternal
	}
	return created, nil
}

func (u *Admin) DeactivateMessage(ctx context.Context, id uuid.UUID) error {
	if err := u.admin.DeactivateMessage(ctx, id); err != nil {
		if errors.Is(err, repository.ErrAdminMessageNotFound) {
			return ErrMessageNotFound
		}
		return ErrInternal
	}
	return nil
}

func (u *Admin) ListActiveMessages(ctx context.Context) ([]repository.AdminMessage, error) {
	items, err := u.admin.ListActiveMessages(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Admin) Report(ctx context.Context) (repository.ReportCounts, error) {
	rc, err := u.admin.Report(ctx)
	if err != nil {
		return repository.ReportCounts{}, ErrInternal
	}
	return rc, nil
}
