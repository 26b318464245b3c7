package usecase

import (
	"context"
	"errors"
	"strings"

	"skillswap/internal/database"
	"skillswap/internal/domain/user"
	"skillswap/internal/pkg/jwt"
	"skillswap/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrUserBanned             = errors.New("user banned")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrInvalidRefreshToken    = errors.New("invalid refresh token")
	ErrRefreshTokenExpired    = errors.New("refresh token expired")
)

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthUsecase interface {
	Register(ctx context.Context, in RegisterInput) (user.User, string, string, error)
	Login(ctx context.Context, in LoginInput) (user.User, string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
}

type Auth struct {
	db       database.DB
	users    repository.UserRepository
	profiles repository.ProfileRepository
	jwt      jwt.Service
}

func NewAuthUsecase(db database.DB, users repository.UserRepository, profiles repository.ProfileRepository, jwtSvc jwt.Service) *Auth {
	return &Auth{db: db, users: users, profiles: profiles, jwt: jwtSvc}
}

// Register creates the account and its profile in one transaction so a
// half-created user never appears in browse results.
func (u *Auth) Register(ctx context.Context, in RegisterInput) (user.User, string, string, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	password := strings.TrimSpace(in.Password)

	if name == "" || email == "" || len(password) < 8 {
		return user.User{}, "", "", ErrInvalidInput
	}

	if _, err := u.users.GetByEmail(ctx, email); err == nil {
		return user.User{}, "", "", ErrEmailAlreadyRegistered
	} else if !errors.Is(err, user.ErrNotFound) {
		return user.User{}, "", "", ErrInternal
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, "", "", ErrInternal
	}

	usr := user.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return user.User{}, "", "", ErrInternal
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	if err := u.users.Create(ctx, tx, usr); err != nil {
		if isUniqueViolation(err) {
			return user.User{}, "", "", ErrEmailAlreadyRegistered
		}
		return user.User{}, "", "", ErrInternal
	}
	if err := u.profiles.Create(ctx, tx, user.Profile{
		ID:       usr.ID,
		Name:     name,
		IsPublic: true,
	}); err != nil {
		return user.User{}, "", "", ErrInternal
	}
	if err := tx.Commit(ctx); err != nil {
		return user.User{}, "", "", ErrInternal
	}

	access, refresh, err := u.issueTokens(usr)
	if err != nil {
		return user.User{}, "", "", err
	}
	return sanitizeUser(usr), access, refresh, nil
}

func (u *Auth) Login(ctx context.Context, in LoginInput) (user.User, string, string, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return user.User{}, "", "", ErrInvalidCredentials
	}

	usr, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, "", "", ErrInvalidCredentials
		}
		return user.User{}, "", "", ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(in.Password)); err != nil {
		return user.User{}, "", "", ErrInvalidCredentials
	}

	prof, err := u.profiles.FindByID(ctx, usr.ID)
	if err != nil {
		return user.User{}, "", "", ErrInternal
	}
	if prof.IsBanned {
		return user.User{}, "", "", ErrUserBanned
	}

	access, refresh, err := u.issueTokens(usr)
	if err != nil {
		return user.User{}, "", "", err
	}
	return sanitizeUser(usr), access, refresh, nil
}

func (u *Auth) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	if refreshToken == "" {
		return "", "", ErrUnauthorized
	}

	claims, err := u.jwt.ValidateToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", "", ErrRefreshTokenExpired
		}
		return "", "", ErrInvalidRefreshToken
	}

	if !u.jwt.IsRefreshToken(claims) || claims.TokenType != jwt.TokenTypeRefresh {
		return "", "", ErrInvalidRefreshToken
	}

	usr, err := u.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", "", ErrInternal
	}

	return u.issueTokens(usr)
}

func (u *Auth) issueTokens(usr user.User) (string, string, error) {
	access, err := u.jwt.GenerateAccessToken(usr.ID, usr.Email)
	if err != nil {
		return "", "", ErrInternal
	}
	refresh, err := u.jwt.GenerateRefreshToken(usr.ID)
	if err != nil {
		return "", "", ErrInternal
	}
	return access, refresh, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
