package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/avinashh10x/invoiceGen/internal/entity"
)

// Register creates an administrator account and logs it in.
func (s *Service) Register(ctx context.Context, name, email, password string) (entity.Admin, string, error) {
	err := ValidateAdminInput(name, email, password)
	if err != nil {
		return entity.Admin{}, "", fmt.Errorf("validate admin input: %w", err)
	}

	_, err = s.repo.AdminByEmail(ctx, email)
	if err == nil {
		return entity.Admin{}, "", fmt.Errorf("admin email %q: %w", email, entity.ErrEmailTaken)
	}

	if !isNotFound(err) {
		return entity.Admin{}, "", fmt.Errorf("get admin by email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return entity.Admin{}, "", fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()

	admin := entity.Admin{
		ID:           uuid.Must(uuid.NewV4()),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         entity.AdminRoleAdmin,
		IsActive:     true,
		LastLogin:    &now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.repo.CreateAdmin(ctx, admin)
	if err != nil {
		return entity.Admin{}, "", fmt.Errorf("create admin: %w", err)
	}

	token, err := s.issueToken(admin)
	if err != nil {
		return entity.Admin{}, "", err
	}

	slog.InfoContext(ctx, "admin registered", "admin_id", admin.ID, "email", admin.Email)

	return admin, token, nil
}

// Login checks credentials and returns a signed token. Wrong email, wrong
// password and a deactivated account all come back as ErrUnauthenticated
// so the response does not reveal which one it was.
func (s *Service) Login(ctx context.Context, email, password string) (entity.Admin, string, error) {
	admin, err := s.repo.AdminByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return entity.Admin{}, "", entity.ErrUnauthenticated
		}

		return entity.Admin{}, "", fmt.Errorf("get admin by email: %w", err)
	}

	if !admin.IsActive {
		return entity.Admin{}, "", entity.ErrUnauthenticated
	}

	err = bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password))
	if err != nil {
		return entity.Admin{}, "", entity.ErrUnauthenticated
	}

	now := time.Now()

	err = s.repo.UpdateAdminLastLogin(ctx, admin.ID, now)
	if err != nil {
		return entity.Admin{}, "", fmt.Errorf("update admin last login: %w", err)
	}

	admin.LastLogin = &now

	token, err := s.issueToken(admin)
	if err != nil {
		return entity.Admin{}, "", err
	}

	slog.InfoContext(ctx, "admin logged in", "admin_id", admin.ID)

	return admin, token, nil
}

// AdminByToken resolves a bearer token to an active administrator.
func (s *Service) AdminByToken(ctx context.Context, token string) (entity.Admin, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}

		return []byte(s.cfg.Auth.JWTSecret), nil
	})
	if err != nil || !parsed.Valid {
		return entity.Admin{}, entity.ErrUnauthenticated
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return entity.Admin{}, entity.ErrUnauthenticated
	}

	id, err := uuid.FromString(claims.Subject)
	if err != nil {
		return entity.Admin{}, entity.ErrUnauthenticated
	}

	admin, err := s.repo.Admin(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return entity.Admin{}, entity.ErrUnauthenticated
		}

		return entity.Admin{}, fmt.Errorf("get admin %q: %w", id, err)
	}

	if !admin.IsActive {
		return entity.Admin{}, entity.ErrUnauthenticated
	}

	return admin, nil
}

// Profile returns the admin for the authenticated request context.
func (s *Service) Profile(ctx context.Context) (entity.Admin, error) {
	admin, err := entity.AdminFromCtx(ctx)
	if err != nil {
		return entity.Admin{}, err
	}

	admin, err = s.repo.Admin(ctx, admin.ID)
	if err != nil {
		return entity.Admin{}, fmt.Errorf("get admin %q: %w", admin.ID, err)
	}

	return admin, nil
}

func (s *Service) UpdateProfile(ctx context.Context, name, email string) (entity.Admin, error) {
	admin, err := entity.AdminFromCtx(ctx)
	if err != nil {
		return entity.Admin{}, err
	}

	err = ValidateAdminProfile(name, email)
	if err != nil {
		return entity.Admin{}, fmt.Errorf("validate admin profile: %w", err)
	}

	if email != admin.Email {
		_, err = s.repo.AdminByEmail(ctx, email)
		if err == nil {
			return entity.Admin{}, fmt.Errorf("admin email %q: %w", email, entity.ErrEmailTaken)
		}

		if !isNotFound(err) {
			return entity.Admin{}, fmt.Errorf("get admin by email: %w", err)
		}
	}

	now := time.Now()

	err = s.repo.UpdateAdminProfile(ctx, admin.ID, name, email, now)
	if err != nil {
		return entity.Admin{}, fmt.Errorf("update admin %q profile: %w", admin.ID, err)
	}

	admin.Name = name
	admin.Email = email
	admin.UpdatedAt = now

	return admin, nil
}

func (s *Service) issueToken(admin entity.Admin) (string, error) {
	now := time.Now()

	claims := jwt.RegisteredClaims{
		Subject:   admin.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.Auth.TokenTTL)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Auth.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return token, nil
}
