package services

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"furuth/database"
	"furuth/models"
)

// AdminAuth checks the configured admin credentials and keeps the
// logged-in flag in a session-scoped store, so it is gone once the
// process that served the session stops.
type AdminAuth struct {
	admin   models.Admin
	session database.Storage
}

func NewAdminAuth(admin models.Admin, session database.Storage) *AdminAuth {
	return &AdminAuth{admin: admin, session: session}
}

// HashPassword returns the bcrypt hash to configure as the admin password.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (a *AdminAuth) Login(ctx context.Context, username, password string) (models.Admin, error) {
	if a.admin.PasswordHash == "" || username != a.admin.Username {
		return models.Admin{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.admin.PasswordHash), []byte(password)); err != nil {
		return models.Admin{}, ErrInvalidCredentials
	}
	if err := a.session.Set(ctx, database.AdminSessionKey, "true"); err != nil {
		return models.Admin{}, fmt.Errorf("start admin session: %w", err)
	}
	slog.Info("admin logged in", "username", username)
	return a.admin, nil
}

func (a *AdminAuth) Logout(ctx context.Context) error {
	if err := a.session.Remove(ctx, database.AdminSessionKey); err != nil {
		return fmt.Errorf("end admin session: %w", err)
	}
	return nil
}

// LoggedIn reports whether an admin session is active. Read errors count as
// logged out.
func (a *AdminAuth) LoggedIn(ctx context.Context) bool {
	v, ok, err := a.session.Get(ctx, database.AdminSessionKey)
	return err == nil && ok && v == "true"
}
