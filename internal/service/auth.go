// Package service orchestrates the authentication flow over the stores.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"farmacore/internal/apperr"
	"farmacore/internal/auth"
	"farmacore/internal/metrics"
	"farmacore/internal/models"
	"farmacore/internal/store"
)

// AuthService owns login and logout: credential check, session rotation,
// token issuance and the session ledger bookkeeping around them.
type AuthService struct {
	db       *gorm.DB
	users    *store.UserStore
	sessions *store.SessionStore
	codec    *auth.Codec
	lg       *zap.SugaredLogger
}

func NewAuthService(db *gorm.DB, users *store.UserStore, sessions *store.SessionStore, codec *auth.Codec, lg *zap.SugaredLogger) *AuthService {
	return &AuthService{db: db, users: users, sessions: sessions, codec: codec, lg: lg}
}

type LoginResult struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// Login verifies credentials, closes the user's previous sessions and
// records the new one. After it returns, at most one session row is
// active for the user.
func (s *AuthService) Login(ctx context.Context, email, password, device, ip string) (*LoginResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.users.ByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.Logins.WithLabelValues("unknown_email").Inc()
			return nil, apperr.NotFound("email is not registered")
		}
		return nil, err
	}

	if err := auth.CheckPassword(user.Password, password); err != nil {
		metrics.Logins.WithLabelValues("bad_password").Inc()
		return nil, apperr.Unauthorized("incorrect password")
	}

	token, err := s.codec.Issue(user.ID, user.Email, user.RoleIDs())
	if err != nil {
		return nil, err
	}

	sess := &models.Session{
		UserID:    user.ID,
		Token:     token,
		Device:    device,
		IPAddress: ip,
		ExpiresAt: time.Now().Add(s.codec.TTL()),
		IsActive:  true,
	}

	// Close previous sessions and record the new one atomically so two
	// racing logins cannot leave two active rows.
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ledger := s.sessions.WithTx(tx)
		if err := ledger.DeactivateAllForUser(ctx, user.ID, models.ReasonLogout); err != nil {
			return err
		}
		return ledger.Create(ctx, sess)
	})
	if err != nil {
		return nil, err
	}

	metrics.Logins.WithLabelValues("ok").Inc()
	s.lg.Infow("login", "user", user.ID, "ip", ip)
	return &LoginResult{User: user, Token: token}, nil
}

// Logout ends the active session holding this token. Calling it again
// with the same token changes nothing and does not error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return apperr.BadRequest("token not provided")
	}
	return s.sessions.Deactivate(ctx, token, models.ReasonLogout)
}

func (s *AuthService) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.users.ByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) UserByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}
	return user, nil
}
