package store

import (
	"context"
	"time"

	"gorm.io/gorm"

	"farmacore/internal/models"
)

// SessionStore is the session ledger. All cross-request coordination for
// the single-active-session invariant goes through these rows.
type SessionStore struct {
	db *gorm.DB
}

func NewSessionStore(db *gorm.DB) *SessionStore {
	return &SessionStore{db: db}
}

// WithTx returns a store bound to the given transaction.
func (s *SessionStore) WithTx(tx *gorm.DB) *SessionStore {
	return &SessionStore{db: tx}
}

func (s *SessionStore) Create(ctx context.Context, sess *models.Session) error {
	return s.db.WithContext(ctx).Create(sess).Error
}

func (s *SessionStore) ByToken(ctx context.Context, token string) (*models.Session, error) {
	var sess models.Session
	if err := s.db.WithContext(ctx).First(&sess, "token = ?", token).Error; err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *SessionStore) ActiveByUser(ctx context.Context, userID string) ([]models.Session, error) {
	var sessions []models.Session
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Find(&sessions).Error
	return sessions, err
}

// Deactivate ends the active session holding this token. Matching zero
// rows is not an error, so repeated logouts are no-ops.
func (s *SessionStore) Deactivate(ctx context.Context, token, reason string) error {
	now := time.Now()
	return s.db.WithContext(ctx).Model(&models.Session{}).
		Where("token = ? AND is_active = ?", token, true).
		Updates(map[string]any{"is_active": false, "ended_at": now, "logout_reason": reason}).Error
}

// DeactivateAllForUser ends every active session the user owns.
func (s *SessionStore) DeactivateAllForUser(ctx context.Context, userID, reason string) error {
	now := time.Now()
	return s.db.WithContext(ctx).Model(&models.Session{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Updates(map[string]any{"is_active": false, "ended_at": now, "logout_reason": reason}).Error
}

// ExpireOverdue marks still-active sessions past their expiry as expired
// and returns how many it touched.
func (s *SessionStore) ExpireOverdue(ctx context.Context) (int64, error) {
	now := time.Now()
	res := s.db.WithContext(ctx).Model(&models.Session{}).
		Where("is_active = ? AND expires_at < ?", true, now).
		Updates(map[string]any{"is_active": false, "ended_at": now, "logout_reason": models.ReasonExpired})
	return res.RowsAffected, res.Error
}

// DeleteExpired purges every session past its expiry.
func (s *SessionStore) DeleteExpired(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&models.Session{})
	return res.RowsAffected, res.Error
}
