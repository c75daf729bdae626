package store

import (
	"context"

	"gorm.io/gorm"

	"farmacore/internal/models"
)

type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// WithTx returns a store bound to the given transaction.
func (s *UserStore) WithTx(tx *gorm.DB) *UserStore {
	return &UserStore{db: tx}
}

func (s *UserStore) Create(ctx context.Context, u *models.User) error {
	return s.db.WithContext(ctx).Create(u).Error
}

func (s *UserStore) ByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).Preload("Roles").First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *UserStore) ByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).Preload("Roles").First(&u, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// ByIDWithGrants loads a user with roles expanded down to each role's
// module grants. This is the authorizer's read path.
func (s *UserStore) ByIDWithGrants(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).
		Preload("Roles.Modules.Module").
		First(&u, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *UserStore) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).Preload("Roles").Order("created_at desc").Find(&users).Error
	return users, err
}

func (s *UserStore) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.User{}).Count(&n).Error
	return n, err
}

func (s *UserStore) Save(ctx context.Context, u *models.User) error {
	return s.db.WithContext(ctx).Save(u).Error
}

// ReplaceRoles swaps the user's role assignments for the given set.
func (s *UserStore) ReplaceRoles(ctx context.Context, u *models.User, roles []models.Role) error {
	return s.db.WithContext(ctx).Model(u).Association("Roles").Replace(roles)
}

func (s *UserStore) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id).Error
}
