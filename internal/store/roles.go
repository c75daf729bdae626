package store

import (
	"context"

	"gorm.io/gorm"

	"farmacore/internal/models"
)

type RoleStore struct {
	db *gorm.DB
}

func NewRoleStore(db *gorm.DB) *RoleStore {
	return &RoleStore{db: db}
}

func (s *RoleStore) Create(ctx context.Context, r *models.Role) error {
	return s.db.WithContext(ctx).Create(r).Error
}

func (s *RoleStore) ByID(ctx context.Context, id string) (*models.Role, error) {
	var r models.Role
	if err := s.db.WithContext(ctx).Preload("Modules.Module").First(&r, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *RoleStore) ByName(ctx context.Context, name string) (*models.Role, error) {
	var r models.Role
	if err := s.db.WithContext(ctx).Preload("Modules.Module").First(&r, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *RoleStore) ByIDs(ctx context.Context, ids []string) ([]models.Role, error) {
	var roles []models.Role
	err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&roles).Error
	return roles, err
}

func (s *RoleStore) List(ctx context.Context) ([]models.Role, error) {
	var roles []models.Role
	err := s.db.WithContext(ctx).Preload("Modules.Module").Order("created_at desc").Find(&roles).Error
	return roles, err
}

func (s *RoleStore) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Role{}).Count(&n).Error
	return n, err
}

func (s *RoleStore) Save(ctx context.Context, r *models.Role) error {
	return s.db.WithContext(ctx).Save(r).Error
}

// ReplaceGrants swaps the role's module grants for the given set.
func (s *RoleStore) ReplaceGrants(ctx context.Context, roleID string, grants []models.RoleModule) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.RoleModule{}, "role_id = ?", roleID).Error; err != nil {
			return err
		}
		for i := range grants {
			grants[i].RoleID = roleID
		}
		if len(grants) == 0 {
			return nil
		}
		return tx.Create(&grants).Error
	})
}

func (s *RoleStore) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.RoleModule{}, "role_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Role{}, "id = ?", id).Error
	})
}
