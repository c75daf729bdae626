package store

import (
	"context"

	"gorm.io/gorm"

	"farmacore/internal/models"
)

type ModuleStore struct {
	db *gorm.DB
}

func NewModuleStore(db *gorm.DB) *ModuleStore {
	return &ModuleStore{db: db}
}

func (s *ModuleStore) Create(ctx context.Context, m *models.Module) error {
	return s.db.WithContext(ctx).Create(m).Error
}

func (s *ModuleStore) ByID(ctx context.Context, id string) (*models.Module, error) {
	var m models.Module
	if err := s.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *ModuleStore) ByName(ctx context.Context, name string) (*models.Module, error) {
	var m models.Module
	if err := s.db.WithContext(ctx).First(&m, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *ModuleStore) List(ctx context.Context) ([]models.Module, error) {
	var mods []models.Module
	err := s.db.WithContext(ctx).Order("name asc").Find(&mods).Error
	return mods, err
}

func (s *ModuleStore) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Module{}).Count(&n).Error
	return n, err
}

func (s *ModuleStore) Save(ctx context.Context, m *models.Module) error {
	return s.db.WithContext(ctx).Save(m).Error
}

func (s *ModuleStore) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&models.Module{}, "id = ?", id).Error
}
