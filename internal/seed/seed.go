// Package seed installs the baseline registry: protected modules, the
// default roles and the bootstrap admin account. Each step is skipped
// when its table already has rows.
package seed

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"farmacore/internal/auth"
	"farmacore/internal/config"
	"farmacore/internal/models"
)

var defaultModules = []models.Module{
	{Name: "Usuarios", Description: "Gestión de usuarios del sistema"},
	{Name: "Roles", Description: "Gestión de roles y permisos"},
	{Name: "Productos", Description: "Control de inventario y stock"},
	{Name: "Ventas", Description: "Registro de ventas y facturación"},
	{Name: "Reportes", Description: "Reportes de gestión y estadísticas"},
}

func Run(ctx context.Context, db *gorm.DB, cfg config.Config, lg *zap.SugaredLogger) error {
	if err := seedModules(ctx, db, lg); err != nil {
		return err
	}
	if err := seedRoles(ctx, db, lg); err != nil {
		return err
	}
	return seedAdmin(ctx, db, cfg, lg)
}

func seedModules(ctx context.Context, db *gorm.DB, lg *zap.SugaredLogger) error {
	var count int64
	if err := db.WithContext(ctx).Model(&models.Module{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for i := range defaultModules {
		if err := db.WithContext(ctx).Create(&defaultModules[i]).Error; err != nil {
			return err
		}
	}
	lg.Infow("seeded modules", "count", len(defaultModules))
	return nil
}

func seedRoles(ctx context.Context, db *gorm.DB, lg *zap.SugaredLogger) error {
	var count int64
	if err := db.WithContext(ctx).Model(&models.Role{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	byName := map[string]string{}
	var mods []models.Module
	if err := db.WithContext(ctx).Find(&mods).Error; err != nil {
		return err
	}
	for _, m := range mods {
		byName[m.Name] = m.ID
	}

	all := models.PermissionList{models.PermCreate, models.PermRead, models.PermUpdate, models.PermDelete}
	admin := models.Role{Name: "Administrador", Description: "Acceso total al sistema"}
	for _, m := range mods {
		admin.Modules = append(admin.Modules, models.RoleModule{ModuleID: m.ID, Permissions: all})
	}
	cashier := models.Role{Name: "Cajero", Description: "Gestión de ventas y caja", Modules: []models.RoleModule{
		{ModuleID: byName["Ventas"], Permissions: models.PermissionList{models.PermCreate, models.PermRead, models.PermUpdate}},
		{ModuleID: byName["Productos"], Permissions: models.PermissionList{models.PermRead}},
	}}

	for _, role := range []*models.Role{&admin, &cashier} {
		if err := db.WithContext(ctx).Create(role).Error; err != nil {
			return err
		}
	}
	lg.Infow("seeded roles", "roles", []string{admin.Name, cashier.Name})
	return nil
}

func seedAdmin(ctx context.Context, db *gorm.DB, cfg config.Config, lg *zap.SugaredLogger) error {
	var count int64
	if err := db.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var adminRole models.Role
	if err := db.WithContext(ctx).First(&adminRole, "name = ?", "Administrador").Error; err != nil {
		return err
	}
	hash, err := auth.HashPassword(cfg.SeedAdminPassword, cfg.BcryptCost)
	if err != nil {
		return err
	}
	u := models.User{
		Name:     "Admin",
		LastName: "Sistema",
		Email:    cfg.SeedAdminEmail,
		Password: hash,
		IsActive: true,
		Roles:    []models.Role{adminRole},
	}
	if err := db.WithContext(ctx).Create(&u).Error; err != nil {
		return err
	}
	lg.Infow("seeded admin user", "email", u.Email)
	return nil
}
