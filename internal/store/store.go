// Package store holds the database repositories. Each store is an
// explicitly constructed component over a *gorm.DB; nothing here is a
// package-level singleton, so tests wire stores against their own DB.
package store

import "gorm.io/gorm"

// Stores bundles every repository for wiring into the router.
type Stores struct {
	Users    *UserStore
	Roles    *RoleStore
	Modules  *ModuleStore
	Sessions *SessionStore
}

func New(db *gorm.DB) *Stores {
	return &Stores{
		Users:    NewUserStore(db),
		Roles:    NewRoleStore(db),
		Modules:  NewModuleStore(db),
		Sessions: NewSessionStore(db),
	}
}
