package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Session termination reasons.
const (
	ReasonLogout  = "logout"
	ReasonExpired = "expired"
	ReasonRevoked = "revoked"
)

type User struct {
	ID                   string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name                 string    `gorm:"not null" json:"name"`
	LastName             string    `gorm:"not null" json:"last_name"`
	Email                string    `gorm:"uniqueIndex;not null" json:"email"`
	Password             string    `gorm:"not null" json:"-"`
	IdentificationNumber string    `json:"-"`
	Roles                []Role    `gorm:"many2many:user_roles" json:"roles"`
	IsActive             bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// RoleIDs returns the ids of the user's assigned roles, in assignment order.
func (u *User) RoleIDs() []string {
	ids := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		ids = append(ids, r.ID)
	}
	return ids
}

type Role struct {
	ID          string       `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string       `gorm:"uniqueIndex;not null" json:"name"`
	Description string       `json:"description"`
	Modules     []RoleModule `gorm:"foreignKey:RoleID;constraint:OnDelete:CASCADE" json:"modules"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func (r *Role) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// RoleModule is one grant inside a role: a protected module plus the
// permissions the role holds on it.
type RoleModule struct {
	RoleID      string         `gorm:"type:uuid;primaryKey" json:"role_id"`
	ModuleID    string         `gorm:"type:uuid;primaryKey" json:"module_id"`
	Module      Module         `gorm:"foreignKey:ModuleID" json:"module"`
	Permissions PermissionList `gorm:"type:jsonb;not null" json:"permissions"`
}

// Module is a named protectable capability area, e.g. "Usuarios".
type Module struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (m *Module) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// Session records one issued token's validity window and lifecycle state.
// At most one session per user is active at a time; logins close the rest.
type Session struct {
	ID           string     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       string     `gorm:"type:uuid;index;not null" json:"user_id"`
	Token        string     `gorm:"uniqueIndex;not null" json:"token"`
	Device       string     `json:"device"`
	IPAddress    string     `json:"ip_address"`
	CreatedAt    time.Time  `json:"created_at"`
	ExpiresAt    time.Time  `gorm:"not null" json:"expires_at"`
	IsActive     bool       `gorm:"not null;default:true" json:"is_active"`
	EndedAt      *time.Time `json:"ended_at,omitempty"`
	LogoutReason string     `json:"logout_reason,omitempty"`
}

func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// Live reports whether the session still admits requests at the given time.
func (s *Session) Live(now time.Time) bool {
	return s.IsActive && now.Before(s.ExpiresAt)
}
