package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// The fixed permission enumeration. The string values are part of the
// external contract; clients send and inspect them directly.
const (
	PermCreate = "CREATE"
	PermRead   = "READ"
	PermUpdate = "UPDATE"
	PermDelete = "DELETE"
)

// ValidPermission reports whether perm is part of the enumeration.
func ValidPermission(perm string) bool {
	switch perm {
	case PermCreate, PermRead, PermUpdate, PermDelete:
		return true
	}
	return false
}

// PermissionList stores a role's grants for one module as a JSON array.
type PermissionList []string

func (p PermissionList) Value() (driver.Value, error) {
	if p == nil {
		p = PermissionList{}
	}
	return json.Marshal(p)
}

func (p *PermissionList) Scan(value interface{}) error {
	if value == nil {
		*p = PermissionList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return fmt.Errorf("permissions scan: unsupported type %T", value)
	}
}

func (p PermissionList) Contains(perm string) bool {
	for _, have := range p {
		if have == perm {
			return true
		}
	}
	return false
}

// ContainsAll reports whether this single grant covers every required
// permission. Grants are never unioned across roles or modules.
func (p PermissionList) ContainsAll(perms []string) bool {
	for _, want := range perms {
		if !p.Contains(want) {
			return false
		}
	}
	return true
}
