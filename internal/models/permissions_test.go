package models

import "testing"

func TestContainsAll(t *testing.T) {
	grant := PermissionList{PermRead}
	if !grant.ContainsAll([]string{PermRead}) {
		t.Error("READ grant should satisfy READ requirement")
	}
	if grant.ContainsAll([]string{PermRead, PermUpdate}) {
		t.Error("READ grant must not satisfy READ+UPDATE requirement")
	}
	if !grant.ContainsAll(nil) {
		t.Error("empty requirement should always be satisfied")
	}
}

func TestValidPermission(t *testing.T) {
	for _, p := range []string{PermCreate, PermRead, PermUpdate, PermDelete} {
		if !ValidPermission(p) {
			t.Errorf("%s should be valid", p)
		}
	}
	if ValidPermission("ADMIN") {
		t.Error("ADMIN is not part of the enumeration")
	}
}
