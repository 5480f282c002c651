package service

import (
	"context"
	"testing"

	"clinic-backend/internal/model"
)

func TestSeedDefaultRolesIsIdempotent(t *testing.T) {
	roles := newFakeRoleRepo()
	svc := NewRoleService(roles)
	ctx := context.Background()

	if err := svc.SeedDefaultRoles(ctx); err != nil {
		t.Fatalf("SeedDefaultRoles: %v", err)
	}
	if err := svc.SeedDefaultRoles(ctx); err != nil {
		t.Fatalf("second SeedDefaultRoles: %v", err)
	}

	list, err := svc.ListRoles(ctx)
	if err != nil {
		t.Fatalf("ListRoles: %v", err)
	}
	if len(list) != len(model.AllRoleNames()) {
		t.Fatalf("roles = %d, want %d", len(list), len(model.AllRoleNames()))
	}
	seen := make(map[string]bool)
	for _, r := range list {
		if seen[r.Name] {
			t.Fatalf("duplicate role row for %s", r.Name)
		}
		seen[r.Name] = true
		if !model.IsValidRoleName(r.Name) {
			t.Fatalf("role %s outside the closed enumeration", r.Name)
		}
	}
}
