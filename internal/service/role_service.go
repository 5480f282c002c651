package service

import (
	"context"
	"fmt"

	"clinic-backend/internal/model"
	"clinic-backend/internal/repository"
)

type RoleResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RoleService exposes the closed role enumeration. Roles are seeded once
// at startup and never created through the API.
type RoleService interface {
	ListRoles(ctx context.Context) ([]RoleResponse, error)
	SeedDefaultRoles(ctx context.Context) error
}

type roleService struct {
	roles repository.RoleRepository
}

func NewRoleService(roles repository.RoleRepository) RoleService {
	return &roleService{roles: roles}
}

func (s *roleService) ListRoles(ctx context.Context) ([]RoleResponse, error) {
	roles, err := s.roles.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch roles: %w", err)
	}
	res := make([]RoleResponse, 0, len(roles))
	for _, r := range roles {
		res = append(res, RoleResponse{ID: r.ID.String(), Name: r.Name})
	}
	return res, nil
}

// SeedDefaultRoles inserts any missing row of the closed enumeration.
// Existence is checked per name so reruns and concurrent replicas are
// harmless.
func (s *roleService) SeedDefaultRoles(ctx context.Context) error {
	for _, name := range model.AllRoleNames() {
		if _, err := s.roles.FindByName(ctx, name); err == nil {
			continue
		}
		if err := s.roles.Create(ctx, &model.Role{Name: name}); err != nil {
			return fmt.Errorf("failed to seed role %s: %w", name, err)
		}
	}
	return nil
}
