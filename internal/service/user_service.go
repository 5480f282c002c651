package service

import (
	"context"
	"log"
	"strings"
	"time"

	"clinic-backend/internal/model"
	"clinic-backend/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// --- DTOs ---

type CreateUserRequest struct {
	Username string   `json:"username" binding:"required,min=3,max=100"`
	Email    string   `json:"email" binding:"required,email"`
	Password string   `json:"password" binding:"required,min=6"`
	FullName string   `json:"full_name" binding:"max=100"`
	Phone    string   `json:"phone" binding:"max=20"`
	Enabled  *bool    `json:"enabled"`
	Roles    []string `json:"roles"`
}

type UpdateUserRequest struct {
	Username string   `json:"username"`
	Email    string   `json:"email" binding:"omitempty,email"`
	Password string   `json:"password" binding:"omitempty,min=6"`
	FullName *string  `json:"full_name"`
	Phone    *string  `json:"phone"`
	Enabled  *bool    `json:"enabled"`
	Roles    []string `json:"roles"` // nil = unchanged, empty = clear
}

type UpdateProfileRequest struct {
	FullName *string `json:"full_name" binding:"omitempty,max=100"`
	Email    string  `json:"email" binding:"omitempty,email"`
	Phone    *string `json:"phone" binding:"omitempty,max=20"`
	Password string  `json:"password" binding:"omitempty,min=6"`
}

type UpdateUserRolesRequest struct {
	Roles []string `json:"roles" binding:"required"`
}

type UserResponse struct {
	ID        string   `json:"id"`
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	FullName  string   `json:"full_name"`
	Phone     string   `json:"phone"`
	Enabled   bool     `json:"enabled"`
	Roles     []string `json:"roles"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
}

// UserService covers administrative user CRUD, role assignment, and the
// self-service profile. Password changes (either path) revoke every active
// session of the affected user.
type UserService interface {
	CreateUser(ctx context.Context, req CreateUserRequest) (*UserResponse, error)
	GetUser(ctx context.Context, id string) (*UserResponse, error)
	ListUsers(ctx context.Context, page, limit int) ([]UserResponse, int64, error)
	UpdateUser(ctx context.Context, id string, req UpdateUserRequest) (*UserResponse, error)
	DeleteUser(ctx context.Context, id string) error
	UpdateUserRoles(ctx context.Context, id string, roleNames []string) (*UserResponse, error)
	GetProfile(ctx context.Context, userID string) (*UserResponse, error)
	UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*UserResponse, error)
	EnsureDefaultAdmin(ctx context.Context) error
}

type userService struct {
	users    repository.UserRepository
	roles    repository.RoleRepository
	sessions SessionRevoker
	tx       repository.TransactionManager
}

func NewUserService(users repository.UserRepository, roles repository.RoleRepository, sessions SessionRevoker, tx repository.TransactionManager) UserService {
	return &userService{users: users, roles: roles, sessions: sessions, tx: tx}
}

func toUserResponse(user *model.User) *UserResponse {
	roles := user.RoleNames()
	if roles == nil {
		roles = []string{}
	}
	return &UserResponse{
		ID:        user.ID.String(),
		Username:  user.Username,
		Email:     user.Email,
		FullName:  user.FullName,
		Phone:     user.Phone,
		Enabled:   user.Enabled,
		Roles:     roles,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
		UpdatedAt: user.UpdatedAt.Format(time.RFC3339),
	}
}

// resolveRoles maps role names (case-insensitive) onto their persisted rows.
// A name outside the closed enumeration is a not-found failure.
func (s *userService) resolveRoles(ctx context.Context, names []string) ([]model.Role, error) {
	roles := make([]model.Role, 0, len(names))
	for _, name := range names {
		name = strings.ToUpper(strings.TrimSpace(name))
		if !model.IsValidRoleName(name) {
			return nil, &NotFoundError{Resource: "Role", Field: "name", Value: name}
		}
		role, err := s.roles.FindByName(ctx, name)
		if err != nil {
			return nil, &NotFoundError{Resource: "Role", Field: "name", Value: name}
		}
		roles = append(roles, *role)
	}
	return roles, nil
}

func (s *userService) CreateUser(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	if exists, err := s.users.ExistsByUsername(ctx, req.Username); err != nil {
		return nil, err
	} else if exists {
		return nil, &DuplicateError{Resource: "User", Field: "username", Value: req.Username}
	}
	if exists, err := s.users.ExistsByEmail(ctx, req.Email); err != nil {
		return nil, err
	} else if exists {
		return nil, &DuplicateError{Resource: "User", Field: "email", Value: req.Email}
	}

	roles, err := s.resolveRoles(ctx, req.Roles)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	user := &model.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hash),
		FullName: req.FullName,
		Phone:    req.Phone,
		Enabled:  enabled,
		Roles:    roles,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func (s *userService) GetUser(ctx context.Context, id string) (*UserResponse, error) {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func (s *userService) ListUsers(ctx context.Context, page, limit int) ([]UserResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	users, total, err := s.users.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *toUserResponse(&users[i]))
	}
	return responses, total, nil
}

func (s *userService) UpdateUser(ctx context.Context, id string, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Username != "" && req.Username != user.Username {
		if exists, err := s.users.ExistsByUsername(ctx, req.Username); err != nil {
			return nil, err
		} else if exists {
			return nil, &DuplicateError{Resource: "User", Field: "username", Value: req.Username}
		}
		user.Username = req.Username
	}
	if req.Email != "" && req.Email != user.Email {
		if exists, err := s.users.ExistsByEmail(ctx, req.Email); err != nil {
			return nil, err
		} else if exists {
			return nil, &DuplicateError{Resource: "User", Field: "email", Value: req.Email}
		}
		user.Email = req.Email
	}
	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Enabled != nil {
		user.Enabled = *req.Enabled
	}

	passwordChanged := false
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hash)
		passwordChanged = true
	}

	var roles []model.Role
	if req.Roles != nil {
		roles, err = s.resolveRoles(ctx, req.Roles)
		if err != nil {
			return nil, err
		}
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.users.Update(txCtx, user); err != nil {
			return err
		}
		if req.Roles != nil {
			if err := s.users.ReplaceRoles(txCtx, user, roles); err != nil {
				return err
			}
		}
		if passwordChanged {
			// Credential change invalidates every session network-wide.
			return s.sessions.RevokeAll(txCtx, user.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if req.Roles != nil {
		user.Roles = roles
	}
	return toUserResponse(user), nil
}

func (s *userService) DeleteUser(ctx context.Context, id string) error {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return err
	}
	return s.users.Delete(ctx, user.ID)
}

func (s *userService) UpdateUserRoles(ctx context.Context, id string, roleNames []string) (*UserResponse, error) {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}
	roles, err := s.resolveRoles(ctx, roleNames)
	if err != nil {
		return nil, err
	}
	if err := s.users.ReplaceRoles(ctx, user, roles); err != nil {
		return nil, err
	}
	user.Roles = roles
	return toUserResponse(user), nil
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*UserResponse, error) {
	return s.GetUser(ctx, userID)
}

// UpdateProfile is the self-service subset of UpdateUser: no role or
// enabled changes, same duplicate checks and the same password-change
// revocation side effect.
func (s *userService) UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*UserResponse, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Email != "" && req.Email != user.Email {
		if exists, err := s.users.ExistsByEmail(ctx, req.Email); err != nil {
			return nil, err
		} else if exists {
			return nil, &DuplicateError{Resource: "User", Field: "email", Value: req.Email}
		}
		user.Email = req.Email
	}
	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}

	passwordChanged := false
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hash)
		passwordChanged = true
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.users.Update(txCtx, user); err != nil {
			return err
		}
		if passwordChanged {
			return s.sessions.RevokeAll(txCtx, user.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// EnsureDefaultAdmin seeds the bootstrap SUPERADMIN account once. Callers
// log failures and continue; a missing admin account is recoverable by
// restarting after fixing the cause.
func (s *userService) EnsureDefaultAdmin(ctx context.Context) error {
	exists, err := s.users.ExistsByUsername(ctx, "admin")
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	superadmin, err := s.roles.FindByName(ctx, model.RoleSuperAdmin)
	if err != nil {
		return &NotFoundError{Resource: "Role", Field: "name", Value: model.RoleSuperAdmin}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &model.User{
		Username: "admin",
		Email:    "admin@indica.clinic",
		Password: string(hash),
		FullName: "Super Administrator",
		Enabled:  true,
		Roles:    []model.Role{*superadmin},
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return err
	}
	log.Println("Created default admin account (username: admin); change its password immediately")
	return nil
}

func (s *userService) findUser(ctx context.Context, id string) (*model.User, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, &NotFoundError{Resource: "User", Field: "id", Value: id}
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, &NotFoundError{Resource: "User", Field: "id", Value: id}
	}
	return user, nil
}
