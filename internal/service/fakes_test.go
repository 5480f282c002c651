package service

import (
	"context"
	"sort"
	"strings"
	"sync"

	"clinic-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repository fakes backing the service tests.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := r.FindByUsername(ctx, username)
	return err == nil, nil
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	return err == nil, nil
}

func (r *fakeUserRepo) List(_ context.Context, offset, limit int) ([]model.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		all = append(all, *u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Username < all[j].Username })
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) ReplaceRoles(_ context.Context, user *model.User, roles []model.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.Roles = roles
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

type fakeRoleRepo struct {
	mu    sync.Mutex
	roles map[string]model.Role
}

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{roles: make(map[string]model.Role)}
}

func (r *fakeRoleRepo) Create(_ context.Context, role *model.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.roles[role.Name]; ok {
		return gorm.ErrDuplicatedKey
	}
	if role.ID == uuid.Nil {
		role.ID = uuid.New()
	}
	r.roles[role.Name] = *role
	return nil
}

func (r *fakeRoleRepo) FindByName(_ context.Context, name string) (*model.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if role, ok := r.roles[name]; ok {
		return &role, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRoleRepo) ListAll(_ context.Context) ([]model.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]model.Role, 0, len(r.roles))
	for _, role := range r.roles {
		all = append(all, role)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all, nil
}

type fakeSessionRepo struct {
	mu    sync.Mutex
	rows  map[uuid.UUID]*model.RefreshToken
	users *fakeUserRepo
}

func newFakeSessionRepo(users *fakeUserRepo) *fakeSessionRepo {
	return &fakeSessionRepo{rows: make(map[uuid.UUID]*model.RefreshToken), users: users}
}

func (r *fakeSessionRepo) Save(_ context.Context, row *model.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if row.ID == uuid.Nil {
		for _, existing := range r.rows {
			if existing.Token == row.Token {
				return gorm.ErrDuplicatedKey
			}
		}
		row.ID = uuid.New()
	}
	r.rows[row.ID] = row
	return nil
}

func (r *fakeSessionRepo) FindByToken(ctx context.Context, token string) (*model.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.Token == token {
			if u, ok := r.users.users[row.UserID]; ok {
				row.User = *u
			}
			return row, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeSessionRepo) Delete(_ context.Context, row *model.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, row.ID)
	return nil
}

func (r *fakeSessionRepo) DeleteByToken(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, row := range r.rows {
		if row.Token == token {
			delete(r.rows, id)
		}
	}
	return nil
}

func (r *fakeSessionRepo) DeleteByUser(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, row := range r.rows {
		if row.UserID == userID {
			delete(r.rows, id)
		}
	}
	return nil
}

func (r *fakeSessionRepo) countByUser(userID uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, row := range r.rows {
		if row.UserID == userID {
			n++
		}
	}
	return n
}

type fakeSpecialtyRepo struct {
	mu          sync.Mutex
	specialties map[uuid.UUID]*model.Specialty
	doctorCount map[uuid.UUID]int64
}

func newFakeSpecialtyRepo() *fakeSpecialtyRepo {
	return &fakeSpecialtyRepo{
		specialties: make(map[uuid.UUID]*model.Specialty),
		doctorCount: make(map[uuid.UUID]int64),
	}
}

func (r *fakeSpecialtyRepo) Create(_ context.Context, specialty *model.Specialty) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.specialties {
		if s.Name == specialty.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	if specialty.ID == uuid.Nil {
		specialty.ID = uuid.New()
	}
	r.specialties[specialty.ID] = specialty
	return nil
}

func (r *fakeSpecialtyRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Specialty, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.specialties[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeSpecialtyRepo) FindByName(_ context.Context, name string) (*model.Specialty, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.specialties {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeSpecialtyRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	_, err := r.FindByName(ctx, name)
	return err == nil, nil
}

func (r *fakeSpecialtyRepo) Search(_ context.Context, name string, enabled *bool) ([]model.Specialty, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Specialty
	for _, s := range r.specialties {
		if name != "" && !strings.Contains(strings.ToLower(s.Name), strings.ToLower(name)) {
			continue
		}
		if enabled != nil && s.Enabled != *enabled {
			continue
		}
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeSpecialtyRepo) CountDoctors(_ context.Context, specialtyID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.doctorCount[specialtyID], nil
}

func (r *fakeSpecialtyRepo) Update(_ context.Context, specialty *model.Specialty) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.specialties[specialty.ID] = specialty
	return nil
}

func (r *fakeSpecialtyRepo) Delete(_ context.Context, specialty *model.Specialty) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.specialties, specialty.ID)
	return nil
}

// fakeTxManager runs the function directly; the fakes have no transactions.
type fakeTxManager struct{}

func (fakeTxManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}
