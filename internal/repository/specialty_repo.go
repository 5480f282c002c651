package repository

import (
	"context"
	"strings"

	"clinic-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SpecialtyRepository interface {
	Create(ctx context.Context, specialty *model.Specialty) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Specialty, error)
	FindByName(ctx context.Context, name string) (*model.Specialty, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	// Search filters by case-insensitive substring of name (empty = any) and
	// by enabled flag (nil = any).
	Search(ctx context.Context, name string, enabled *bool) ([]model.Specialty, error)
	CountDoctors(ctx context.Context, specialtyID uuid.UUID) (int64, error)
	Update(ctx context.Context, specialty *model.Specialty) error
	Delete(ctx context.Context, specialty *model.Specialty) error
}

type specialtyRepository struct {
	db *gorm.DB
}

func NewSpecialtyRepository(db *gorm.DB) SpecialtyRepository {
	return &specialtyRepository{db: db}
}

func (r *specialtyRepository) Create(ctx context.Context, specialty *model.Specialty) error {
	return GetDB(ctx, r.db).Create(specialty).Error
}

func (r *specialtyRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Specialty, error) {
	var specialty model.Specialty
	if err := GetDB(ctx, r.db).First(&specialty, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &specialty, nil
}

func (r *specialtyRepository) FindByName(ctx context.Context, name string) (*model.Specialty, error) {
	var specialty model.Specialty
	if err := GetDB(ctx, r.db).First(&specialty, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return &specialty, nil
}

func (r *specialtyRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Specialty{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

func (r *specialtyRepository) Search(ctx context.Context, name string, enabled *bool) ([]model.Specialty, error) {
	q := GetDB(ctx, r.db).Model(&model.Specialty{})
	if name != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}
	if enabled != nil {
		q = q.Where("enabled = ?", *enabled)
	}

	var specialties []model.Specialty
	if err := q.Order("name ASC").Find(&specialties).Error; err != nil {
		return nil, err
	}
	return specialties, nil
}

func (r *specialtyRepository) CountDoctors(ctx context.Context, specialtyID uuid.UUID) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Table("doctor_specialties").Where("specialty_id = ?", specialtyID).Count(&count).Error
	return count, err
}

func (r *specialtyRepository) Update(ctx context.Context, specialty *model.Specialty) error {
	return GetDB(ctx, r.db).Save(specialty).Error
}

func (r *specialtyRepository) Delete(ctx context.Context, specialty *model.Specialty) error {
	return GetDB(ctx, r.db).Delete(specialty).Error
}
