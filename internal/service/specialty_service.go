package service

import (
	"context"
	"time"

	"clinic-backend/internal/model"
	"clinic-backend/internal/repository"

	"github.com/google/uuid"
)

// --- DTOs ---

type CreateSpecialtyRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=500"`
	Enabled     *bool  `json:"enabled"`
}

type UpdateSpecialtyRequest struct {
	Name        string  `json:"name" binding:"omitempty,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	Enabled     *bool   `json:"enabled"`
}

type SpecialtyResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Enabled     bool   `json:"enabled"`
	DoctorCount int64  `json:"doctor_count"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type SpecialtyService interface {
	CreateSpecialty(ctx context.Context, req CreateSpecialtyRequest) (*SpecialtyResponse, error)
	GetSpecialty(ctx context.Context, id string) (*SpecialtyResponse, error)
	SearchSpecialties(ctx context.Context, name string, enabled *bool) ([]SpecialtyResponse, error)
	UpdateSpecialty(ctx context.Context, id string, req UpdateSpecialtyRequest) (*SpecialtyResponse, error)
	DeleteSpecialty(ctx context.Context, id string) error
}

type specialtyService struct {
	specialties repository.SpecialtyRepository
}

func NewSpecialtyService(specialties repository.SpecialtyRepository) SpecialtyService {
	return &specialtyService{specialties: specialties}
}

func (s *specialtyService) toResponse(ctx context.Context, specialty *model.Specialty) (*SpecialtyResponse, error) {
	doctorCount, err := s.specialties.CountDoctors(ctx, specialty.ID)
	if err != nil {
		return nil, err
	}
	return &SpecialtyResponse{
		ID:          specialty.ID.String(),
		Name:        specialty.Name,
		Description: specialty.Description,
		Enabled:     specialty.Enabled,
		DoctorCount: doctorCount,
		CreatedAt:   specialty.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   specialty.UpdatedAt.Format(time.RFC3339),
	}, nil
}

func (s *specialtyService) CreateSpecialty(ctx context.Context, req CreateSpecialtyRequest) (*SpecialtyResponse, error) {
	if exists, err := s.specialties.ExistsByName(ctx, req.Name); err != nil {
		return nil, err
	} else if exists {
		return nil, &DuplicateError{Resource: "Specialty", Field: "name", Value: req.Name}
	}

	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	specialty := &model.Specialty{
		Name:        req.Name,
		Description: req.Description,
		Enabled:     enabled,
	}
	if err := s.specialties.Create(ctx, specialty); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, specialty)
}

func (s *specialtyService) GetSpecialty(ctx context.Context, id string) (*SpecialtyResponse, error) {
	specialty, err := s.findSpecialty(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, specialty)
}

func (s *specialtyService) SearchSpecialties(ctx context.Context, name string, enabled *bool) ([]SpecialtyResponse, error) {
	specialties, err := s.specialties.Search(ctx, name, enabled)
	if err != nil {
		return nil, err
	}
	responses := make([]SpecialtyResponse, 0, len(specialties))
	for i := range specialties {
		resp, err := s.toResponse(ctx, &specialties[i])
		if err != nil {
			return nil, err
		}
		responses = append(responses, *resp)
	}
	return responses, nil
}

func (s *specialtyService) UpdateSpecialty(ctx context.Context, id string, req UpdateSpecialtyRequest) (*SpecialtyResponse, error) {
	specialty, err := s.findSpecialty(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" && req.Name != specialty.Name {
		if exists, err := s.specialties.ExistsByName(ctx, req.Name); err != nil {
			return nil, err
		} else if exists {
			return nil, &DuplicateError{Resource: "Specialty", Field: "name", Value: req.Name}
		}
		specialty.Name = req.Name
	}
	if req.Description != nil {
		specialty.Description = *req.Description
	}
	if req.Enabled != nil {
		specialty.Enabled = *req.Enabled
	}

	if err := s.specialties.Update(ctx, specialty); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, specialty)
}

func (s *specialtyService) DeleteSpecialty(ctx context.Context, id string) error {
	specialty, err := s.findSpecialty(ctx, id)
	if err != nil {
		return err
	}
	return s.specialties.Delete(ctx, specialty)
}

func (s *specialtyService) findSpecialty(ctx context.Context, id string) (*model.Specialty, error) {
	specialtyID, err := uuid.Parse(id)
	if err != nil {
		return nil, &NotFoundError{Resource: "Specialty", Field: "id", Value: id}
	}
	specialty, err := s.specialties.FindByID(ctx, specialtyID)
	if err != nil {
		return nil, &NotFoundError{Resource: "Specialty", Field: "id", Value: id}
	}
	return specialty, nil
}
