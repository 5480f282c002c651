package repository

import (
	"context"

	"clinic-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RefreshTokenRepository is the session store: one row per active device
// session, unique on the opaque token string.
type RefreshTokenRepository interface {
	Save(ctx context.Context, token *model.RefreshToken) error
	FindByToken(ctx context.Context, token string) (*model.RefreshToken, error)
	Delete(ctx context.Context, token *model.RefreshToken) error
	DeleteByToken(ctx context.Context, token string) error
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}

type refreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

func (r *refreshTokenRepository) Save(ctx context.Context, token *model.RefreshToken) error {
	return GetDB(ctx, r.db).Save(token).Error
}

func (r *refreshTokenRepository) FindByToken(ctx context.Context, token string) (*model.RefreshToken, error) {
	var row model.RefreshToken
	if err := GetDB(ctx, r.db).Preload("User").Preload("User.Roles").First(&row, "token = ?", token).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *refreshTokenRepository) Delete(ctx context.Context, token *model.RefreshToken) error {
	return GetDB(ctx, r.db).Delete(token).Error
}

func (r *refreshTokenRepository) DeleteByToken(ctx context.Context, token string) error {
	return GetDB(ctx, r.db).Where("token = ?", token).Delete(&model.RefreshToken{}).Error
}

func (r *refreshTokenRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return GetDB(ctx, r.db).Where("user_id = ?", userID).Delete(&model.RefreshToken{}).Error
}
