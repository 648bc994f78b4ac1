package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/localjobs/localjobs-api/internal/domain"
	"gorm.io/gorm"
)

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *favoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Create(ctx context.Context, favorite *domain.Favorite) error {
	return r.db.WithContext(ctx).Create(favorite).Error
}

func (r *favoriteRepository) GetByUserAndJob(ctx context.Context, userID, jobID uuid.UUID) (*domain.Favorite, error) {
	var favorite domain.Favorite
	err := r.db.WithContext(ctx).First(&favorite, "user_id = ? AND job_id = ?", userID, jobID).Error
	if err != nil {
		return nil, err
	}
	return &favorite, nil
}

func (r *favoriteRepository) DeleteByUserAndJob(ctx context.Context, userID, jobID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Favorite{}, "user_id = ? AND job_id = ?", userID, jobID).Error
}

func (r *favoriteRepository) DeleteByJobID(ctx context.Context, jobID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Favorite{}, "job_id = ?", jobID).Error
}

func (r *favoriteRepository) GetByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Favorite, error) {
	var favorites []*domain.Favorite
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id").
		Limit(limit).
		Offset(offset).
		Find(&favorites).Error
	if err != nil {
		return nil, err
	}
	return favorites, nil
}

func (r *favoriteRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Favorite{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
