package postgres

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/localjobs/localjobs-api/internal/domain"
	"github.com/localjobs/localjobs-api/internal/repository"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *userRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail looks a user up by email, case-insensitively. Emails are stored
// lowercased, so lowering the argument is enough.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, "email = ?", strings.ToLower(email)).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) List(ctx context.Context, filter repository.UserFilter) ([]*domain.User, error) {
	var users []*domain.User
	err := r.applyFilter(r.db.WithContext(ctx), filter).
		Order("created_at DESC, id").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) Count(ctx context.Context, filter repository.UserFilter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&domain.User{}), filter).
		Count(&count).Error
	return count, err
}

func (r *userRepository) applyFilter(q *gorm.DB, filter repository.UserFilter) *gorm.DB {
	if filter.UserType != "" {
		q = q.Where("user_type = ?", filter.UserType)
	}
	switch filter.VerificationStatus {
	case "pending":
		q = q.Where("is_verified = ?", false)
	case "verified":
		q = q.Where("is_verified = ?", true)
	}
	return q
}
