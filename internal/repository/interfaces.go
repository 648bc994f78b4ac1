package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/localjobs/localjobs-api/internal/domain"
)

// JobFilter is the validated, bounded search filter applied to job listings.
// Nil price bounds mean unbounded; Search matches title or description as a
// case-insensitive substring.
type JobFilter struct {
	Search   string
	Category string
	City     string
	MinPrice *float64
	MaxPrice *float64
	Limit    int
	Offset   int
}

// UserFilter narrows admin user listings.
type UserFilter struct {
	UserType           domain.UserType
	VerificationStatus string // "pending" | "verified" | ""
	Limit              int
	Offset             int
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	List(ctx context.Context, filter UserFilter) ([]*domain.User, error)
	Count(ctx context.Context, filter UserFilter) (int64, error)
}

type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Job, error)
	Update(ctx context.Context, job *domain.Job) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, filter JobFilter) ([]*domain.Job, error)
	Count(ctx context.Context, filter JobFilter) (int64, error)
	IncrementViews(ctx context.Context, id uuid.UUID) error
}

type FavoriteRepository interface {
	Create(ctx context.Context, favorite *domain.Favorite) error
	GetByUserAndJob(ctx context.Context, userID, jobID uuid.UUID) (*domain.Favorite, error)
	DeleteByUserAndJob(ctx context.Context, userID, jobID uuid.UUID) error
	DeleteByJobID(ctx context.Context, jobID uuid.UUID) error
	GetByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Favorite, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
}

type Repositories struct {
	User     UserRepository
	Job      JobRepository
	Favorite FavoriteRepository
}
