package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/localjobs/localjobs-api/internal/domain"
	"github.com/localjobs/localjobs-api/internal/repository"
	"gorm.io/gorm"
)

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *jobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) Create(ctx context.Context, job *domain.Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *jobRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	var job domain.Job
	err := r.db.WithContext(ctx).First(&job, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepository) Update(ctx context.Context, job *domain.Job) error {
	return r.db.WithContext(ctx).Save(job).Error
}

func (r *jobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Job{}, "id = ?", id).Error
}

// Search returns one page of visible jobs matching the filter, newest first
// with id as the stable tie-break.
func (r *jobRepository) Search(ctx context.Context, filter repository.JobFilter) ([]*domain.Job, error) {
	var jobs []*domain.Job
	err := r.applyFilter(r.db.WithContext(ctx), filter).
		Order("created_at DESC, id").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&jobs).Error
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

// Count runs the same filter without pagination so callers can compute
// ceil(total/limit).
func (r *jobRepository) Count(ctx context.Context, filter repository.JobFilter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&domain.Job{}), filter).
		Count(&count).Error
	return count, err
}

func (r *jobRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&domain.Job{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

func (r *jobRepository) applyFilter(q *gorm.DB, filter repository.JobFilter) *gorm.DB {
	// Only open, active postings are searchable.
	q = q.Where("is_active = ? AND status = ?", true, domain.JobStatusOpen)

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where("(title ILIKE ? OR description ILIKE ?)", pattern, pattern)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.City != "" {
		q = q.Where("location_city = ?", filter.City)
	}
	if filter.MinPrice != nil {
		q = q.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		q = q.Where("price <= ?", *filter.MaxPrice)
	}
	return q
}
