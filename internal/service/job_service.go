package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/localjobs/localjobs-api/internal/domain"
	"github.com/localjobs/localjobs-api/internal/repository"
	"gorm.io/gorm"
)

var ErrNotJobOwner = errors.New("not the owner of this job")

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type JobService struct {
	jobRepo      repository.JobRepository
	favoriteRepo repository.FavoriteRepository
}

func NewJobService(jobRepo repository.JobRepository, favoriteRepo repository.FavoriteRepository) *JobService {
	return &JobService{
		jobRepo:      jobRepo,
		favoriteRepo: favoriteRepo,
	}
}

// SearchParams is the bag of optional query parameters accepted by the job
// search endpoint, already parsed into typed values.
type SearchParams struct {
	Search   string
	Category string
	City     string
	MinPrice *float64
	MaxPrice *float64
	Page     int
	Limit    int
}

type SearchResult struct {
	Jobs  []*domain.Job
	Total int64
	Page  int
	Limit int
}

// Search applies pagination bounds (page floors at 1, limit defaults to 20
// and caps at 100) and returns one page plus the total match count. An empty
// result is a valid page, not an error.
func (s *JobService) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	page := params.Page
	if page < 1 {
		page = 1
	}
	limit := params.Limit
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	filter := repository.JobFilter{
		Search:   params.Search,
		Category: params.Category,
		City:     params.City,
		MinPrice: params.MinPrice,
		MaxPrice: params.MaxPrice,
		Limit:    limit,
		Offset:   (page - 1) * limit,
	}

	jobs, err := s.jobRepo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.jobRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &SearchResult{
		Jobs:  jobs,
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

// GetJob fetches a job for the detail view, bumping the view counter on
// every hit. When viewerID is set, IsSaved reflects that viewer's favorites.
func (s *JobService) GetJob(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*domain.Job, bool, error) {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, domain.ErrJobNotFound
		}
		return nil, false, err
	}

	if err := s.jobRepo.IncrementViews(ctx, id); err != nil {
		return nil, false, err
	}
	job.Views++

	isSaved := false
	if viewerID != nil {
		if _, err := s.favoriteRepo.GetByUserAndJob(ctx, *viewerID, id); err == nil {
			isSaved = true
		}
	}

	return job, isSaved, nil
}

type CreateJobInput struct {
	Title       string
	Description string
	Category    string
	Tags        []string
	Price       float64
	JobType     domain.JobType
	Duration    string
	ImageURL    string
	Location    domain.Location
}

// CreateJob publishes a posting owned by the given business account,
// snapshotting the owner's contact details onto the job.
func (s *JobService) CreateJob(ctx context.Context, owner *domain.User, input CreateJobInput) (*domain.Job, error) {
	if err := validateJobInput(input); err != nil {
		return nil, err
	}

	businessName := owner.BusinessName
	if businessName == "" {
		businessName = owner.FullName
	}

	job := &domain.Job{
		ID:            uuid.New(),
		BusinessID:    owner.ID,
		BusinessName:  businessName,
		BusinessPhone: owner.Phone,
		BusinessEmail: owner.Email,
		Title:         input.Title,
		Description:   input.Description,
		Category:      input.Category,
		Tags:          input.Tags,
		Price:         input.Price,
		Currency:      "DZD",
		Location:      input.Location,
		JobType:       input.JobType,
		Duration:      input.Duration,
		ImageURL:      input.ImageURL,
		Status:        domain.JobStatusOpen,
		IsActive:      true,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}

	return job, nil
}

// UpdateJobInput carries a partial patch; nil fields are left untouched.
type UpdateJobInput struct {
	Title       *string
	Description *string
	Category    *string
	Tags        []string
	Price       *float64
	JobType     *domain.JobType
	Duration    *string
	ImageURL    *string
	Status      *domain.JobStatus
	Location    *domain.Location
}

func (s *JobService) UpdateJob(ctx context.Context, actorID uuid.UUID, actorRole domain.UserType, jobID uuid.UUID, input UpdateJobInput) (*domain.Job, error) {
	job, err := s.getOwnedJob(ctx, actorID, actorRole, jobID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if len(strings.TrimSpace(*input.Title)) < 5 {
			return nil, domain.ErrTitleTooShort
		}
		job.Title = *input.Title
	}
	if input.Description != nil {
		if len(strings.TrimSpace(*input.Description)) < 20 {
			return nil, domain.ErrDescriptionTooShort
		}
		job.Description = *input.Description
	}
	if input.Category != nil {
		job.Category = *input.Category
	}
	if input.Tags != nil {
		job.Tags = input.Tags
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, domain.ErrNegativePrice
		}
		job.Price = *input.Price
	}
	if input.JobType != nil {
		if !domain.ValidJobType(*input.JobType) {
			return nil, domain.ErrInvalidJobType
		}
		job.JobType = *input.JobType
	}
	if input.Duration != nil {
		job.Duration = *input.Duration
	}
	if input.ImageURL != nil {
		job.ImageURL = *input.ImageURL
	}
	if input.Status != nil {
		if !domain.ValidJobStatus(*input.Status) {
			return nil, domain.ErrInvalidJobStatus
		}
		job.Status = *input.Status
	}
	if input.Location != nil {
		job.Location = *input.Location
	}
	job.UpdatedAt = time.Now()

	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}

	return job, nil
}

// DeleteJob hard-deletes a posting and its favorites.
func (s *JobService) DeleteJob(ctx context.Context, actorID uuid.UUID, actorRole domain.UserType, jobID uuid.UUID) error {
	if _, err := s.getOwnedJob(ctx, actorID, actorRole, jobID); err != nil {
		return err
	}

	if err := s.favoriteRepo.DeleteByJobID(ctx, jobID); err != nil {
		return err
	}

	return s.jobRepo.Delete(ctx, jobID)
}

func (s *JobService) getOwnedJob(ctx context.Context, actorID uuid.UUID, actorRole domain.UserType, jobID uuid.UUID) (*domain.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrJobNotFound
		}
		return nil, err
	}

	// Admins bypass the ownership gate.
	if job.BusinessID != actorID && actorRole != domain.UserTypeAdmin {
		return nil, ErrNotJobOwner
	}

	return job, nil
}

func (s *JobService) SaveJob(ctx context.Context, userID, jobID uuid.UUID) error {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrJobNotFound
		}
		return err
	}

	if _, err := s.favoriteRepo.GetByUserAndJob(ctx, userID, jobID); err == nil {
		return domain.ErrJobAlreadySaved
	}

	favorite := &domain.Favorite{
		ID:           uuid.New(),
		UserID:       userID,
		JobID:        jobID,
		JobTitle:     job.Title,
		BusinessName: job.BusinessName,
		Price:        job.Price,
		CreatedAt:    time.Now(),
	}

	return s.favoriteRepo.Create(ctx, favorite)
}

// UnsaveJob is idempotent: removing a favorite that does not exist is a
// no-op.
func (s *JobService) UnsaveJob(ctx context.Context, userID, jobID uuid.UUID) error {
	return s.favoriteRepo.DeleteByUserAndJob(ctx, userID, jobID)
}

type FavoritesResult struct {
	Favorites []*domain.Favorite
	Total     int64
	Page      int
	Limit     int
}

func (s *JobService) ListFavorites(ctx context.Context, userID uuid.UUID, page, limit int) (*FavoritesResult, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	favorites, err := s.favoriteRepo.GetByUserID(ctx, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	total, err := s.favoriteRepo.CountByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &FavoritesResult{
		Favorites: favorites,
		Total:     total,
		Page:      page,
		Limit:     limit,
	}, nil
}

func validateJobInput(input CreateJobInput) error {
	if len(strings.TrimSpace(input.Title)) < 5 {
		return domain.ErrTitleTooShort
	}
	if len(strings.TrimSpace(input.Description)) < 20 {
		return domain.ErrDescriptionTooShort
	}
	if input.Price < 0 {
		return domain.ErrNegativePrice
	}
	if !domain.ValidJobType(input.JobType) {
		return domain.ErrInvalidJobType
	}
	return nil
}
