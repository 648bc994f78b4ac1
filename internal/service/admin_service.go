package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/localjobs/localjobs-api/internal/domain"
	"github.com/localjobs/localjobs-api/internal/repository"
	"gorm.io/gorm"
)

type AdminService struct {
	userRepo repository.UserRepository
}

func NewAdminService(userRepo repository.UserRepository) *AdminService {
	return &AdminService{userRepo: userRepo}
}

type ListUsersParams struct {
	Page               int
	Limit              int
	UserType           domain.UserType
	VerificationStatus string
}

type ListUsersResult struct {
	Users []*domain.User
	Total int64
	Page  int
	Pages int
}

func (s *AdminService) ListUsers(ctx context.Context, params ListUsersParams) (*ListUsersResult, error) {
	page := params.Page
	if page < 1 {
		page = 1
	}
	limit := params.Limit
	if limit < 1 {
		limit = 10
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	filter := repository.UserFilter{
		UserType:           params.UserType,
		VerificationStatus: params.VerificationStatus,
		Limit:              limit,
		Offset:             (page - 1) * limit,
	}

	users, err := s.userRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.userRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	pages := int((total + int64(limit) - 1) / int64(limit))

	return &ListUsersResult{
		Users: users,
		Total: total,
		Page:  page,
		Pages: pages,
	}, nil
}

func (s *AdminService) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// SetVerification grants or revokes the business-verification flag.
func (s *AdminService) SetVerification(ctx context.Context, id uuid.UUID, verified bool) error {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return err
	}

	user.IsVerified = verified
	user.UpdatedAt = time.Now()
	return s.userRepo.Update(ctx, user)
}

// SetActive suspends or reactivates an account. Suspended accounts fail
// authorization on their next request even with a valid token.
func (s *AdminService) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return err
	}

	user.IsActive = active
	user.UpdatedAt = time.Now()
	return s.userRepo.Update(ctx, user)
}

// DeleteUser anonymizes instead of removing the row, so jobs, favorites and
// reviews keep a resolvable owner id.
func (s *AdminService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return err
	}

	user.Email = fmt.Sprintf("deleted_%s@deleted.local", user.ID)
	user.FullName = "Deleted User"
	user.Phone = ""
	user.Address = ""
	user.IsActive = false
	user.UpdatedAt = time.Now()

	return s.userRepo.Update(ctx, user)
}
