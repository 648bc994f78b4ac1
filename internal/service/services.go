package service

import (
	"github.com/localjobs/localjobs-api/internal/config"
	"github.com/localjobs/localjobs-api/internal/repository"
)

type Services struct {
	Auth  *AuthService
	Job   *JobService
	Admin *AdminService
}

func NewServices(repos *repository.Repositories, cfg *config.Config) *Services {
	return &Services{
		Auth:  NewAuthService(repos.User, cfg),
		Job:   NewJobService(repos.Job, repos.Favorite),
		Admin: NewAdminService(repos.User),
	}
}
