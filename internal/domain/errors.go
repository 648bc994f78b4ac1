package domain

import "errors"

// Validation errors
var (
	ErrInvalidEmail         = errors.New("invalid email address")
	ErrPasswordTooShort     = errors.New("password must be at least 8 characters")
	ErrNameTooShort         = errors.New("name must be at least 2 characters")
	ErrBusinessNameRequired = errors.New("business name is required for business accounts")
	ErrInvalidUserType      = errors.New("invalid user type")
)

// Job errors
var (
	ErrJobNotFound         = errors.New("job not found")
	ErrInvalidJobType      = errors.New("invalid job type")
	ErrInvalidJobStatus    = errors.New("invalid job status")
	ErrTitleTooShort       = errors.New("title must be at least 5 characters")
	ErrDescriptionTooShort = errors.New("description must be at least 20 characters")
	ErrNegativePrice       = errors.New("price must be positive")
)

// Favorite errors
var (
	ErrJobAlreadySaved = errors.New("job already saved")
)
