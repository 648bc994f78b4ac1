package domain

import (
	"time"

	"github.com/google/uuid"
)

// Favorite links a user to a saved job. Job title, business name and price
// are denormalized so the saved-jobs list renders without a join.
type Favorite struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID       uuid.UUID `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_job"`
	JobID        uuid.UUID `json:"jobId" gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_job"`
	JobTitle     string    `json:"jobTitle"`
	BusinessName string    `json:"businessName"`
	Price        float64   `json:"price"`
	CreatedAt    time.Time `json:"createdAt"`
}
