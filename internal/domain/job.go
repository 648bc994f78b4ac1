package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type JobType string

const (
	JobTypeOneTime   JobType = "one-time"
	JobTypeRecurring JobType = "recurring"
	JobTypeHourly    JobType = "hourly"
)

type JobStatus string

const (
	JobStatusOpen      JobStatus = "open"
	JobStatusClosed    JobStatus = "closed"
	JobStatusCompleted JobStatus = "completed"
)

// Job is the canonical posting a business publishes. Business contact
// fields are a snapshot taken at creation, not live-synced with the owner
// account. ImageURL and the location map link absorb the legacy listing
// shape, so there is a single posting entity with optional fields.
type Job struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	BusinessID    uuid.UUID `json:"businessId" gorm:"type:uuid;not null;index"`
	BusinessName  string    `json:"businessName" gorm:"not null"`
	BusinessPhone string    `json:"businessPhone"`
	BusinessEmail string    `json:"businessEmail"`

	Title       string                        `json:"title" gorm:"not null"`
	Description string                        `json:"description" gorm:"not null"`
	Category    string                        `json:"category" gorm:"index"`
	Tags        datatypes.JSONSlice[string]   `json:"tags" gorm:"type:jsonb"`
	Price       float64                       `json:"price" gorm:"not null"`
	Currency    string                        `json:"currency" gorm:"default:'DZD'"`
	Location    Location                      `json:"location" gorm:"embedded;embeddedPrefix:location_"`
	JobType     JobType                       `json:"jobType" gorm:"not null"`
	Duration    string                        `json:"duration"`
	ImageURL    string                        `json:"imageUrl,omitempty"`

	Status     JobStatus  `json:"status" gorm:"default:'open';index"`
	Views      int        `json:"views" gorm:"default:0"`
	Applicants int        `json:"applicants" gorm:"default:0"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty"`
	IsActive   bool       `json:"isActive" gorm:"default:true"`

	CreatedAt time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func ValidJobType(t JobType) bool {
	switch t {
	case JobTypeOneTime, JobTypeRecurring, JobTypeHourly:
		return true
	}
	return false
}

func ValidJobStatus(s JobStatus) bool {
	switch s {
	case JobStatusOpen, JobStatusClosed, JobStatusCompleted:
		return true
	}
	return false
}
