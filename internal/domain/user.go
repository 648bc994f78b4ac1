package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type UserType string

const (
	UserTypeUser     UserType = "user"
	UserTypeBusiness UserType = "business"
	UserTypeAdmin    UserType = "admin"
)

// BusinessInfo holds the registration details submitted with a business
// signup. Stored as a JSON column; only meaningful when UserType is business.
type BusinessInfo struct {
	RegistrationNumber string   `json:"registrationNumber,omitempty"`
	TaxID              string   `json:"taxId,omitempty"`
	Website            string   `json:"website,omitempty"`
	FoundedYear        int      `json:"foundedYear,omitempty"`
	EmployeeCount      string   `json:"employeeCount,omitempty"`
	Services           []string `json:"services,omitempty"`
	Certifications     []string `json:"certifications,omitempty"`
}

// Location is an embedded point-plus-address. MapURL carries the legacy
// listing-style map link.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	City      string  `json:"city"`
	Address   string  `json:"address"`
	MapURL    string  `json:"mapUrl,omitempty"`
}

type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	FullName     string    `json:"fullName" gorm:"not null"`
	UserType     UserType  `json:"userType" gorm:"not null;default:'user'"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`

	BusinessName string                           `json:"businessName,omitempty"`
	BusinessInfo datatypes.JSONType[BusinessInfo] `json:"businessInfo" gorm:"type:jsonb"`
	Location     Location                         `json:"location" gorm:"embedded;embeddedPrefix:location_"`

	Rating        float64 `json:"rating" gorm:"default:0"`
	ReviewCount   int     `json:"reviewCount" gorm:"default:0"`
	CompletedJobs int     `json:"completedJobs" gorm:"default:0"`
	IsVerified    bool    `json:"isVerified" gorm:"default:false"`
	IsActive      bool    `json:"isActive" gorm:"default:true"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsAdmin reports whether the account carries the admin role.
func (u *User) IsAdmin() bool {
	return u.UserType == UserTypeAdmin
}

func ValidUserType(t UserType) bool {
	switch t {
	case UserTypeUser, UserTypeBusiness, UserTypeAdmin:
		return true
	}
	return false
}
