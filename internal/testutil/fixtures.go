package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/localjobs/localjobs-api/internal/domain"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	email        string
	password     string
	fullName     string
	userType     domain.UserType
	businessName string
	verified     bool
	active       bool
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		email:    fmt.Sprintf("test_%s@example.com", uuid.New().String()[:8]),
		password: "testpassword123",
		fullName: "Test User",
		userType: domain.UserTypeUser,
		active:   true,
	}
}

func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

func (b *UserBuilder) WithFullName(name string) *UserBuilder {
	b.fullName = name
	return b
}

func (b *UserBuilder) AsBusiness(businessName string) *UserBuilder {
	b.userType = domain.UserTypeBusiness
	b.businessName = businessName
	return b
}

func (b *UserBuilder) AsAdmin() *UserBuilder {
	b.userType = domain.UserTypeAdmin
	return b
}

func (b *UserBuilder) Verified() *UserBuilder {
	b.verified = true
	return b
}

func (b *UserBuilder) Suspended() *UserBuilder {
	b.active = false
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        b.email,
		PasswordHash: string(hashedPassword),
		FullName:     b.fullName,
		UserType:     b.userType,
		Phone:        "0550000000",
		Address:      "1 Test Street",
		BusinessName: b.businessName,
		IsVerified:   b.verified,
		IsActive:     b.active,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// Authenticate logs the built user in via the API and returns the token
func (b *UserBuilder) Authenticate(t *testing.T, ts *TestServer) string {
	t.Helper()
	return Login(t, ts, b.email, b.password)
}

// Login authenticates an existing user through the API and returns the token
func Login(t *testing.T, ts *TestServer, email, password string) string {
	t.Helper()

	body, _ := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})

	resp, err := http.Post(ts.APIURL("/auth/login"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to log in: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected login status code: %d", resp.StatusCode)
	}

	var result struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}

	return result.Token
}

// JobBuilder creates test jobs with a builder pattern
type JobBuilder struct {
	owner     *domain.User
	title     string
	category  string
	city      string
	price     float64
	status    domain.JobStatus
	active    bool
	createdAt time.Time
}

// NewJobBuilder creates a JobBuilder owned by the given business user
func NewJobBuilder(owner *domain.User) *JobBuilder {
	return &JobBuilder{
		owner:     owner,
		title:     "General handyman work",
		category:  "maintenance",
		city:      "Algiers",
		price:     1000,
		status:    domain.JobStatusOpen,
		active:    true,
		createdAt: time.Now(),
	}
}

func (b *JobBuilder) WithTitle(title string) *JobBuilder {
	b.title = title
	return b
}

func (b *JobBuilder) WithCategory(category string) *JobBuilder {
	b.category = category
	return b
}

func (b *JobBuilder) WithCity(city string) *JobBuilder {
	b.city = city
	return b
}

func (b *JobBuilder) WithPrice(price float64) *JobBuilder {
	b.price = price
	return b
}

func (b *JobBuilder) WithStatus(status domain.JobStatus) *JobBuilder {
	b.status = status
	return b
}

func (b *JobBuilder) Inactive() *JobBuilder {
	b.active = false
	return b
}

func (b *JobBuilder) WithCreatedAt(createdAt time.Time) *JobBuilder {
	b.createdAt = createdAt
	return b
}

// Build creates the job in the database
func (b *JobBuilder) Build(t *testing.T, db *gorm.DB) *domain.Job {
	t.Helper()

	businessName := b.owner.BusinessName
	if businessName == "" {
		businessName = b.owner.FullName
	}

	job := &domain.Job{
		ID:            uuid.New(),
		BusinessID:    b.owner.ID,
		BusinessName:  businessName,
		BusinessPhone: b.owner.Phone,
		BusinessEmail: b.owner.Email,
		Title:         b.title,
		Description:   "A description long enough to pass validation checks.",
		Category:      b.category,
		Price:         b.price,
		Currency:      "DZD",
		Location: domain.Location{
			City:    b.city,
			Address: "1 Test Street",
		},
		JobType:   domain.JobTypeOneTime,
		Status:    b.status,
		IsActive:  b.active,
		CreatedAt: b.createdAt,
		UpdatedAt: b.createdAt,
	}

	if err := db.Create(job).Error; err != nil {
		t.Fatalf("failed to create job: %v", err)
	}

	return job
}
