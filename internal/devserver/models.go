package devserver

import (
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/jobdeck-dev/jobdeck/internal/api"
)

// BaseModel provides common fields and auto-generated ULID for all models
type BaseModel struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(26)"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// BeforeCreate generates a ULID for the ID field if it's empty
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = ulid.Make().String()
	}
	return nil
}

// User represents a job-board account
type User struct {
	BaseModel
	Email        string    `json:"email" gorm:"unique;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	UserType     string    `json:"user_type" gorm:"not null;default:seeker"`
	IsStaff      bool      `json:"is_staff" gorm:"not null;default:false"`
	IsSuperuser  bool      `json:"is_superuser" gorm:"not null;default:false"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// IsAdministrative applies the role rule for route guards through the one
// shared derivation in the api package.
func (u *User) IsAdministrative() bool {
	return (&api.User{
		UserType:    u.UserType,
		IsStaff:     u.IsStaff,
		IsSuperuser: u.IsSuperuser,
	}).IsAdministrative()
}

// Job represents a job posting
type Job struct {
	BaseModel
	Title       string `json:"title" gorm:"not null"`
	Company     string `json:"company" gorm:"not null"`
	Location    string `json:"location"`
	Description string `json:"description" gorm:"type:text"`
	Status      string `json:"status" gorm:"not null;default:open;index"`
	PostedByID  string `json:"posted_by_id"`

	PostedBy *User `json:"posted_by,omitempty" gorm:"foreignKey:PostedByID;references:ID;constraint:OnDelete:SET NULL"`
}

// Plan represents a subscription plan
type Plan struct {
	BaseModel
	Name       string `json:"name" gorm:"unique;not null"`
	PriceCents int    `json:"price_cents" gorm:"not null"`
	Currency   string `json:"currency" gorm:"not null;default:USD"`
	Interval   string `json:"interval" gorm:"not null;default:month"`
	JobLimit   int    `json:"job_limit" gorm:"not null;default:0"`
	Features   string `json:"-" gorm:"type:text"` // newline-joined
}

// AutoMigrate runs database migrations for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&User{}, &Job{}, &Plan{})
}

// HashPassword hashes a plaintext password with bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a plaintext password against a bcrypt hash
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
