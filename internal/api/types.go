package api

import "time"

// User represents the account record returned by the backend.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	UserType    string `json:"user_type"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`
}

// UserTypeAdmin is the user_type value the backend assigns to admin accounts.
const UserTypeAdmin = "admin"

// IsAdministrative reports whether the user qualifies for the admin area.
// This is the single place role derivation happens; callers must not
// re-derive it from the raw fields.
func (u *User) IsAdministrative() bool {
	if u == nil {
		return false
	}
	return u.UserType == UserTypeAdmin || u.IsStaff || u.IsSuperuser
}

// FullName returns the user's display name, falling back to the email.
func (u *User) FullName() string {
	if u == nil {
		return ""
	}
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	if name == "" {
		return u.Email
	}
	return name
}

// TokenPair is the access/refresh credential pair issued by the backend.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	UserType  string `json:"user_type,omitempty"`
}

// AuthResponse is the body returned by successful login and register calls.
type AuthResponse struct {
	Tokens TokenPair `json:"tokens"`
	User   User      `json:"user"`
}

// Job statuses as reported by the backend.
const (
	JobStatusOpen   = "open"
	JobStatusClosed = "closed"
)

// Job represents a job posting
type Job struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateJobRequest represents the job creation request
type CreateJobRequest struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

// Plan represents a subscription plan offered by the job board.
type Plan struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	PriceCents int      `json:"price_cents"`
	Currency   string   `json:"currency"`
	Interval   string   `json:"interval"`
	JobLimit   int      `json:"job_limit"`
	Features   []string `json:"features"`
}
