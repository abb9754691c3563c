package devserver

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// SeedFile is the YAML shape the dev server loads at startup.
type SeedFile struct {
	Users []SeedUser `yaml:"users"`
	Jobs  []SeedJob  `yaml:"jobs"`
	Plans []SeedPlan `yaml:"plans"`
}

// SeedUser describes a user to create on startup
type SeedUser struct {
	Email       string `yaml:"email"`
	Password    string `yaml:"password"`
	FirstName   string `yaml:"first_name"`
	LastName    string `yaml:"last_name"`
	UserType    string `yaml:"user_type"`
	IsStaff     bool   `yaml:"is_staff"`
	IsSuperuser bool   `yaml:"is_superuser"`
}

// SeedJob describes a job posting to create on startup
type SeedJob struct {
	Title       string `yaml:"title"`
	Company     string `yaml:"company"`
	Location    string `yaml:"location"`
	Description string `yaml:"description"`
	Status      string `yaml:"status"`
}

// SeedPlan describes a subscription plan to create on startup
type SeedPlan struct {
	Name       string   `yaml:"name"`
	PriceCents int      `yaml:"price_cents"`
	Currency   string   `yaml:"currency"`
	Interval   string   `yaml:"interval"`
	JobLimit   int      `yaml:"job_limit"`
	Features   []string `yaml:"features"`
}

// seedFromFile loads the seed YAML and creates any records that do not
// already exist. Seeding is idempotent so restarts do not duplicate rows.
func (s *Server) seedFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}

	var seed SeedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("failed to parse seed file: %w", err)
	}

	for _, su := range seed.Users {
		existing, err := s.findUserByEmail(su.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}

		hash, err := HashPassword(su.Password)
		if err != nil {
			return fmt.Errorf("failed to hash seed password for %s: %w", su.Email, err)
		}

		userType := su.UserType
		if userType == "" {
			userType = "seeker"
		}

		user := User{
			Email:        su.Email,
			PasswordHash: hash,
			FirstName:    su.FirstName,
			LastName:     su.LastName,
			UserType:     userType,
			IsStaff:      su.IsStaff,
			IsSuperuser:  su.IsSuperuser,
		}
		if err := s.db.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to seed user %s: %w", su.Email, err)
		}
		s.logger.Info().Str("email", su.Email).Msg("Seeded user")
	}

	for _, sj := range seed.Jobs {
		var count int64
		if err := s.db.Model(&Job{}).Where("title = ? AND company = ?", sj.Title, sj.Company).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		status := sj.Status
		if status == "" {
			status = "open"
		}

		job := Job{
			Title:       sj.Title,
			Company:     sj.Company,
			Location:    sj.Location,
			Description: sj.Description,
			Status:      status,
		}
		if err := s.db.Create(&job).Error; err != nil {
			return fmt.Errorf("failed to seed job %s: %w", sj.Title, err)
		}
	}

	for _, sp := range seed.Plans {
		var count int64
		if err := s.db.Model(&Plan{}).Where("name = ?", sp.Name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		plan := Plan{
			Name:       sp.Name,
			PriceCents: sp.PriceCents,
			Currency:   defaultStr(sp.Currency, "USD"),
			Interval:   defaultStr(sp.Interval, "month"),
			JobLimit:   sp.JobLimit,
			Features:   strings.Join(sp.Features, "\n"),
		}
		if err := s.db.Create(&plan).Error; err != nil {
			return fmt.Errorf("failed to seed plan %s: %w", sp.Name, err)
		}
	}

	return nil
}

func defaultStr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
