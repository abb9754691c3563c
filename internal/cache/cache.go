// Package cache keeps a local sqlite copy of job and plan listings so the
// CLI can answer offline queries. The cache is advisory: the backend stays
// authoritative and every online fetch replaces the cached rows.
package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jobdeck-dev/jobdeck/internal/api"
)

// BaseModel provides common fields and auto-generated ULID for cache rows
type BaseModel struct {
	ID        string    `gorm:"primaryKey;type:varchar(26)"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// BeforeCreate generates a ULID for the ID field if it's empty
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = ulid.Make().String()
	}
	return nil
}

// CachedJob mirrors a job posting fetched from the backend
type CachedJob struct {
	BaseModel
	JobID       string    `gorm:"uniqueIndex;not null"`
	Title       string    `gorm:"not null"`
	Company     string    `gorm:"not null"`
	Location    string
	Description string    `gorm:"type:text"`
	Status      string    `gorm:"not null;index"`
	PostedAt    time.Time
	SyncedAt    time.Time `gorm:"not null"`
}

// CachedPlan mirrors a subscription plan fetched from the backend
type CachedPlan struct {
	BaseModel
	PlanID     string `gorm:"uniqueIndex;not null"`
	Name       string `gorm:"not null"`
	PriceCents int    `gorm:"not null"`
	Currency   string `gorm:"not null"`
	Interval   string `gorm:"not null"`
	JobLimit   int
	Features   string `gorm:"type:text"` // newline-joined
	SyncedAt   time.Time `gorm:"not null"`
}

// Cache wraps the local sqlite database
type Cache struct {
	db *gorm.DB
}

// DefaultPath returns the default cache database location
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", "jobdeck", "cache.db"), nil
}

// Open opens (or creates) the cache database at the given path
func Open(path string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	if err := db.AutoMigrate(&CachedJob{}, &CachedPlan{}); err != nil {
		return nil, fmt.Errorf("failed to migrate cache database: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close releases the underlying database handle.
func (c *Cache) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get cache database handle: %w", err)
	}
	return sqlDB.Close()
}

// ReplaceJobs swaps the cached job listings for the given set
func (c *Cache) ReplaceJobs(jobs []api.Job) error {
	now := time.Now().UTC()

	return c.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&CachedJob{}).Error; err != nil {
			return fmt.Errorf("failed to clear cached jobs: %w", err)
		}

		for _, job := range jobs {
			row := CachedJob{
				JobID:       job.ID,
				Title:       job.Title,
				Company:     job.Company,
				Location:    job.Location,
				Description: job.Description,
				Status:      job.Status,
				PostedAt:    job.CreatedAt,
				SyncedAt:    now,
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to cache job %s: %w", job.ID, err)
			}
		}

		return nil
	})
}

// Jobs returns cached job listings, optionally filtered by status
func (c *Cache) Jobs(status string) ([]api.Job, error) {
	query := c.db.Order("posted_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var rows []CachedJob
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to read cached jobs: %w", err)
	}

	jobs := make([]api.Job, 0, len(rows))
	for _, row := range rows {
		jobs = append(jobs, api.Job{
			ID:          row.JobID,
			Title:       row.Title,
			Company:     row.Company,
			Location:    row.Location,
			Description: row.Description,
			Status:      row.Status,
			CreatedAt:   row.PostedAt,
		})
	}

	return jobs, nil
}

// ReplacePlans swaps the cached plan listings for the given set
func (c *Cache) ReplacePlans(plans []api.Plan) error {
	now := time.Now().UTC()

	return c.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&CachedPlan{}).Error; err != nil {
			return fmt.Errorf("failed to clear cached plans: %w", err)
		}

		for _, plan := range plans {
			row := CachedPlan{
				PlanID:     plan.ID,
				Name:       plan.Name,
				PriceCents: plan.PriceCents,
				Currency:   plan.Currency,
				Interval:   plan.Interval,
				JobLimit:   plan.JobLimit,
				Features:   joinFeatures(plan.Features),
				SyncedAt:   now,
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to cache plan %s: %w", plan.ID, err)
			}
		}

		return nil
	})
}

// Plans returns cached plan listings
func (c *Cache) Plans() ([]api.Plan, error) {
	var rows []CachedPlan
	if err := c.db.Order("price_cents ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to read cached plans: %w", err)
	}

	plans := make([]api.Plan, 0, len(rows))
	for _, row := range rows {
		plans = append(plans, api.Plan{
			ID:         row.PlanID,
			Name:       row.Name,
			PriceCents: row.PriceCents,
			Currency:   row.Currency,
			Interval:   row.Interval,
			JobLimit:   row.JobLimit,
			Features:   splitFeatures(row.Features),
		})
	}

	return plans, nil
}
