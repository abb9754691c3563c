package devserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// CreateJobRequest represents a job creation request
type CreateJobRequest struct {
	Title       string `json:"title" binding:"required"`
	Company     string `json:"company" binding:"required"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

// JobDetail represents a job posting returned in responses
type JobDetail struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

func jobDetail(job *Job) JobDetail {
	return JobDetail{
		ID:          job.ID,
		Title:       job.Title,
		Company:     job.Company,
		Location:    job.Location,
		Description: job.Description,
		Status:      job.Status,
		CreatedAt:   job.CreatedAt,
	}
}

func (s *Server) listJobs(c *gin.Context) {
	query := s.db.Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var jobs []Job
	if err := query.Find(&jobs).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list jobs")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	out := make([]JobDetail, 0, len(jobs))
	for i := range jobs {
		out = append(out, jobDetail(&jobs[i]))
	}

	c.JSON(http.StatusOK, out)
}

func (s *Server) createJob(c *gin.Context) {
	var req CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, _ := currentUser(c)

	job := Job{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		Description: req.Description,
		Status:      "open",
	}
	if user != nil {
		job.PostedByID = user.ID
	}

	if err := s.db.Create(&job).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to create job")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create job"})
		return
	}

	c.JSON(http.StatusCreated, jobDetail(&job))
}

func (s *Server) closeJob(c *gin.Context) {
	jobID := c.Param("id")

	var job Job
	if err := s.db.Where("id = ?", jobID).First(&job).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}

	if job.Status == "closed" {
		c.JSON(http.StatusOK, jobDetail(&job))
		return
	}

	job.Status = "closed"
	if err := s.db.Save(&job).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to close job")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to close job"})
		return
	}

	c.JSON(http.StatusOK, jobDetail(&job))
}

// PlanDetail represents a subscription plan returned in responses
type PlanDetail struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	PriceCents int      `json:"price_cents"`
	Currency   string   `json:"currency"`
	Interval   string   `json:"interval"`
	JobLimit   int      `json:"job_limit"`
	Features   []string `json:"features"`
}

func planDetail(plan *Plan) PlanDetail {
	var features []string
	if plan.Features != "" {
		features = strings.Split(plan.Features, "\n")
	}
	return PlanDetail{
		ID:         plan.ID,
		Name:       plan.Name,
		PriceCents: plan.PriceCents,
		Currency:   plan.Currency,
		Interval:   plan.Interval,
		JobLimit:   plan.JobLimit,
		Features:   features,
	}
}

func (s *Server) listPlans(c *gin.Context) {
	var plans []Plan
	if err := s.db.Order("price_cents ASC").Find(&plans).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list plans")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	out := make([]PlanDetail, 0, len(plans))
	for i := range plans {
		out = append(out, planDetail(&plans[i]))
	}

	c.JSON(http.StatusOK, out)
}
