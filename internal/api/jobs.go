package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Jobs lists job postings. An empty status lists all jobs.
func (c *Client) Jobs(ctx context.Context, accessToken, status string) ([]Job, error) {
	path := "/api/jobs"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}

	req, err := c.newRequest(ctx, http.MethodGet, path, accessToken, nil)
	if err != nil {
		return nil, err
	}

	var jobs []Job
	if err := c.do(req, &jobs); err != nil {
		return nil, err
	}

	return jobs, nil
}

// CreateJob posts a new job listing (admin only)
func (c *Client) CreateJob(ctx context.Context, accessToken string, job CreateJobRequest) (*Job, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/jobs", accessToken, job)
	if err != nil {
		return nil, err
	}

	var created Job
	if err := c.do(req, &created); err != nil {
		return nil, err
	}

	return &created, nil
}

// CloseJob marks a job posting as closed (admin only)
func (c *Client) CloseJob(ctx context.Context, accessToken, jobID string) error {
	req, err := c.newRequest(ctx, http.MethodPatch, fmt.Sprintf("/api/jobs/%s/close", jobID), accessToken, nil)
	if err != nil {
		return err
	}

	return c.do(req, nil)
}

// Plans lists the subscription plans offered by the backend
func (c *Client) Plans(ctx context.Context) ([]Plan, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/plans", "", nil)
	if err != nil {
		return nil, err
	}

	var plans []Plan
	if err := c.do(req, &plans); err != nil {
		return nil, err
	}

	return plans, nil
}
