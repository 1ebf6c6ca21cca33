package model

import "time"

// JobStatus is the lifecycle state of an asynchronous weather fetch.
type JobStatus string

const (
	JobStatusPending  JobStatus = "pending"
	JobStatusRunning  JobStatus = "running"
	JobStatusComplete JobStatus = "complete"
	JobStatusFailed   JobStatus = "failed"
)

// IsTerminal reports whether the status will never change again.
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusComplete || s == JobStatusFailed
}

// WeatherJob tracks a deferred weather fetch. Once a job reaches a terminal
// state its status, result and error are immutable and remain pollable until
// the retention TTL expires.
type WeatherJob struct {
	ID        string           `json:"jobId"`
	Status    JobStatus        `json:"status"`
	Latitude  float64          `json:"latitude"`
	Longitude float64          `json:"longitude"`
	Result    *WeatherSnapshot `json:"result,omitempty"`
	Error     string           `json:"error,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// WeatherJobMessage is the queue payload linking an SQS message to its job
// record and the coordinates to fetch.
type WeatherJobMessage struct {
	JobID     string  `json:"jobId"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// SubmittedJobDTO is the accepted-response body for an async submission.
type SubmittedJobDTO struct {
	JobID string `json:"jobId"`
}
