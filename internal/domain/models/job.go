// internal/domain/models/job.go
package models

// JobStatus is the lifecycle label shown in a job's status selector.
type JobStatus string

const (
	JobPending    JobStatus = "Pending"
	JobEnRoute    JobStatus = "En route"
	JobInProgress JobStatus = "In Progress"
	JobOnHold     JobStatus = "On hold"
	JobComplete   JobStatus = "Complete"
)

// IsComplete reports whether the status is the completion state.
func (s JobStatus) IsComplete() bool {
	return s == JobComplete
}

// Job is a unit of field or shop work.
//
// NOTE:
//   - Jobs come from seed data and are never deleted; only Status changes.
//   - Customer, Description and ETA are only populated for technician views.
type Job struct {
	ID             string    `json:"id"`
	Location       string    `json:"location"`
	AssignedWorker string    `json:"assigned_worker,omitempty"`
	Status         JobStatus `json:"status"`

	Customer    string `json:"customer,omitempty"`
	Description string `json:"description,omitempty"`
	ETA         string `json:"eta,omitempty"`
}
