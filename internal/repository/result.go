package repository

import "fmt"

// UpdateStatus categorizes the outcome of an update operation for proper
// error handling and CLI display.
type UpdateStatus int

const (
	// UpdateStatusSuccess indicates new commits were pulled
	UpdateStatusSuccess UpdateStatus = iota

	// UpdateStatusUpToDate indicates the installation already matched the remote
	UpdateStatusUpToDate

	// UpdateStatusSkipped indicates the update was intentionally skipped
	// (local changes in the install directory)
	UpdateStatusSkipped

	// UpdateStatusFailed indicates the update failed (network issues,
	// authentication failures, repository missing)
	UpdateStatusFailed
)

// String returns a human-readable representation of the update status.
func (s UpdateStatus) String() string {
	switch s {
	case UpdateStatusSuccess:
		return "Success"
	case UpdateStatusUpToDate:
		return "Up to date"
	case UpdateStatusSkipped:
		return "Skipped"
	case UpdateStatusFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// UpdateResult contains the outcome of an update operation.
type UpdateResult struct {
	// Status indicates the outcome of the update
	Status UpdateStatus

	// Error contains the failure when Status is UpdateStatusFailed
	Error error

	// SkipReason explains why the update was skipped when Status is
	// UpdateStatusSkipped
	SkipReason string
}

// Message returns a CLI-friendly message describing the update result.
func (r UpdateResult) Message() string {
	switch r.Status {
	case UpdateStatusSuccess:
		return "Skills updated successfully"
	case UpdateStatusUpToDate:
		return "Skills are already up to date"
	case UpdateStatusSkipped:
		if r.SkipReason != "" {
			return fmt.Sprintf("Update skipped: %s", r.SkipReason)
		}
		return "Update skipped"
	case UpdateStatusFailed:
		if r.Error != nil {
			return fmt.Sprintf("Update failed: %v", r.Error)
		}
		return "Update failed: unknown error"
	default:
		return "Unknown update result"
	}
}
