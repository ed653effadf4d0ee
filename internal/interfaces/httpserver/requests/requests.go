package requests

import "time"

// SendMessageRequest creates a message.
type SendMessageRequest struct {
	RecipientID string          `json:"recipient_id" binding:"required"`
	Body        string          `json:"body" binding:"required"`
	JobContext  *JobContextBody `json:"job_context,omitempty"`
}

// JobContextBody tags a message with the job it was started from.
type JobContextBody struct {
	JobID       string `json:"job_id" binding:"required"`
	ContextType string `json:"context_type,omitempty"`
}

// SendBriefRequest creates a brief proposal.
type SendBriefRequest struct {
	RecipientID string     `json:"recipient_id" binding:"required"`
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description" binding:"required"`
	Budget      *string    `json:"budget,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
}

// RespondBriefRequest carries an optional note with an accept or decline.
type RespondBriefRequest struct {
	Note *string `json:"note,omitempty"`
}
