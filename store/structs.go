package store

import (
	"time"

	"github.com/lib/pq"
)

// Well-known lead statuses; the column itself is free-form.
const (
	StatusNew          = "New"
	StatusContacted    = "Contacted"
	StatusQualified    = "Qualified"
	StatusProposalSent = "Proposal Sent"
	StatusClosed       = "Closed"
)

const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

type Lead struct {
	LeadID      string         `db:"lead_id" json:"id"`
	Name        string         `db:"name" json:"name"`
	Source      string         `db:"source" json:"source"`
	SalesAgent  *string        `db:"sales_agent_id" json:"salesAgent"`
	Status      string         `db:"status" json:"status"`
	Tags        pq.StringArray `db:"tags" json:"tags"`
	TimeToClose int32          `db:"time_to_close" json:"timeToClose"`
	Priority    string         `db:"priority" json:"priority"`
	CreatedAt   time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updatedAt"`
}

// LeadPatch holds the fields of a partial update; nil fields are left alone.
type LeadPatch struct {
	Name        *string   `json:"name"`
	Source      *string   `json:"source"`
	SalesAgent  *string   `json:"salesAgent"`
	Status      *string   `json:"status"`
	Tags        *[]string `json:"tags"`
	TimeToClose *int32    `json:"timeToClose"`
	Priority    *string   `json:"priority"`
}

func (p LeadPatch) apply(l *Lead) {
	if p.Name != nil {
		l.Name = *p.Name
	}
	if p.Source != nil {
		l.Source = *p.Source
	}
	if p.SalesAgent != nil {
		agent := *p.SalesAgent
		l.SalesAgent = &agent
	}
	if p.Status != nil {
		l.Status = *p.Status
	}
	if p.Tags != nil {
		l.Tags = pq.StringArray(append([]string{}, (*p.Tags)...))
	}
	if p.TimeToClose != nil {
		l.TimeToClose = *p.TimeToClose
	}
	if p.Priority != nil {
		l.Priority = *p.Priority
	}
}

type Agent struct {
	AgentID   string    `db:"agent_id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

type Comment struct {
	CommentID   string    `db:"comment_id" json:"id"`
	LeadID      string    `db:"lead_id" json:"lead"`
	AuthorID    string    `db:"author_id" json:"author"`
	AuthorName  string    `db:"author_name" json:"authorName,omitempty"` // only filled when listing
	CommentText string    `db:"comment_text" json:"commentText"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}
