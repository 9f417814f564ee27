package models

import "time"

type ProjectStatus string

const (
	ProjectNew          ProjectStatus = "new"
	ProjectReviewed     ProjectStatus = "reviewed"
	ProjectContacted    ProjectStatus = "contacted"
	ProjectProposalSent ProjectStatus = "proposal_sent"
	ProjectNegotiation  ProjectStatus = "negotiation"
	ProjectApproved     ProjectStatus = "approved"
	ProjectRejected     ProjectStatus = "rejected"
	ProjectCancelled    ProjectStatus = "cancelled"
)

var ProjectStatuses = []ProjectStatus{
	ProjectNew,
	ProjectReviewed,
	ProjectContacted,
	ProjectProposalSent,
	ProjectNegotiation,
	ProjectApproved,
	ProjectRejected,
	ProjectCancelled,
}

// AttachedFile describes one accepted project document.
type AttachedFile struct {
	OriginalName string `json:"original_name"`
	StoredName   string `json:"stored_name"`
	Path         string `json:"path"`
	Size         int64  `json:"size"`
	ContentType  string `json:"content_type"`
	Checksum     string `json:"checksum"`
}

type ProjectRequest struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ProjectID string `gorm:"size:50;uniqueIndex;not null" json:"project_id"`

	FullName string  `gorm:"size:200;not null" json:"full_name"`
	Email    string  `gorm:"size:200;not null;index" json:"email"`
	Phone    string  `gorm:"size:50;not null" json:"phone"`
	Company  *string `gorm:"size:200" json:"company"`

	ProjectType  string   `gorm:"size:200;not null" json:"project_type"`
	Description  string   `gorm:"type:text;not null" json:"description"`
	Budget       *string  `gorm:"size:100" json:"budget"`
	Timeline     *string  `gorm:"size:100" json:"timeline"`
	Technologies []string `gorm:"type:jsonb;serializer:json" json:"technologies"`

	AttachedFiles []AttachedFile `gorm:"type:jsonb;serializer:json" json:"attached_files"`

	Status ProjectStatus `gorm:"type:varchar(30);not null;default:new;index" json:"status"`
	Notes  *string       `gorm:"type:text" json:"notes"`

	IsActive  bool      `gorm:"not null;default:true;index" json:"is_active"`
	IPAddress string    `gorm:"size:50" json:"-"`
	UserAgent string    `gorm:"type:text" json:"-"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
