package models

import "time"

type JobType string
type ApplicationStatus string

const (
	JobFullTime   JobType = "full_time"
	JobPartTime   JobType = "part_time"
	JobContract   JobType = "contract"
	JobInternship JobType = "internship"
	JobRemote     JobType = "remote"
	JobHybrid     JobType = "hybrid"

	ApplicationPending            ApplicationStatus = "pending"
	ApplicationReviewed           ApplicationStatus = "reviewed"
	ApplicationShortlisted        ApplicationStatus = "shortlisted"
	ApplicationInterviewScheduled ApplicationStatus = "interview_scheduled"
	ApplicationRejected           ApplicationStatus = "rejected"
	ApplicationHired              ApplicationStatus = "hired"
	ApplicationWithdrawn          ApplicationStatus = "withdrawn"
)

var JobTypes = []JobType{
	JobFullTime, JobPartTime, JobContract, JobInternship, JobRemote, JobHybrid,
}

var ApplicationStatuses = []ApplicationStatus{
	ApplicationPending,
	ApplicationReviewed,
	ApplicationShortlisted,
	ApplicationInterviewScheduled,
	ApplicationRejected,
	ApplicationHired,
	ApplicationWithdrawn,
}

// JobApplication is a careers-page submission. ResumePath is always set;
// IsActive is a soft-delete flag honoured by every read.
type JobApplication struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	ApplicationID string `gorm:"size:50;uniqueIndex;not null" json:"application_id"`

	FullName          string  `gorm:"size:200;not null" json:"full_name"`
	Email             string  `gorm:"size:200;not null;index" json:"email"`
	Phone             string  `gorm:"size:50;not null" json:"phone"`
	LinkedinURL       *string `gorm:"size:500" json:"linkedin_url"`
	GithubURL         *string `gorm:"size:500" json:"github_url"`
	PortfolioURL      *string `gorm:"size:500" json:"portfolio_url"`
	YearsOfExperience *string `gorm:"size:50" json:"years_of_experience"`
	CoverLetter       *string `gorm:"type:text" json:"cover_letter"`

	JobTitle   string  `gorm:"size:200;not null" json:"job_title"`
	JobType    JobType `gorm:"type:varchar(30);not null;default:full_time" json:"job_type"`
	Department *string `gorm:"size:100;index" json:"department"`

	ResumePath     string `gorm:"size:500;not null" json:"resume_path"`
	ResumeChecksum string `gorm:"size:64" json:"resume_checksum"`

	Status   ApplicationStatus `gorm:"type:varchar(30);not null;default:pending;index" json:"status"`
	IsActive bool              `gorm:"not null;default:true;index" json:"is_active"`

	IPAddress string    `gorm:"size:50" json:"-"`
	UserAgent string    `gorm:"type:text" json:"-"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
