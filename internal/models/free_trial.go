package models

import "time"

type FreeTrialRequest struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Name         string  `gorm:"size:100;not null" json:"name"`
	Email        string  `gorm:"size:255;not null;index" json:"email"`
	Phone        string  `gorm:"size:30;not null" json:"phone"`
	Company      string  `gorm:"size:100;not null" json:"company"`
	Employees    *string `gorm:"size:20" json:"employees"`
	InterestedIn *string `gorm:"size:100" json:"interested_in"`
	Timeline     *string `gorm:"size:50" json:"timeline"`

	Status         string     `gorm:"size:20;not null;default:pending" json:"status"`
	TrialStartDate *time.Time `json:"trial_start_date"`
	TrialEndDate   *time.Time `json:"trial_end_date"`

	IPAddress string    `gorm:"size:45" json:"-"`
	UserAgent string    `gorm:"type:text" json:"-"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
