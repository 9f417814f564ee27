package models

import "time"

// ProductInquiry keeps Status and Priority as free strings: any value is
// accepted on update.
type ProductInquiry struct {
	ID      uint    `gorm:"primaryKey" json:"id"`
	Name    string  `gorm:"size:100;not null" json:"name"`
	Email   string  `gorm:"size:100;not null;index" json:"email"`
	Phone   string  `gorm:"size:20;not null" json:"phone"`
	Company string  `gorm:"size:100;not null" json:"company"`
	Product string  `gorm:"size:100;not null;index" json:"product"`
	Message *string `gorm:"type:text" json:"message"`

	Status   string `gorm:"size:20;not null;default:pending" json:"status"`   // pending, contacted, closed
	Priority string `gorm:"size:10;not null;default:medium" json:"priority"` // low, medium, high
	Source   string `gorm:"size:50;not null;default:website" json:"source"`  // website, mobile, api

	IPAddress string    `gorm:"size:45" json:"-"`
	UserAgent string    `gorm:"type:text" json:"-"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
