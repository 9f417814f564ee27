package models

import "time"

type ContactSubject string

const (
	SubjectGeneral     ContactSubject = "general"
	SubjectSales       ContactSubject = "sales"
	SubjectSupport     ContactSubject = "support"
	SubjectCareer      ContactSubject = "career"
	SubjectPartnership ContactSubject = "partnership"
)

var ContactSubjects = []ContactSubject{
	SubjectGeneral, SubjectSales, SubjectSupport, SubjectCareer, SubjectPartnership,
}

type ContactInquiry struct {
	ID      uint           `gorm:"primaryKey" json:"id"`
	Name    string         `gorm:"size:100;not null" json:"name"`
	Email   string         `gorm:"size:255;not null;index" json:"email"`
	Phone   *string        `gorm:"size:30" json:"phone"`
	Subject ContactSubject `gorm:"type:varchar(30);not null;default:general" json:"subject"`
	Message string         `gorm:"type:text;not null" json:"message"`

	IPAddress string    `gorm:"size:45;index" json:"-"`
	UserAgent string    `gorm:"type:text" json:"-"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
