package models

import "time"

type Member struct {
	ID             int64   `gorm:"primaryKey"`
	UserID         int64   `gorm:"not null;uniqueIndex"`
	MembershipType string  `gorm:"size:32;not null"`
	Status         string  `gorm:"size:16;not null"`
	DateOfBirth    *string `gorm:"size:10"`
	Gender         *string `gorm:"size:16"`
	Phone          *string `gorm:"size:32"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Member) TableName() string {
	return "members"
}
