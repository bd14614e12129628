package models

import "time"

type AuditLog struct {
	ID         int64  `gorm:"primaryKey"`
	Action     string `gorm:"size:64;not null"`
	ObjectType string `gorm:"size:32;not null"`
	ObjectID   int64  `gorm:"index;not null"`
	Payload    string `gorm:"type:jsonb"`
	CreatedAt  time.Time
}

func (AuditLog) TableName() string {
	return "audit_log"
}
