package models

import "time"

type ImportRun struct {
	ID            string  `gorm:"type:uuid;primaryKey"`
	Status        string  `gorm:"type:text;not null"`
	TotalCount    int64   `gorm:"not null;default:0"`
	ImportedCount int64   `gorm:"not null;default:0"`
	UpdatedCount  int64   `gorm:"not null;default:0"`
	SkippedCount  int64   `gorm:"not null;default:0"`
	ErrorCount    int64   `gorm:"not null;default:0"`
	ErrorMessage  *string `gorm:"type:text"`
	StartedAt     time.Time
	FinishedAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (ImportRun) TableName() string {
	return "import_runs"
}
