package repository

import (
	"context"
	"encoding/json"
	"fmt"

	domain "github.com/fairwaygolf/member-import/internal/domain/member"
	"github.com/fairwaygolf/member-import/internal/infrastructure/db/models"
	"gorm.io/gorm"
)

// AuditLogRepository appends to the audit_log table. Entries are never
// updated or deleted.
type AuditLogRepository struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

func (r *AuditLogRepository) Append(ctx context.Context, entry domain.AuditEntry) error {
	payload, err := json.Marshal(entry.Payload)
	if err != nil {
		return fmt.Errorf("marshal audit payload: %w", err)
	}

	row := models.AuditLog{
		Action:     entry.Action,
		ObjectType: entry.ObjectType,
		ObjectID:   entry.ObjectID,
		Payload:    string(payload),
	}

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}
	return nil
}
