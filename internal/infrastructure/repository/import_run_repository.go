package repository

import (
	"context"
	"fmt"
	"time"

	domain "github.com/fairwaygolf/member-import/internal/domain/member"
	"github.com/fairwaygolf/member-import/internal/infrastructure/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ImportRunRepository struct {
	db *gorm.DB
}

func NewImportRunRepository(db *gorm.DB) *ImportRunRepository {
	return &ImportRunRepository{db: db}
}

func (r *ImportRunRepository) Start(ctx context.Context) (string, error) {
	run := models.ImportRun{
		ID:        uuid.NewString(),
		Status:    domain.RunStatusRunning,
		StartedAt: time.Now().UTC(),
	}

	if err := r.db.WithContext(ctx).Create(&run).Error; err != nil {
		return "", fmt.Errorf("start import run: %w", err)
	}
	return run.ID, nil
}

func (r *ImportRunRepository) Complete(ctx context.Context, runID string, stats domain.BatchStatistics) error {
	now := time.Now().UTC()
	updates := map[string]any{
		"status":         domain.RunStatusSucceeded,
		"total_count":    stats.Total,
		"imported_count": stats.Imported,
		"updated_count":  stats.Updated,
		"skipped_count":  stats.Skipped,
		"error_count":    stats.Errors,
		"finished_at":    &now,
	}

	err := r.db.WithContext(ctx).
		Model(&models.ImportRun{}).
		Where("id = ?", runID).
		Updates(updates).Error
	if err != nil {
		return fmt.Errorf("complete import run: %w", err)
	}
	return nil
}

func (r *ImportRunRepository) Fail(ctx context.Context, runID string, reason string) error {
	now := time.Now().UTC()
	updates := map[string]any{
		"status":        domain.RunStatusFailed,
		"error_message": &reason,
		"finished_at":   &now,
	}

	err := r.db.WithContext(ctx).
		Model(&models.ImportRun{}).
		Where("id = ?", runID).
		Updates(updates).Error
	if err != nil {
		return fmt.Errorf("fail import run: %w", err)
	}
	return nil
}
