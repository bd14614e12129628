package repository

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/fairwaygolf/member-import/internal/domain/member"
	"github.com/fairwaygolf/member-import/internal/infrastructure/db/models"
	"gorm.io/gorm"
)

type MemberQueryRepository struct {
	db *gorm.DB
}

func NewMemberQueryRepository(db *gorm.DB) *MemberQueryRepository {
	return &MemberQueryRepository{db: db}
}

func (r *MemberQueryRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Member, error) {
	var row models.Member

	err := r.db.WithContext(ctx).First(&row, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, fmt.Errorf("get member by user id: %w", err)
	}

	record := &domain.Member{
		ID:             row.ID,
		UserID:         row.UserID,
		MembershipType: row.MembershipType,
		Status:         domain.Status(row.Status),
		DateOfBirth:    textValue(row.DateOfBirth),
		Gender:         textValue(row.Gender),
		Phone:          textValue(row.Phone),
	}

	return record, nil
}

func textValue(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
