package member

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/fairwaygolf/member-import/internal/domain/member"
)

type GetMemberByUserIDInput struct {
	UserID int64
}

type GetMemberByUserIDOutput struct {
	ID             int64  `json:"id"`
	UserID         int64  `json:"user_id"`
	MembershipType string `json:"membership_type"`
	Status         string `json:"status"`
	DateOfBirth    string `json:"date_of_birth,omitempty"`
	Gender         string `json:"gender,omitempty"`
	Phone          string `json:"phone,omitempty"`
}

type GetMemberByUserID interface {
	Execute(ctx context.Context, in GetMemberByUserIDInput) (GetMemberByUserIDOutput, error)
}

type memberReader interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.Member, error)
}

type getMemberByUserID struct {
	repo memberReader
}

func NewGetMemberByUserID(repo memberReader) GetMemberByUserID {
	return &getMemberByUserID{repo: repo}
}

func (uc *getMemberByUserID) Execute(ctx context.Context, in GetMemberByUserIDInput) (GetMemberByUserIDOutput, error) {
	if in.UserID <= 0 {
		return GetMemberByUserIDOutput{}, ErrInvalidMemberUserID
	}

	record, err := uc.repo.GetByUserID(ctx, in.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return GetMemberByUserIDOutput{}, ErrMemberNotFound
		}
		return GetMemberByUserIDOutput{}, fmt.Errorf("%w: %v", ErrGetMember, err)
	}

	return GetMemberByUserIDOutput{
		ID:             record.ID,
		UserID:         record.UserID,
		MembershipType: record.MembershipType,
		Status:         string(record.Status),
		DateOfBirth:    record.DateOfBirth,
		Gender:         record.Gender,
		Phone:          record.Phone,
	}, nil
}
