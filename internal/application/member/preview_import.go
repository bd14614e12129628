package member

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/fairwaygolf/member-import/internal/domain/member"
)

const maxPreviewLimit = 200

type PreviewImportInput struct {
	Limit int
}

type PreviewMemberOutput struct {
	UserID      int64  `json:"user_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Age         *int   `json:"age"`
	DateOfBirth string `json:"date_of_birth"`
	Gender      string `json:"gender"`
	StatusCode  int    `json:"status_code"`
	Exists      bool   `json:"exists"`
	WillImport  bool   `json:"will_import"`
}

type PreviewImportOutput struct {
	Total   int64                 `json:"total"`
	Members []PreviewMemberOutput `json:"members"`
}

type PreviewImport interface {
	Execute(ctx context.Context, in PreviewImportInput) (PreviewImportOutput, error)
}

type memberExistenceChecker interface {
	FindIDByUserID(ctx context.Context, userID int64) (int64, error)
}

type previewImport struct {
	source       memberSource
	store        memberExistenceChecker
	defaultLimit int
}

func NewPreviewImport(source memberSource, store memberExistenceChecker, defaultLimit int) PreviewImport {
	if defaultLimit <= 0 || defaultLimit > maxPreviewLimit {
		defaultLimit = 25
	}
	return &previewImport{
		source:       source,
		store:        store,
		defaultLimit: defaultLimit,
	}
}

// Execute reads the first Limit source rows and reports what a real
// batch would do with them. No rows and no audit entries are written.
func (uc *previewImport) Execute(ctx context.Context, in PreviewImportInput) (PreviewImportOutput, error) {
	limit := in.Limit
	if limit == 0 {
		limit = uc.defaultLimit
	}
	if limit < 0 || limit > maxPreviewLimit {
		return PreviewImportOutput{}, ErrInvalidPreviewLimit
	}

	total, err := uc.source.CountMembers(ctx)
	if err != nil {
		return PreviewImportOutput{}, fmt.Errorf("%w: %v", ErrPreviewImport, err)
	}

	page, err := uc.source.MembersPage(ctx, limit, 0)
	if err != nil {
		return PreviewImportOutput{}, fmt.Errorf("%w: %v", ErrPreviewImport, err)
	}

	now := time.Now()
	rows := make([]PreviewMemberOutput, 0, len(page))
	for _, src := range page {
		exists := false
		if _, err := uc.store.FindIDByUserID(ctx, src.UserID); err == nil {
			exists = true
		} else if !errors.Is(err, domain.ErrMemberNotFound) {
			return PreviewImportOutput{}, fmt.Errorf("%w: %v", ErrPreviewImport, err)
		}

		// Age is informational only: every member is imported
		// regardless of age, so will_import depends solely on the
		// existence check.
		rows = append(rows, PreviewMemberOutput{
			UserID:      src.UserID,
			Name:        src.DisplayName,
			Email:       src.Email,
			Phone:       src.Phone,
			Age:         ageAt(src.DateOfBirth, now),
			DateOfBirth: src.DateOfBirth,
			Gender:      src.Gender,
			StatusCode:  src.StatusCode,
			Exists:      exists,
			WillImport:  !exists,
		})
	}

	return PreviewImportOutput{
		Total:   total,
		Members: rows,
	}, nil
}

// ageAt computes whole years between an ISO date of birth and now.
// Malformed or missing dates yield nil and the age is reported as
// unknown.
func ageAt(dateOfBirth string, now time.Time) *int {
	if dateOfBirth == "" {
		return nil
	}

	birth, err := time.Parse("2006-01-02", dateOfBirth)
	if err != nil {
		return nil
	}

	years := now.Year() - birth.Year()
	if birth.AddDate(years, 0, 0).After(now) {
		years--
	}
	if years < 0 {
		return nil
	}
	return &years
}
