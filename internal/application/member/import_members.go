package member

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	domain "github.com/fairwaygolf/member-import/internal/domain/member"
)

type ImportMembersInput struct {
	SkipExisting    bool
	UpdateExisting  bool
	ForceJuniorType bool
	DefaultStatus   string
}

type ImportMembersOutput struct {
	RunID    string   `json:"run_id"`
	Total    int64    `json:"total"`
	Imported int64    `json:"imported"`
	Updated  int64    `json:"updated"`
	Skipped  int64    `json:"skipped"`
	Errors   int64    `json:"errors"`
	Messages []string `json:"messages"`
}

type ImportMembers interface {
	Execute(ctx context.Context, in ImportMembersInput) (ImportMembersOutput, error)
}

type memberSource interface {
	CountMembers(ctx context.Context) (int64, error)
	MembersPage(ctx context.Context, limit, offset int) ([]domain.SourceMember, error)
}

type memberImportStore interface {
	FindIDByUserID(ctx context.Context, userID int64) (int64, error)
	Insert(ctx context.Context, m domain.NewMember) (int64, error)
	UpdateFields(ctx context.Context, memberID int64, fields domain.FieldUpdate) error
}

type auditLogger interface {
	Append(ctx context.Context, entry domain.AuditEntry) error
}

type importRunRecorder interface {
	Start(ctx context.Context) (string, error)
	Complete(ctx context.Context, runID string, stats domain.BatchStatistics) error
	Fail(ctx context.Context, runID string, reason string) error
}

type importMembers struct {
	source   memberSource
	store    memberImportStore
	audit    auditLogger
	runs     importRunRecorder
	table    domain.StatusTable
	pageSize int
}

func NewImportMembers(source memberSource, store memberImportStore, audit auditLogger, runs importRunRecorder, pageSize int) ImportMembers {
	if pageSize <= 0 {
		pageSize = 50
	}
	return &importMembers{
		source:   source,
		store:    store,
		audit:    audit,
		runs:     runs,
		table:    domain.DefaultStatusTable(),
		pageSize: pageSize,
	}
}

func (uc *importMembers) Execute(ctx context.Context, in ImportMembersInput) (ImportMembersOutput, error) {
	opts, err := parseOptions(in)
	if err != nil {
		return ImportMembersOutput{}, err
	}

	// The total is counted once up front. Rows added to the source
	// mid-run are invisible; rows removed mid-run shorten the final
	// page.
	total, err := uc.source.CountMembers(ctx)
	if err != nil {
		return ImportMembersOutput{}, fmt.Errorf("%w: %v", ErrCountSourceMembers, err)
	}

	runID, err := uc.runs.Start(ctx)
	if err != nil {
		return ImportMembersOutput{}, fmt.Errorf("%w: %v", ErrImportBatch, err)
	}

	stats := domain.BatchStatistics{Total: total}
	for offset := int64(0); offset < total; offset += int64(uc.pageSize) {
		page, err := uc.source.MembersPage(ctx, uc.pageSize, int(offset))
		if err != nil {
			if failErr := uc.runs.Fail(ctx, runID, truncateReason(err.Error())); failErr != nil {
				log.Printf("mark import run %s failed: %v", runID, failErr)
			}
			return ImportMembersOutput{}, fmt.Errorf("%w: %v", ErrImportBatch, err)
		}
		if len(page) == 0 {
			break
		}

		for _, src := range page {
			outcome, detail := uc.importOne(ctx, src, opts)
			switch outcome {
			case domain.OutcomeImported:
				stats.Imported++
			case domain.OutcomeUpdated:
				stats.Updated++
			case domain.OutcomeSkipped:
				stats.Skipped++
			default:
				stats.Errors++
				stats.Messages = append(stats.Messages, fmt.Sprintf("User #%d: %s", src.UserID, detail))
			}
		}
	}

	if err := uc.runs.Complete(ctx, runID, stats); err != nil {
		log.Printf("complete import run %s: %v", runID, err)
	}

	return ImportMembersOutput{
		RunID:    runID,
		Total:    stats.Total,
		Imported: stats.Imported,
		Updated:  stats.Updated,
		Skipped:  stats.Skipped,
		Errors:   stats.Errors,
		Messages: stats.Messages,
	}, nil
}

// importOne decides skip, update, insert, or error for one source
// record. One failed record never aborts the batch; there are no
// retries.
func (uc *importMembers) importOne(ctx context.Context, src domain.SourceMember, opts domain.ImportOptions) (domain.ImportOutcome, string) {
	memberID, err := uc.store.FindIDByUserID(ctx, src.UserID)
	switch {
	case err == nil:
		if opts.UpdateExisting {
			return uc.updateExisting(ctx, memberID, src)
		}
		return domain.OutcomeSkipped, ""
	case !errors.Is(err, domain.ErrMemberNotFound):
		return domain.OutcomeError, err.Error()
	}

	newID, err := uc.store.Insert(ctx, domain.NewMember{
		UserID:         src.UserID,
		MembershipType: membershipTypeFor(opts),
		Status:         uc.table.Map(src.StatusCode, opts.DefaultStatus),
		DateOfBirth:    src.DateOfBirth,
		Gender:         src.Gender,
		Phone:          src.Phone,
	})
	if errors.Is(err, domain.ErrMemberExists) {
		// The unique index on user_id is authoritative; the pre-flight
		// check is only an optimization. A row created between check
		// and insert is handled the same as one found up front.
		if opts.UpdateExisting {
			existingID, findErr := uc.store.FindIDByUserID(ctx, src.UserID)
			if findErr != nil {
				return domain.OutcomeError, findErr.Error()
			}
			return uc.updateExisting(ctx, existingID, src)
		}
		return domain.OutcomeSkipped, ""
	}
	if err != nil {
		return domain.OutcomeError, err.Error()
	}

	if auditErr := uc.audit.Append(ctx, domain.AuditEntry{
		Action:     domain.AuditActionMemberImported,
		ObjectType: domain.AuditObjectTypeMember,
		ObjectID:   newID,
		Payload: map[string]any{
			"armember_user_id": src.UserID,
			"armember_status":  src.StatusCode,
		},
	}); auditErr != nil {
		log.Printf("append audit entry for member %d: %v", newID, auditErr)
	}

	return domain.OutcomeImported, ""
}

func (uc *importMembers) updateExisting(ctx context.Context, memberID int64, src domain.SourceMember) (domain.ImportOutcome, string) {
	fields := domain.StageUpdate(src)
	if fields.Empty() {
		return domain.OutcomeSkipped, ""
	}
	if err := uc.store.UpdateFields(ctx, memberID, fields); err != nil {
		return domain.OutcomeError, err.Error()
	}
	return domain.OutcomeUpdated, ""
}

func parseOptions(in ImportMembersInput) (domain.ImportOptions, error) {
	if in.SkipExisting && in.UpdateExisting {
		return domain.ImportOptions{}, ErrConflictingImportOptions
	}

	defaultStatus := domain.StatusActive
	if in.DefaultStatus != "" {
		parsed, err := domain.ParseStatus(in.DefaultStatus)
		if err != nil {
			return domain.ImportOptions{}, fmt.Errorf("%w: %q", ErrInvalidDefaultStatus, in.DefaultStatus)
		}
		defaultStatus = parsed
	}

	return domain.ImportOptions{
		SkipExisting:    in.SkipExisting,
		UpdateExisting:  in.UpdateExisting,
		ForceJuniorType: in.ForceJuniorType,
		DefaultStatus:   defaultStatus,
	}, nil
}

// membershipTypeFor returns the membership type for an inserted member.
// ForceJuniorType is reserved for future multi-type imports; every
// deployment so far imports juniors only, so both branches resolve to
// the same constant.
func membershipTypeFor(opts domain.ImportOptions) string {
	if opts.ForceJuniorType {
		return domain.MembershipTypeJunior
	}
	return domain.MembershipTypeJunior
}

func truncateReason(reason string) string {
	const maxLen = 1000
	reason = strings.TrimSpace(reason)
	if len(reason) <= maxLen {
		return reason
	}
	return reason[:maxLen]
}
