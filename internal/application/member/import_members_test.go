package member_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	app "github.com/fairwaygolf/member-import/internal/application/member"
	domain "github.com/fairwaygolf/member-import/internal/domain/member"
)

type fakeSource struct {
	members   []domain.SourceMember
	countErr  error
	pageErr   error
	pageCalls int
	lastLimit int
}

func (f *fakeSource) CountMembers(ctx context.Context) (int64, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return int64(len(f.members)), nil
}

func (f *fakeSource) MembersPage(ctx context.Context, limit, offset int) ([]domain.SourceMember, error) {
	f.pageCalls++
	f.lastLimit = limit
	if f.pageErr != nil {
		return nil, f.pageErr
	}
	if offset >= len(f.members) {
		return nil, nil
	}
	end := offset + limit
	if end > len(f.members) {
		end = len(f.members)
	}
	return f.members[offset:end], nil
}

type fakeStore struct {
	existing       map[int64]int64
	nextID         int64
	inserts        []domain.NewMember
	updates        map[int64]domain.FieldUpdate
	insertErr      error
	updateErr      error
	findErr        error
	hideOnNextFind map[int64]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		existing:       map[int64]int64{},
		updates:        map[int64]domain.FieldUpdate{},
		hideOnNextFind: map[int64]bool{},
	}
}

func (f *fakeStore) FindIDByUserID(ctx context.Context, userID int64) (int64, error) {
	if f.findErr != nil {
		return 0, f.findErr
	}
	if f.hideOnNextFind[userID] {
		delete(f.hideOnNextFind, userID)
		return 0, domain.ErrMemberNotFound
	}
	if id, ok := f.existing[userID]; ok {
		return id, nil
	}
	return 0, domain.ErrMemberNotFound
}

func (f *fakeStore) Insert(ctx context.Context, m domain.NewMember) (int64, error) {
	if f.insertErr != nil {
		return 0, f.insertErr
	}
	if _, ok := f.existing[m.UserID]; ok {
		return 0, domain.ErrMemberExists
	}
	f.nextID++
	f.existing[m.UserID] = f.nextID
	f.inserts = append(f.inserts, m)
	return f.nextID, nil
}

func (f *fakeStore) UpdateFields(ctx context.Context, memberID int64, fields domain.FieldUpdate) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates[memberID] = fields
	return nil
}

type fakeAudit struct {
	entries []domain.AuditEntry
	err     error
}

func (f *fakeAudit) Append(ctx context.Context, entry domain.AuditEntry) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, entry)
	return nil
}

type fakeRuns struct {
	runID      string
	startErr   error
	started    bool
	completed  *domain.BatchStatistics
	failed     bool
	failReason string
}

func (f *fakeRuns) Start(ctx context.Context) (string, error) {
	if f.startErr != nil {
		return "", f.startErr
	}
	f.started = true
	if f.runID == "" {
		f.runID = "run-1"
	}
	return f.runID, nil
}

func (f *fakeRuns) Complete(ctx context.Context, runID string, stats domain.BatchStatistics) error {
	f.completed = &stats
	return nil
}

func (f *fakeRuns) Fail(ctx context.Context, runID string, reason string) error {
	f.failed = true
	f.failReason = reason
	return nil
}

func TestImportMembersInsertsNewMember(t *testing.T) {
	t.Parallel()

	source := &fakeSource{members: []domain.SourceMember{{
		UserID:      501,
		DisplayName: "Tama Rangi",
		Email:       "tama@example.com",
		DateOfBirth: "2015-06-01",
		StatusCode:  1,
	}}}
	store := newFakeStore()
	audit := &fakeAudit{}
	runs := &fakeRuns{}

	uc := app.NewImportMembers(source, store, audit, runs, 50)

	out, err := uc.Execute(context.Background(), app.ImportMembersInput{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if out.Imported != 1 {
		t.Fatalf("expected imported=1, got %d", out.Imported)
	}
	if out.Total != 1 {
		t.Fatalf("expected total=1, got %d", out.Total)
	}
	if out.RunID != "run-1" {
		t.Fatalf("unexpected run id: %s", out.RunID)
	}

	if len(store.inserts) != 1 {
		t.Fatalf("expected 1 insert, got %d", len(store.inserts))
	}
	inserted := store.inserts[0]
	if inserted.UserID != 501 {
		t.Fatalf("unexpected user id: %d", inserted.UserID)
	}
	if inserted.Status != domain.StatusActive {
		t.Fatalf("expected status active, got %s", inserted.Status)
	}
	if inserted.MembershipType != domain.MembershipTypeJunior {
		t.Fatalf("expected membership type junior, got %s", inserted.MembershipType)
	}
	if inserted.DateOfBirth != "2015-06-01" {
		t.Fatalf("unexpected date of birth: %s", inserted.DateOfBirth)
	}

	if len(audit.entries) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(audit.entries))
	}
	entry := audit.entries[0]
	if entry.Action != domain.AuditActionMemberImported {
		t.Fatalf("unexpected audit action: %s", entry.Action)
	}
	if entry.ObjectID != 1 {
		t.Fatalf("unexpected audit object id: %d", entry.ObjectID)
	}
	if entry.Payload["armember_user_id"] != int64(501) {
		t.Fatalf("unexpected audit payload: %#v", entry.Payload)
	}

	if runs.completed == nil {
		t.Fatal("expected run to be completed")
	}
	if runs.completed.Imported != 1 {
		t.Fatalf("expected completed imported=1, got %d", runs.completed.Imported)
	}
}

func TestImportMembersSkipExistingIsIdempotent(t *testing.T) {
	t.Parallel()

	source := &fakeSource{members: []domain.SourceMember{{UserID: 501, StatusCode: 1}}}
	store := newFakeStore()
	store.existing[501] = 7
	audit := &fakeAudit{}

	uc := app.NewImportMembers(source, store, audit, &fakeRuns{}, 50)

	for run := 0; run < 2; run++ {
		out, err := uc.Execute(context.Background(), app.ImportMembersInput{SkipExisting: true})
		if err != nil {
			t.Fatalf("run %d: expected no error, got %v", run, err)
		}
		if out.Skipped != 1 {
			t.Fatalf("run %d: expected skipped=1, got %d", run, out.Skipped)
		}
		if out.Imported != 0 {
			t.Fatalf("run %d: expected imported=0, got %d", run, out.Imported)
		}
	}

	if len(store.inserts) != 0 {
		t.Fatalf("expected no inserts, got %d", len(store.inserts))
	}
	if len(store.updates) != 0 {
		t.Fatalf("expected no updates, got %d", len(store.updates))
	}
	if len(audit.entries) != 0 {
		t.Fatalf("expected no audit entries, got %d", len(audit.entries))
	}
}

func TestImportMembersUnmappedStatusUsesDefault(t *testing.T) {
	t.Parallel()

	source := &fakeSource{members: []domain.SourceMember{{UserID: 502, StatusCode: 99}}}
	store := newFakeStore()

	uc := app.NewImportMembers(source, store, &fakeAudit{}, &fakeRuns{}, 50)

	out, err := uc.Execute(context.Background(), app.ImportMembersInput{DefaultStatus: "pending"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out.Imported != 1 {
		t.Fatalf("expected imported=1, got %d", out.Imported)
	}
	if store.inserts[0].Status != domain.StatusPending {
		t.Fatalf("expected status pending, got %s", store.inserts[0].Status)
	}
}

func TestImportMembersUpdateExistingTransfersFields(t *testing.T) {
	t.Parallel()

	source := &fakeSource{members: []domain.SourceMember{{
		UserID: 503,
		Phone:  "0712345678",
	}}}
	store := newFakeStore()
	store.existing[503] = 9

	uc := app.NewImportMembers(source, store, &fakeAudit{}, &fakeRuns{}, 50)

	out, err := uc.Execute(context.Background(), app.ImportMembersInput{UpdateExisting: true})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out.Updated != 1 {
		t.Fatalf("expected updated=1, got %d", out.Updated)
	}

	update, ok := store.updates[9]
	if !ok {
		t.Fatal("expected member 9 to be updated")
	}
	if update.Phone == nil || *update.Phone != "0712345678" {
		t.Fatalf("expected phone staged, got %v", update.Phone)
	}
	if update.DateOfBirth != nil || update.Gender != nil {
		t.Fatalf("expected only phone staged, got %+v", update)
	}
}

func TestImportMembersUpdateExistingNothingStagedSkips(t *testing.T) {
	t.Parallel()

	source := &fakeSource{members: []domain.SourceMember{{UserID: 503}}}
	store := newFakeStore()
	store.existing[503] = 9

	uc := app.NewImportMembers(source, store, &fakeAudit{}, &fakeRuns{}, 50)

	out, err := uc.Execute(context.Background(), app.ImportMembersInput{UpdateExisting: true})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out.Skipped != 1 {
		t.Fatalf("expected skipped=1, got %d", out.Skipped)
	}
	if len(store.updates) != 0 {
		t.Fatalf("expected no writes, got %d", len(store.updates))
	}
}

func TestImportMembersInsertFailureRecordsError(t *testing.T) {
	t.Parallel()

	source := &fakeSource{members: []domain.SourceMember{
		{UserID: 501, StatusCode: 1},
		{UserID: 502, StatusCode: 1},
	}}
	store := newFakeStore()
	store.existing[501] = 3
	store.insertErr = errors.New("connection reset")

	uc := app.NewImportMembers(source, store, &fakeAudit{}, &fakeRuns{}, 50)

	out, err := uc.Execute(context.Background(), app.ImportMembersInput{SkipExisting: true})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if out.Skipped != 1 {
		t.Fatalf("expected skipped=1, got %d", out.Skipped)
	}
	if out.Errors != 1 {
		t.Fatalf("expected errors=1, got %d", out.Errors)
	}
	if len(out.Messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(out.Messages))
	}
	if out.Messages[0] != "User #502: connection reset" {
		t.Fatalf("unexpected message: %s", out.Messages[0])
	}

	processed := out.Imported + out.Updated + out.Skipped + out.Errors
	if processed != 2 {
		t.Fatalf("expected counters to account for 2 records, got %d", processed)
	}
}

func TestImportMembersInsertConflictTreatedAsExisting(t *testing.T) {
	t.Parallel()

	source := &fakeSource{members: []domain.SourceMember{{UserID: 501, StatusCode: 1}}}
	store := newFakeStore()
	store.existing[501] = 4
	store.hideOnNextFind[501] = true

	uc := app.NewImportMembers(source, store, &fakeAudit{}, &fakeRuns{}, 50)

	out, err := uc.Execute(context.Background(), app.ImportMembersInput{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out.Skipped != 1 {
		t.Fatalf("expected skipped=1, got %d", out.Skipped)
	}
	if out.Errors != 0 {
		t.Fatalf("expected errors=0, got %d", out.Errors)
	}
}

func TestImportMembersInsertConflictUpdatesWhenRequested(t *testing.T) {
	t.Parallel()

	source := &fakeSource{members: []domain.SourceMember{{UserID: 501, Phone: "021555123", StatusCode: 1}}}
	store := newFakeStore()
	store.existing[501] = 4
	store.hideOnNextFind[501] = true

	uc := app.NewImportMembers(source, store, &fakeAudit{}, &fakeRuns{}, 50)

	out, err := uc.Execute(context.Background(), app.ImportMembersInput{UpdateExisting: true})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out.Updated != 1 {
		t.Fatalf("expected updated=1, got %d", out.Updated)
	}
	update, ok := store.updates[4]
	if !ok {
		t.Fatal("expected member 4 to be updated")
	}
	if update.Phone == nil || *update.Phone != "021555123" {
		t.Fatalf("expected phone staged, got %v", update.Phone)
	}
}

func TestImportMembersPagesThroughSource(t *testing.T) {
	t.Parallel()

	members := make([]domain.SourceMember, 0, 120)
	for i := 0; i < 120; i++ {
		members = append(members, domain.SourceMember{UserID: int64(1000 + i), StatusCode: 1})
	}
	source := &fakeSource{members: members}
	store := newFakeStore()

	uc := app.NewImportMembers(source, store, &fakeAudit{}, &fakeRuns{}, 50)

	out, err := uc.Execute(context.Background(), app.ImportMembersInput{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if out.Imported != 120 {
		t.Fatalf("expected imported=120, got %d", out.Imported)
	}
	if out.Total != 120 {
		t.Fatalf("expected total=120, got %d", out.Total)
	}
	if source.pageCalls != 3 {
		t.Fatalf("expected 3 page reads, got %d", source.pageCalls)
	}

	processed := out.Imported + out.Updated + out.Skipped + out.Errors
	if processed != 120 {
		t.Fatalf("expected counters to account for 120 records, got %d", processed)
	}
	if int64(len(out.Messages)) != out.Errors {
		t.Fatalf("expected %d messages, got %d", out.Errors, len(out.Messages))
	}
}

func TestImportMembersConflictingOptions(t *testing.T) {
	t.Parallel()

	uc := app.NewImportMembers(&fakeSource{}, newFakeStore(), &fakeAudit{}, &fakeRuns{}, 50)

	_, err := uc.Execute(context.Background(), app.ImportMembersInput{
		SkipExisting:   true,
		UpdateExisting: true,
	})
	if !errors.Is(err, app.ErrConflictingImportOptions) {
		t.Fatalf("expected ErrConflictingImportOptions, got %v", err)
	}
}

func TestImportMembersInvalidDefaultStatus(t *testing.T) {
	t.Parallel()

	uc := app.NewImportMembers(&fakeSource{}, newFakeStore(), &fakeAudit{}, &fakeRuns{}, 50)

	_, err := uc.Execute(context.Background(), app.ImportMembersInput{DefaultStatus: "deleted"})
	if !errors.Is(err, app.ErrInvalidDefaultStatus) {
		t.Fatalf("expected ErrInvalidDefaultStatus, got %v", err)
	}
}

func TestImportMembersCountFailure(t *testing.T) {
	t.Parallel()

	source := &fakeSource{countErr: errors.New("source unreachable")}
	runs := &fakeRuns{}

	uc := app.NewImportMembers(source, newFakeStore(), &fakeAudit{}, runs, 50)

	_, err := uc.Execute(context.Background(), app.ImportMembersInput{})
	if !errors.Is(err, app.ErrCountSourceMembers) {
		t.Fatalf("expected ErrCountSourceMembers, got %v", err)
	}
	if runs.started {
		t.Fatal("expected no run to be started")
	}
}

func TestImportMembersPageFailureFailsRun(t *testing.T) {
	t.Parallel()

	source := &fakeSource{
		members: []domain.SourceMember{{UserID: 501, StatusCode: 1}},
		pageErr: fmt.Errorf("read page: %w", errors.New("timeout")),
	}
	runs := &fakeRuns{}

	uc := app.NewImportMembers(source, newFakeStore(), &fakeAudit{}, runs, 50)

	_, err := uc.Execute(context.Background(), app.ImportMembersInput{})
	if !errors.Is(err, app.ErrImportBatch) {
		t.Fatalf("expected ErrImportBatch, got %v", err)
	}
	if !runs.failed {
		t.Fatal("expected run to be marked failed")
	}
	if !strings.Contains(runs.failReason, "timeout") {
		t.Fatalf("unexpected fail reason: %s", runs.failReason)
	}
}
