package member

// ImportOptions configures one import invocation. SkipExisting and
// UpdateExisting are mutually exclusive.
type ImportOptions struct {
	SkipExisting    bool
	UpdateExisting  bool
	ForceJuniorType bool
	DefaultStatus   Status
}

// ImportOutcome classifies the result of importing one source record.
type ImportOutcome string

const (
	OutcomeImported ImportOutcome = "imported"
	OutcomeUpdated  ImportOutcome = "updated"
	OutcomeSkipped  ImportOutcome = "skipped"
	OutcomeError    ImportOutcome = "error"
)

// BatchStatistics aggregates one batch run. Imported + Updated +
// Skipped + Errors equals the number of records processed, and
// Messages holds one formatted entry per error.
type BatchStatistics struct {
	Total    int64
	Imported int64
	Updated  int64
	Skipped  int64
	Errors   int64
	Messages []string
}

// AuditEntry is an append-only record of a member mutation.
type AuditEntry struct {
	Action     string
	ObjectType string
	ObjectID   int64
	Payload    map[string]any
}

const (
	AuditActionMemberImported = "member_imported_from_armember"
	AuditObjectTypeMember     = "member"
)

// Import run lifecycle states.
const (
	RunStatusRunning   = "running"
	RunStatusSucceeded = "succeeded"
	RunStatusFailed    = "failed"
)
