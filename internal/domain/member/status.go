package member

// Status is a local member status.
type Status string

const (
	StatusActive    Status = "active"
	StatusPending   Status = "pending"
	StatusSuspended Status = "suspended"
	StatusExpired   Status = "expired"
)

// ParseStatus validates a status string from configuration or API
// input.
func ParseStatus(raw string) (Status, error) {
	switch Status(raw) {
	case StatusActive, StatusPending, StatusSuspended, StatusExpired:
		return Status(raw), nil
	}
	return "", ErrInvalidStatus
}

// StatusTable translates ARMember primary-status codes into local
// member statuses.
type StatusTable map[int]Status

// DefaultStatusTable mirrors the ARMember primary-status codes observed
// in production. Codes 2 and 4 both map to suspended; upstream reuses
// suspension for both "inactive" and "terminated" accounts.
func DefaultStatusTable() StatusTable {
	return StatusTable{
		1: StatusActive,
		2: StatusSuspended,
		3: StatusPending,
		4: StatusSuspended,
		5: StatusExpired,
	}
}

// Map returns the translated status for code, or fallback unchanged
// when the code is not in the table.
func (t StatusTable) Map(code int, fallback Status) Status {
	if status, ok := t[code]; ok {
		return status
	}
	return fallback
}
