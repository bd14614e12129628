package member

// MembershipTypeJunior is the only membership type currently imported.
const MembershipTypeJunior = "junior"

// SourceMember is one row read from the ARMember installation. The
// source is never written to; optional fields are empty strings when
// the upstream column is null.
type SourceMember struct {
	UserID      int64
	DisplayName string
	Email       string
	Phone       string
	DateOfBirth string // ISO date (2006-01-02), may be empty
	Gender      string
	StatusCode  int
	UserType    int
}

// Member is a local member record linked to an external user account.
type Member struct {
	ID             int64
	UserID         int64
	MembershipType string
	Status         Status
	DateOfBirth    string
	Gender         string
	Phone          string
}

// NewMember carries the fields for a member insert. The user id is the
// dedup key; at most one member row may reference it.
type NewMember struct {
	UserID         int64
	MembershipType string
	Status         Status
	DateOfBirth    string
	Gender         string
	Phone          string
}

// FieldUpdate stages optional-field writes for an existing member. A
// nil field is left untouched.
type FieldUpdate struct {
	DateOfBirth *string
	Gender      *string
	Phone       *string
}

// Empty reports whether no field is staged.
func (u FieldUpdate) Empty() bool {
	return u.DateOfBirth == nil && u.Gender == nil && u.Phone == nil
}

// StageUpdate stages every non-empty source field for transfer onto an
// existing record. Local values are not consulted: a non-empty source
// value always wins, and an empty one never clears local data.
func StageUpdate(src SourceMember) FieldUpdate {
	var update FieldUpdate
	if src.DateOfBirth != "" {
		update.DateOfBirth = &src.DateOfBirth
	}
	if src.Gender != "" {
		update.Gender = &src.Gender
	}
	if src.Phone != "" {
		update.Phone = &src.Phone
	}
	return update
}
