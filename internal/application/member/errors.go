package member

import "errors"

var (
	ErrConflictingImportOptions = errors.New("conflicting import options")
	ErrInvalidDefaultStatus     = errors.New("invalid default status")
	ErrCountSourceMembers       = errors.New("failed to count source members")
	ErrImportBatch              = errors.New("import batch failed")
	ErrInvalidPreviewLimit      = errors.New("invalid preview limit")
	ErrPreviewImport            = errors.New("failed to preview import")
	ErrInvalidMemberUserID      = errors.New("invalid member user id")
	ErrMemberNotFound           = errors.New("member not found")
	ErrGetMember                = errors.New("failed to get member")
)
