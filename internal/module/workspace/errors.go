package workspace

import "errors"

// Tagged domain errors. Handlers and callers discriminate with errors.Is;
// messages are presentation only.
var (
	ErrUnauthenticated   = errors.New("unauthenticated")
	ErrForbidden         = errors.New("forbidden")
	ErrWorkspaceNotFound = errors.New("workspace not found")
	ErrChannelNotFound   = errors.New("channel not found")
	ErrInvalidJoinCode   = errors.New("invalid join code")
	ErrAlreadyMember     = errors.New("already a member of this workspace")
)
