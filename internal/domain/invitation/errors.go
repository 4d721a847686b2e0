package invitation

import "errors"

var (
	ErrInvitationNotFound = errors.New("invitation not found")
	ErrInvitationExpired  = errors.New("invitation has expired")
	ErrAlreadyAccepted    = errors.New("invitation has already been accepted")
)
