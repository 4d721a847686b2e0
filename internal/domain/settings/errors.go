package settings

import "errors"

var (
	ErrSettingsNotFound = errors.New("organization settings not found")
	ErrInvalidTimezone  = errors.New("invalid timezone")
)
