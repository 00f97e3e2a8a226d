package resources

import "errors"

var (
	ErrMissingResource = errors.New("payrail required linked resource missing")
	ErrInvalidState    = errors.New("payrail operation not allowed in current state")
)
