package domain

import "errors"

var (
	ErrUnknownStatus = errors.New("unknown processing status")
)
