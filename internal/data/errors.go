package data

import "errors"

// Sentinel errors shared by the Postgres repositories. Services compare with
// errors.Is and translate into HTTP codes at the edge.
var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicate      = errors.New("record already exists")
	ErrInvalidInput   = errors.New("invalid input")
	ErrSlotOutOfRange = errors.New("beneficiary slot out of range")
)
