package queue

import (
	"github.com/pingcap/errors"
)

// ErrInvalidOperation is returned when an ownership-transferring push is
// given nothing to take ownership of.
var ErrInvalidOperation = errors.Normalize(
	"invalid queue operation, %s",
	errors.RFCCodeText("TSQ:ErrInvalidOperation"),
)

// IsInvalidOperation reports whether err is, or wraps, ErrInvalidOperation.
func IsInvalidOperation(err error) bool {
	if err == nil {
		return false
	}
	return ErrInvalidOperation.Equal(errors.Cause(err))
}
