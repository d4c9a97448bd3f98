package variant

import (
	"errors"
	"fmt"
)

// ErrAccess matches every *AccessError.
var ErrAccess = errors.New("variant: access error")

// AccessError reports reading a Value through an accessor that does not
// accept its kind.
type AccessError struct {
	Op   string // accessor, e.g. "AsInt", "Index"
	Want Kind
	Got  Kind
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("variant: %s: cannot read %s as %s", e.Op, e.Got, e.Want)
}

func (e *AccessError) Is(target error) bool {
	return target == ErrAccess
}

func accessErr(op string, want, got Kind) error {
	return &AccessError{Op: op, Want: want, Got: got}
}
