package navigation

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownAction is returned for an action the router does not know.
	ErrUnknownAction = errors.New("unknown action")

	// ErrMissingParam is returned when an action lacks a required parameter.
	ErrMissingParam = errors.New("missing parameter")

	// ErrInvalidParam is returned when a parameter cannot be decoded.
	ErrInvalidParam = errors.New("invalid parameter")
)

// ProtocolError reports a malformed invocation. It indicates a bug in
// whatever built the plugin URL and is never recovered by the router.
type ProtocolError struct {
	Action Action
	Param  string
	Value  string
	Err    error
}

func (e *ProtocolError) Error() string {
	switch {
	case e.Param != "" && e.Value != "":
		return fmt.Sprintf("%s: %s %q: %v", e.Action, e.Param, e.Value, e.Err)
	case e.Param != "":
		return fmt.Sprintf("%s: %s: %v", e.Action, e.Param, e.Err)
	default:
		return fmt.Sprintf("%q: %v", string(e.Action), e.Err)
	}
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}
