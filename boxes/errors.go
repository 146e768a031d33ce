package boxes

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyPrepared is returned when preparing an element twice without [Element.Reset].
	ErrAlreadyPrepared = errors.New("element already prepared")
	// ErrNotPrepared is returned when rendering or splitting an unprepared element.
	ErrNotPrepared = errors.New("element not prepared")
)

// LifecycleError is returned when the prepare/render contract
// is violated. It always wraps [ErrAlreadyPrepared] or [ErrNotPrepared].
type LifecycleError struct {
	Op      string // "prepare", "split" or "render"
	Element Element
	Err     error
}

func (e *LifecycleError) Error() string {
	return fmt.Sprintf("%s %s %s: %v", e.Op, e.Element.Type(), e.Element.Box().ID, e.Err)
}

func (e *LifecycleError) Unwrap() error { return e.Err }
