package service

import "errors"

// Error categories. Every named condition below matches exactly one of them
// through errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrPrecondition = errors.New("precondition failed")
	ErrInvalid      = errors.New("invalid input")
)

// Error is a named, human-readable condition reported to the caller.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string {
	return e.msg
}

// Is matches the error's category.
func (e *Error) Is(target error) bool {
	return target == e.kind
}

func newError(kind error, msg string) error {
	return &Error{kind: kind, msg: msg}
}

var (
	ErrRecipeNotFound = newError(ErrNotFound, "Recipe not found")
	ErrUserNotFound   = newError(ErrNotFound, "User not found")
	ErrRecordNotFound = newError(ErrNotFound, "Record not found")

	ErrUsernameTaken = newError(ErrConflict, "Username already exists")
	ErrEmailTaken    = newError(ErrConflict, "Email already exists")

	ErrAuthorNotFound = newError(ErrPrecondition, "Author not found")

	ErrInvalidInput     = newError(ErrInvalid, "Invalid input")
	ErrUnknownAttribute = newError(ErrInvalid, "Unknown attribute")
	ErrInvalidAttribute = newError(ErrInvalid, "Invalid attribute value")
)
