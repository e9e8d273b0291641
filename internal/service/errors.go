package service

import "errors"

var (
	// ErrTodoNotFound is returned when a referenced todo does not exist.
	ErrTodoNotFound = errors.New("todo not found")
	// ErrFileNotFound is returned when a referenced attachment does not exist.
	ErrFileNotFound = errors.New("file not found")
	// ErrOutsideUploadRoot is returned when a stored path resolves outside
	// the managed uploads directory. Deletion is refused in that case.
	ErrOutsideUploadRoot = errors.New("path outside upload directory")
)

// ValidationError signals bad or missing caller input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
