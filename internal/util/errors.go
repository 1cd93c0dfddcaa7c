package util

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput               = errors.New("invalid input")
	ErrUserNotFound               = errors.New("user not found")
	ErrQuestionNotFound           = errors.New("question not found")
	ErrQuestionAlreadyModerated   = errors.New("question has already been moderated")
	ErrBadgeNotFound              = errors.New("badge not found")
	ErrCategoryNotFound           = errors.New("category not found")
	ErrSessionNotFound            = errors.New("quiz session not found")
	ErrSessionNoSelection         = errors.New("no option selected for the current question")
	ErrSessionWrongState          = errors.New("operation not allowed in the current session state")
	ErrNoQuestionsAvailable       = errors.New("no unanswered approved questions available")
	ErrUnsupportedIconType        = errors.New("icon must be an image file")
	ErrModerationKeyNotConfigured = errors.New("moderation key is not configured")
)

// Validation reason codes surfaced to the authoring form, in check order.
const (
	ReasonUsernameRequired     = "username_required"
	ReasonQuestionTextRequired = "question_text_required"
	ReasonCategoryRequired     = "category_required"
	ReasonMinOptions           = "min_options"
	ReasonExactlyOneCorrect    = "exactly_one_correct"
)

// ValidationError carries a machine-readable reason code alongside the
// user-facing message.
type ValidationError struct {
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, e.Message)
}

func NewValidationError(reason, message string) *ValidationError {
	return &ValidationError{Reason: reason, Message: message}
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// PersistenceError wraps a failed store read/write with the operation that
// failed, so boundary logs keep their context.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure in %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func NewPersistenceError(op string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Err: err}
}

func IsPersistenceError(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
