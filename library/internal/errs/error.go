package errs

import (
	"errors"
	"fmt"
)

// Kinds. Every error produced by the rental and reconciliation rules wraps
// exactly one of them so callers can branch with errors.Is.
var (
	ErrValidation    = errors.New("validation error")
	ErrAuthorization = errors.New("authorization error")
	ErrConflict      = errors.New("conflict")
	ErrNotFound      = errors.New("not found")
	ErrExternal      = errors.New("external error")
)

var (
	ErrNotAvailable        = New(ErrConflict, "book is not available for rent")
	ErrCooldown            = New(ErrConflict, "book was returned recently and cannot be rented yet")
	ErrNotOnLoan           = New(ErrConflict, "book is not on loan")
	ErrExtensionExceeded   = New(ErrConflict, "extension window exceeded")
	ErrTooManyLoans        = New(ErrConflict, "too many active loans")
	ErrDuplicateManageID   = New(ErrConflict, "manageId already exists")
	ErrDuplicateUser       = New(ErrConflict, "user already registered")
	ErrEmailTaken          = New(ErrConflict, "email is used by another user")
	ErrConcurrentUpdate    = New(ErrConflict, "book state changed concurrently")
	ErrNotBorrower         = New(ErrAuthorization, "user is not the borrower of this book")
	ErrBanned              = New(ErrAuthorization, "user is banned")
	ErrAdminRequired       = New(ErrAuthorization, "admin permission required")
	ErrUnauthenticated     = New(ErrAuthorization, "authentication required")
	ErrBookNotFound        = New(ErrNotFound, "book not found")
	ErrUserNotFound        = New(ErrNotFound, "user not found")
	ErrEmptyManageID       = New(ErrValidation, "manageId is required")
	ErrEmptyEmail          = New(ErrValidation, "email is required")
	ErrEmptyDate           = New(ErrValidation, "date is required")
	ErrSelfAdminRemoval    = New(ErrValidation, "admins cannot remove their own admin permission")
	ErrUnknownUserAction   = New(ErrValidation, "unknown user action")
	ErrNoNoticesToSend     = New(ErrValidation, "no overdue notices to send")
	ErrNotificationSinkOff = New(ErrExternal, "notification sink is not configured")
)

// Error is an inspectable failure carrying its kind.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func New(kind error, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Wrap classifies err under kind with a message prefix.
func Wrap(kind error, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// Kind returns the kind err was classified under, or nil.
func Kind(err error) error {
	for _, k := range []error{ErrValidation, ErrAuthorization, ErrConflict, ErrNotFound, ErrExternal} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

type ValidationErrorResponse struct {
	Message string `json:"message"`
	Errors  struct {
		AdditionalProperties string `json:"additionalProperties"`
	} `json:"errors"`
}
