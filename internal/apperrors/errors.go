package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates the access guard denied the operation.
var ErrUnauthorized = errors.New("unauthorized")

// ErrUnauthenticated indicates missing or invalid credentials.
var ErrUnauthenticated = errors.New("unauthenticated")

// ErrInvalidTransition indicates the requested status change is not an edge of the entity's state machine.
var ErrInvalidTransition = errors.New("invalid transition")

// ErrTerminalState indicates a transition was attempted on an entity that already reached a terminal status.
var ErrTerminalState = errors.New("entity is in a terminal state")

// ErrIncompleteChecklist indicates an inspection cannot complete because checklist items lack responses.
var ErrIncompleteChecklist = errors.New("incomplete checklist")

// ErrAlreadyAssigned indicates a hazard already has an active assignment.
var ErrAlreadyAssigned = errors.New("hazard already assigned")

// ErrConcurrentModification indicates the entity changed between read and write (optimistic lock conflict).
// Callers may retry the same request.
var ErrConcurrentModification = errors.New("concurrent modification")

// ErrInternal is returned for unexpected failures (persistence, connectivity).
var ErrInternal = errors.New("internal error")

// Stable machine-readable codes surfaced to API clients.
const (
	CodeNotFound               = "not_found"
	CodeValidation             = "validation_error"
	CodeMissingFields          = "missing_fields"
	CodeDuplicate              = "duplicate"
	CodeUnauthorized           = "unauthorized"
	CodeUnauthenticated        = "unauthenticated"
	CodeInvalidTransition      = "invalid_transition"
	CodeTerminalState          = "terminal_state"
	CodeIncompleteChecklist    = "incomplete_checklist"
	CodeAlreadyAssigned        = "already_assigned"
	CodeConcurrentModification = "concurrent_modification"
	CodeInternal               = "internal_error"
)

// AppError carries a stable code, a human-readable message and optional details
// (for example the list of missing fields) on top of one of the sentinel errors.
type AppError struct {
	Code    string
	Message string
	Details map[string]any
	kind    error
	cause   error
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Is lets errors.Is match the sentinel kind of the error.
func (e *AppError) Is(target error) bool {
	return e.kind != nil && target == e.kind
}

// Unwrap returns the underlying cause, if any.
func (e *AppError) Unwrap() error {
	return e.cause
}

// NewAppError builds an AppError of the given sentinel kind.
func NewAppError(kind error, code, message string, cause error) *AppError {
	return &AppError{Code: code, Message: message, kind: kind, cause: cause}
}

// WithDetail attaches a detail entry and returns the same error for chaining.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

func NewNotFoundError(message string) *AppError {
	return NewAppError(ErrNotFound, CodeNotFound, message, nil)
}

func NewValidationFailedError(message string) *AppError {
	return NewAppError(ErrValidation, CodeValidation, message, nil)
}

func NewConflictError(message string) *AppError {
	return NewAppError(ErrDuplicate, CodeDuplicate, message, nil)
}

func NewInternalError(message string, cause error) *AppError {
	return NewAppError(ErrInternal, CodeInternal, message, cause)
}

// NewUnauthorizedError wraps an access guard denial; reason is the guard's reason code.
func NewUnauthorizedError(reason, message string) *AppError {
	return NewAppError(ErrUnauthorized, CodeUnauthorized, message, nil).WithDetail("reason", reason)
}

// NewUnauthenticatedError reports failed sign-in without saying which credential was wrong.
func NewUnauthenticatedError(message string) *AppError {
	return NewAppError(ErrUnauthenticated, CodeUnauthenticated, message, nil)
}

func NewInvalidTransitionError(entity, from, to string) *AppError {
	return NewAppError(ErrInvalidTransition, CodeInvalidTransition,
		fmt.Sprintf("%s cannot transition from %s to %s", entity, from, to), nil).
		WithDetail("from", from).
		WithDetail("to", to)
}

func NewTerminalStateError(entity, status string) *AppError {
	return NewAppError(ErrTerminalState, CodeTerminalState,
		fmt.Sprintf("%s is %s and accepts no further transitions", entity, status), nil).
		WithDetail("status", status)
}

func NewAlreadyAssignedError(hazardID string) *AppError {
	return NewAppError(ErrAlreadyAssigned, CodeAlreadyAssigned,
		fmt.Sprintf("hazard %s already has an active assignment", hazardID), nil)
}

func NewConcurrentModificationError(entity, id string) *AppError {
	return NewAppError(ErrConcurrentModification, CodeConcurrentModification,
		fmt.Sprintf("%s %s was modified concurrently, retry the request", entity, id), nil)
}

// NewIncompleteChecklistError names the checklist items that still lack a response.
func NewIncompleteChecklistError(missingItemIDs []string) *AppError {
	return NewAppError(ErrIncompleteChecklist, CodeIncompleteChecklist,
		"responses missing for checklist items: "+strings.Join(missingItemIDs, ", "), nil).
		WithDetail("missingItemIds", missingItemIDs)
}

// NewMissingFieldsError is a validation error listing required fields that were empty.
func NewMissingFieldsError(fields []string) *AppError {
	return NewAppError(ErrValidation, CodeMissingFields,
		"required fields missing: "+strings.Join(fields, ", "), nil).
		WithDetail("missingFields", fields)
}

// As returns the AppError in err's chain, if present.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
