// Package errors defines the failure taxonomy shared by the session, the
// transports and the CLI.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind is the category of a failure.
type Kind int

const (
	// KindValidation is bad local input, e.g. an empty identity at submit.
	KindValidation Kind = iota
	// KindTransport is an unreachable service, a timeout, or a non-2xx
	// response without a structured body.
	KindTransport
	// KindService is a structured failure reported by a collaborator.
	KindService
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindTransport:
		return "transport"
	case KindService:
		return "service"
	default:
		return "unknown"
	}
}

const (
	// GenericNetworkMessage is shown when the analysis service cannot be
	// reached.
	GenericNetworkMessage = "Network error: could not connect to backend"
	// GenericFetchMessage is shown for non-2xx responses without a message.
	GenericFetchMessage = "Failed to fetch data"
	// GenericAuthMessage is shown when authentication fails without a message.
	GenericAuthMessage = "Something went wrong"
)

// Error is a categorized failure carrying the text shown to the user.
type Error struct {
	Kind    Kind
	Message string
	Status  int
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	if e.Status != 0 {
		return fmt.Sprintf("%s (HTTP %d)", e.Message, e.Status)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrService) works
// for wrapped service failures.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinels for errors.Is.
var (
	ErrValidation = &Error{Kind: KindValidation}
	ErrTransport  = &Error{Kind: KindTransport}
	ErrService    = &Error{Kind: KindService}
)

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func Validationf(format string, args ...interface{}) *Error {
	return Validation(fmt.Sprintf(format, args...))
}

// Transport wraps a transport-level cause. status is 0 when no response was
// received.
func Transport(cause error, status int, message string) *Error {
	if message == "" {
		message = GenericNetworkMessage
	}
	return &Error{Kind: KindTransport, Message: message, Status: status, Cause: cause}
}

// Service records a message reported by a collaborator; the message is shown
// verbatim.
func Service(status int, message string) *Error {
	return &Error{Kind: KindService, Message: message, Status: status}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// UserMessage returns the text to show for err. Untyped errors are treated as
// transport failures and get fallback.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var e *Error
	if stderrors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	if fallback == "" {
		return GenericNetworkMessage
	}
	return fallback
}
