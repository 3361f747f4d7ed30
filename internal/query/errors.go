package query

import (
	"fmt"

	"github.com/sourcegraph/sourcegraph/lib/errors"
)

// Status classifies a compile failure (§7 Error handling design). It
// carries no behavior of its own: Error wraps it so every returned
// error is inspectable with errors.As without exposing the sentinel
// Ignored value, which must never leak past the Translator.
type Status int

const (
	// StatusBadQuerySyntax covers every structural or semantic
	// violation of the query language.
	StatusBadQuerySyntax Status = iota + 1
	StatusNullPointer
	StatusOutOfMemory
	StatusXapianException
)

func (s Status) String() string {
	switch s {
	case StatusBadQuerySyntax:
		return "BadQuerySyntax"
	case StatusNullPointer:
		return "NullPointer"
	case StatusOutOfMemory:
		return "OutOfMemory"
	case StatusXapianException:
		return "XapianException"
	default:
		return "Unknown"
	}
}

// Error is the error type Compile returns on any non-success Status.
type Error struct {
	Status  Status
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Status, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Status, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// badSyntax builds a BadQuerySyntax error and logs it once via the
// backend's diagnostic sink, per the "Error-diagnostic contract" of
// §4.3: every BadQuerySyntax is accompanied by a one-line human
// readable message logged before returning.
func badSyntax(logger diagnosticLogger, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if logger != nil {
		logger.Log(msg)
	}
	return &Error{Status: StatusBadQuerySyntax, Message: msg}
}

func xapianException(logger diagnosticLogger, cause error, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if logger != nil {
		logger.Log(msg)
	}
	return &Error{Status: StatusXapianException, Message: msg, Cause: cause}
}

// diagnosticLogger is the minimal slice of Backend errors.go needs, to
// avoid importing the full Backend interface here.
type diagnosticLogger interface {
	Log(message string)
}

// errIgnored is the internal-only "this dispatch rule did not match,
// try the next" sentinel (§7: "Ignored ... must never leak to the
// caller"). It is unexported and every place it can be produced
// (maybeSavedSquery, maybeApplyMacro) is unwrapped by its caller before
// Translate returns.
var errIgnored = errors.New("query: dispatch rule did not match (internal sentinel)")
