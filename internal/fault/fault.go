// Package fault defines the fatal error kinds raised while translating a
// target graph. Every kind aborts the whole run; callers match them with
// errors.Is against the exported Kind values.
package fault

import "fmt"

// Kind classifies a translation failure.
type Kind string

const (
	// InvalidTarget is raised for a node whose kind is not recognized.
	InvalidTarget Kind = "invalid target"
	// InvalidIdentifier is raised for a node id without a ':' separator.
	InvalidIdentifier Kind = "invalid identifier"
	// NameCollision is raised when a short name is emitted twice into one unit.
	NameCollision Kind = "name collision"
	// UnsupportedPlatform is raised for a platform without flag emulation.
	UnsupportedPlatform Kind = "unsupported platform"
	// DanglingReference is raised for a dependency id absent from the graph.
	DanglingReference Kind = "dangling reference"
)

// Error implements the error interface so a bare Kind can be used as an
// errors.Is target.
func (k Kind) Error() string {
	return string(k)
}

// Error is a translation failure carrying the offending subject (a node id,
// a unit path, a platform name).
type Error struct {
	Kind    Kind
	Subject string
	Detail  string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Subject)
	}
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Subject, e.Detail)
}

// Is reports whether target is the Kind of this error.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

// New builds an *Error of the given kind.
func New(kind Kind, subject string, detail string) *Error {
	return &Error{Kind: kind, Subject: subject, Detail: detail}
}

// Newf builds an *Error with a formatted detail.
func Newf(kind Kind, subject string, format string, args ...any) *Error {
	return &Error{Kind: kind, Subject: subject, Detail: fmt.Sprintf(format, args...)}
}
