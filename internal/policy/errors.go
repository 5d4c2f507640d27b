package policy

import (
	"errors"
	"fmt"
)

// Kind classifies why an operation was refused or failed.
type Kind int

const (
	KindNone Kind = iota
	KindInvalidPath
	KindAccessDenied
	KindExtensionNotAllowed
	KindCategoryDisabled
	KindNotAFile
	KindNotADirectory
	KindTooLarge
	KindNotFound
	KindInvalidParams
	KindInvalidEncoding
	KindUnknown
)

// String returns the taxonomy name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindInvalidPath:
		return "InvalidPath"
	case KindAccessDenied:
		return "AccessDenied"
	case KindExtensionNotAllowed:
		return "ExtensionNotAllowed"
	case KindCategoryDisabled:
		return "CategoryDisabled"
	case KindNotAFile:
		return "NotAFile"
	case KindNotADirectory:
		return "NotADirectory"
	case KindTooLarge:
		return "TooLarge"
	case KindNotFound:
		return "NotFound"
	case KindInvalidParams:
		return "InvalidParams"
	case KindInvalidEncoding:
		return "InvalidEncoding"
	default:
		return "Unknown"
	}
}

// IsPolicy reports whether the kind is a policy decision rather than an
// existence or I/O condition.
func (k Kind) IsPolicy() bool {
	switch k {
	case KindInvalidPath, KindAccessDenied, KindExtensionNotAllowed, KindCategoryDisabled, KindTooLarge:
		return true
	}
	return false
}

// Error is a refusal or failure carrying a Kind and a human-readable message.
// Messages are stable enough for callers to pattern-match.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Errorf builds an *Error of the given kind.
func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the Kind from err, or KindUnknown when err is not an *Error.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return KindUnknown
}

func accessDenied(prefix string) *Error {
	return Errorf(KindAccessDenied, "Access denied: Path is in restricted directory: %s", prefix)
}

func invalidPath(reason string) *Error {
	return Errorf(KindInvalidPath, "Invalid path: %s", reason)
}
