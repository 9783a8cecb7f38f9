package shell

import (
	"errors"
	"fmt"
)

// ErrorKind classifies the logical (non-I/O) errors the shell can raise
// internally. Every one of these is caught by Shell and converted into a
// response.Response rendered to the user; none of them escapes
// ProcessChar/ProcessCharAsync.
type ErrorKind int

const (
	KindCommandNotFound ErrorKind = iota
	KindInvalidPath
	KindInvalidArgumentCount
	KindInvalidArgumentFormat
	KindBufferFull
	KindPathTooDeep
	KindAuthenticationFailed
	KindNotAuthenticated
	KindAsyncNotSupported
	KindTimeout
	KindCommandFailed
	KindOther
)

// Error is the shell's internal logical error type. It always renders to
// a user-visible message via its Message; it is never returned to the caller
// of ProcessChar.
type Error struct {
	Kind    ErrorKind
	Message string

	// populated for KindInvalidArgumentCount
	MinArgs, MaxArgs, GotArgs int
}

func (e *Error) Error() string {
	return e.Message
}

// Is lets callers use errors.Is(err, shell.ErrInvalidPath) and friends
// against a constructed *Error of the matching Kind.
func (e *Error) Is(target error) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == te.Kind
}

// Sentinel errors for errors.Is comparisons; only Kind is compared.
var (
	ErrCommandNotFound = &Error{Kind: KindCommandNotFound, Message: "command not found"}
	ErrInvalidPath     = &Error{Kind: KindInvalidPath, Message: "Invalid path"}
	ErrBufferFull      = &Error{Kind: KindBufferFull, Message: "buffer full"}
	// ErrPathTooDeep renders identically to ErrInvalidPath (spec.md section
	// 8: "navigating deeper yields PathTooDeep rendered as InvalidPath").
	ErrPathTooDeep          = &Error{Kind: KindPathTooDeep, Message: "Invalid path"}
	ErrAuthenticationFailed = &Error{Kind: KindAuthenticationFailed, Message: "authentication failed"}
	ErrNotAuthenticated     = &Error{Kind: KindNotAuthenticated, Message: "not authenticated"}
	ErrAsyncNotSupported    = &Error{Kind: KindAsyncNotSupported, Message: "async command dispatched via sync entrypoint"}
	ErrTimeout              = &Error{Kind: KindTimeout, Message: "timeout"}
)

var (
	errConfigMissingLevelFns    = errors.New("shell: Config.LevelName and LevelFromName are required")
	errConfigMissingAuthStrings = errors.New("shell: Config is missing a required auth user-visible string")
)

// invalidArgCount builds the "Expected M[-N] arguments, got G" error.
func invalidArgCount(min, max, got int) *Error {
	var msg string
	if min == max {
		msg = fmt.Sprintf("Expected %d arguments, got %d", min, got)
	} else {
		msg = fmt.Sprintf("Expected %d-%d arguments, got %d", min, max, got)
	}
	return &Error{Kind: KindInvalidArgumentCount, Message: msg, MinArgs: min, MaxArgs: max, GotArgs: got}
}

// commandFailed wraps a handler-supplied message as KindCommandFailed.
func commandFailed(msg string) *Error {
	return &Error{Kind: KindCommandFailed, Message: msg}
}

// Fail lets a Handler report a command failure with custom text,
// classified as KindCommandFailed rather than the catch-all KindOther an
// ordinary Go error gets (spec.md section 7: "CommandFailed(msg) /
// Other(msg) -- handler-reported with custom text"). Both render
// identically; the distinction only matters to a caller using errors.Is.
func Fail(msg string) error {
	return commandFailed(msg)
}

// tooManyArguments reports the global MAX_ARGS overflow (spec.md section
// 6's config surface) with the same KindInvalidArgumentCount as a
// per-command argument-count mismatch, but with its own message:
// "Too many arguments: got G, max M".
func tooManyArguments(max, got int) *Error {
	return &Error{
		Kind:    KindInvalidArgumentCount,
		Message: fmt.Sprintf("Too many arguments: got %d, max %d", got, max),
		MaxArgs: max,
		GotArgs: got,
	}
}

// other wraps an arbitrary error as KindOther, preserving its text.
func other(err error) *Error {
	return &Error{Kind: KindOther, Message: err.Error()}
}

// asShellError classifies any error returned by a Handler/CredentialProvider
// into the shell's error taxonomy so it can be rendered uniformly. Errors
// already of type *Error pass through unchanged.
func asShellError(err error) *Error {
	var se *Error
	if errors.As(err, &se) {
		return se
	}
	return other(err)
}
