package shell

import (
	"cmp"
	"context"

	"github.com/marmos91/nutshell/pkg/shell/access"
)

// CharIo is the byte transport the host application supplies: a UART,
// USB-CDC, or stdio adapter. It is the only external collaborator on the
// shell's input path.
type CharIo interface {
	// GetChar returns the next available character. ok is false when no
	// byte is currently available; it must not block waiting for one.
	GetChar() (c rune, ok bool, err error)

	// PutChar must not suspend indefinitely. Synchronous transports may
	// block briefly on TX-ready; asynchronous transports must buffer to
	// memory and return immediately, relying on a separate Flush.
	PutChar(c rune) error

	// WriteString is a convenience wrapper; adapters may implement it
	// directly or rely on WriteString (below) looping PutChar.
	WriteString(s string) error
}

// Flusher is implemented by CharIo adapters using the deferred-flush
// pattern: PutChar only buffers, and actual transport I/O happens here,
// driven by the caller of ProcessCharAsync.
type Flusher interface {
	Flush(ctx context.Context) error
}

// WriteString writes s to io one character at a time via PutChar. It is
// the default implementation CharIo.WriteString's doc comment describes;
// adapters that can write whole strings more efficiently should not call
// this and instead implement WriteString themselves.
func WriteString(io CharIo, s string) error {
	for _, c := range s {
		if err := io.PutChar(c); err != nil {
			return err
		}
	}
	return nil
}

// Handler executes commands looked up by CommandMeta.ID. args is only
// valid for the duration of the call.
type Handler interface {
	ExecuteSync(ctx context.Context, id string, args []string) (Response, error)
}

// AsyncHandler is an optional capability a Handler may additionally
// implement to support Kind=Async commands. Shell checks for this
// interface at dispatch time rather than branching on a compile-time
// feature flag.
type AsyncHandler interface {
	Handler
	ExecuteAsync(ctx context.Context, id string, args []string) (Response, error)
}

// CredentialProvider is the external collaborator consulted during login
// when authentication is enabled. VerifyPassword must compare in
// constant time; see pkg/credential for a reference implementation.
type CredentialProvider[L cmp.Ordered] interface {
	FindUser(ctx context.Context, username string) (*access.User[L], error)
	VerifyPassword(ctx context.Context, u *access.User[L], password string) bool
}
