// Package credential implements the reference credential hasher and a
// static-table CredentialProvider, exactly as spec.md section 6
// prescribes: "hash = SHA256(salt || password), per-user 16-byte salt,
// constant-time equality". The library ships this as the reference
// implementation; production deployments may swap in a flash-backed
// store or a build-time-generated const table without the shell caring,
// since both sides only ever talk to the shell.CredentialProvider
// interface.
package credential

import (
	"cmp"
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/marmos91/nutshell/pkg/shell/access"
)

// SaltSize is the per-user salt length spec.md section 6 fixes at 16 bytes.
const SaltSize = 16

// Salt is a per-user random value mixed into the hash input.
type Salt [SaltSize]byte

// Hash is the SHA-256 digest of salt||password.
type Hash [sha256.Size]byte

// NewSalt draws a fresh random salt from crypto/rand.
func NewSalt() (Salt, error) {
	var s Salt
	if _, err := rand.Read(s[:]); err != nil {
		return Salt{}, fmt.Errorf("credential: generating salt: %w", err)
	}
	return s, nil
}

// ComputeHash implements the fixed construction hash = SHA256(salt ||
// password). Callers must not substitute a KDF here: spec.md nails this
// construction down exactly, which is also why this package imports
// only crypto/sha256 and crypto/subtle rather than golang.org/x/crypto.
func ComputeHash(salt Salt, password string) Hash {
	h := sha256.New()
	h.Write(salt[:])
	h.Write([]byte(password))
	var out Hash
	copy(out[:], h.Sum(nil))
	return out
}

// Equal compares two hashes in constant time.
func Equal(a, b Hash) bool {
	return subtle.ConstantTimeCompare(a[:], b[:]) == 1
}

// Entry is one row of a static credential table: a username, its access
// level, and the salt/hash pair produced by ComputeHash. cmd/credgen
// emits a Go source file defining a []Entry[L] table of these.
type Entry[L cmp.Ordered] struct {
	Username string
	Level    L
	Salt     Salt
	Hash     Hash
}

// ErrDuplicateUsername is returned by NewStaticProvider when the table
// contains the same username more than once.
var ErrDuplicateUsername = errors.New("credential: duplicate username in table")

// StaticProvider implements shell.CredentialProvider[L] over an
// in-memory, const-initializable table — the "const table" case spec.md
// section 6 calls out alongside the flash-backed store and credgen's
// build-time-generated table.
type StaticProvider[L cmp.Ordered] struct {
	byUsername map[string]Entry[L]
}

// NewStaticProvider indexes entries by username.
func NewStaticProvider[L cmp.Ordered](entries []Entry[L]) (*StaticProvider[L], error) {
	byUsername := make(map[string]Entry[L], len(entries))
	for _, e := range entries {
		if _, dup := byUsername[e.Username]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateUsername, e.Username)
		}
		byUsername[e.Username] = e
	}
	return &StaticProvider[L]{byUsername: byUsername}, nil
}

// FindUser implements shell.CredentialProvider[L].
func (p *StaticProvider[L]) FindUser(_ context.Context, username string) (*access.User[L], error) {
	e, ok := p.byUsername[username]
	if !ok {
		return nil, nil
	}
	u, err := access.New(e.Username, e.Level)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// VerifyPassword implements shell.CredentialProvider[L]. It re-looks-up
// the stored entry by username and compares in constant time; it
// returns false (never an error) for a username no longer present,
// since from the caller's perspective that is just authentication
// failure, not a system error.
func (p *StaticProvider[L]) VerifyPassword(_ context.Context, u *access.User[L], password string) bool {
	if u == nil {
		return false
	}
	e, ok := p.byUsername[u.Username]
	if !ok {
		return false
	}
	return Equal(ComputeHash(e.Salt, password), e.Hash)
}
