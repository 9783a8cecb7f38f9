// Package access defines the authenticated User record and the single
// authorization primitive the rest of the shell relies on: a level
// comparison. No authorization policy lives outside that comparison.
package access

import (
	"cmp"
	"errors"
	"fmt"
)

// MaxUsernameLen is the maximum byte length of a User's username.
const MaxUsernameLen = 32

// ErrUsernameTooLong is returned by New when username exceeds MaxUsernameLen.
var ErrUsernameTooLong = errors.New("username exceeds maximum length")

// User is an authenticated user record. It is created by successful
// authentication and destroyed on logout; the shell never keeps one around
// when authentication is disabled.
type User[L cmp.Ordered] struct {
	Username string
	Level    L
}

// New validates username length before constructing a User.
func New[L cmp.Ordered](username string, level L) (User[L], error) {
	if len(username) > MaxUsernameLen {
		return User[L]{}, fmt.Errorf("%w: %q is %d bytes, max %d", ErrUsernameTooLong, username, len(username), MaxUsernameLen)
	}
	return User[L]{Username: username, Level: level}, nil
}

// Permitted implements the sole authorization rule: a held level may
// access a node requiring at most that level.
func Permitted[L cmp.Ordered](held, required L) bool {
	return held >= required
}
