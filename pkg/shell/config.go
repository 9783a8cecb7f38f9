package shell

import (
	"cmp"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Config fixes the bounded sizes and user-visible strings a Shell is
// instantiated with. It is the Go translation of the associated-const
// ShellConfig trait from spec.md section 4.8/6: a plain struct rather
// than compile-time constants, validated once at construction the same
// way the teacher validates pkg/config.Config.
type Config[L cmp.Ordered] struct {
	MaxInput     int `validate:"gt=0"`
	MaxPathDepth int `validate:"gt=0"`
	// MaxArgs bounds the number of argument tokens handleEnter accepts
	// from one input line, on top of each CommandMeta's own MinArgs/MaxArgs.
	MaxArgs   int `validate:"gt=0"`
	MaxPrompt int `validate:"gt=0"`
	// MaxResponse bounds Response.Message; emit truncates to this length.
	MaxResponse int `validate:"gt=0"`

	// HistorySize of 0 disables history entirely (always-empty stub).
	HistorySize int `validate:"gte=0"`

	// CompletionEnabled toggles the completion stub (spec.md section 4.4).
	CompletionEnabled bool

	WelcomeBanner             string `validate:"required"`
	WelcomeBannerAuth         string
	LoginPrompt               string
	LoginSuccessMessage       string
	LoginFailedMessage        string
	InvalidLoginFormatMessage string
	LogoutMessage             string

	// LevelName/LevelFromName supply the bidirectional string conversion
	// spec.md section 4.1 asks AccessLevel for; Go generics can't attach
	// arbitrary methods to an ordering-constrained type parameter, so the
	// consumer supplies these as plain functions instead.
	LevelName     func(L) string
	LevelFromName func(string) (L, bool)
}

// Validate checks the bounded-size invariants and required strings. It
// also requires LevelName/LevelFromName to be non-nil; the shell itself
// does not call either function after this check.
func (c Config[L]) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.LevelName == nil || c.LevelFromName == nil {
		return errConfigMissingLevelFns
	}
	return nil
}

// validateAuthStrings additionally requires the auth-only user-visible
// strings once a CredentialProvider has been supplied.
func (c Config[L]) validateAuthStrings() error {
	if c.WelcomeBannerAuth == "" || c.LoginPrompt == "" || c.LoginFailedMessage == "" ||
		c.InvalidLoginFormatMessage == "" || c.LogoutMessage == "" {
		return errConfigMissingAuthStrings
	}
	return nil
}
