// Package shell implements the character-driven interactive engine: the
// request/response pipeline that turns a byte stream into dispatched
// commands against a const directory tree, with optional authentication,
// tab completion, command history, and async command execution.
//
// Shell is not safe for concurrent use: it is single-threaded cooperative
// by design. ProcessChar must never be called recursively from within a
// Handler.
package shell

import (
	"cmp"
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/marmos91/nutshell/pkg/shell/access"
	"github.com/marmos91/nutshell/pkg/shell/history"
	"github.com/marmos91/nutshell/pkg/shell/parser"
	"github.com/marmos91/nutshell/pkg/shell/response"
	"github.com/marmos91/nutshell/pkg/shell/tree"
)

// Response is the command-result value type; re-exported from
// pkg/shell/response so Handler implementations only need to import
// pkg/shell.
type Response = response.Response

// Shell drives the character-by-character command loop. Construct one
// with New, then feed it bytes one at a time via ProcessChar or
// ProcessCharAsync.
type Shell[L cmp.Ordered] struct {
	id  string
	cfg Config[L]
	root *tree.Directory[L]

	io      CharIo
	handler Handler
	creds   CredentialProvider[L]
	metrics Metrics
	log     Logger

	authEnabled bool
	state       CliState
	user        *access.User[L]

	buffer        []rune
	parser        *parser.Parser
	hist          *history.History
	pathStack     tree.Stack
	historyPrimed bool // true once the in-progress buffer has been saved for this Up/Down run
}

// Option configures a Shell at construction time.
type Option[L cmp.Ordered] func(*Shell[L])

// WithCredentialProvider enables authentication: the shell starts in
// LoggedOut rather than LoggedIn, and Enter in LoggedOut is routed to
// login handling against provider.
func WithCredentialProvider[L cmp.Ordered](provider CredentialProvider[L]) Option[L] {
	return func(s *Shell[L]) {
		s.creds = provider
		s.authEnabled = true
	}
}

// WithMetrics wires an optional metrics sink. A nil Metrics (the
// zero value of this option, or an explicit nil) makes every call a
// no-op; see pkg/metrics.
func WithMetrics[L cmp.Ordered](m Metrics) Option[L] {
	return func(s *Shell[L]) { s.metrics = m }
}

// WithLogger wires an optional structured logger. See internal/logger
// for the reference slog-based implementation.
func WithLogger[L cmp.Ordered](l Logger) Option[L] {
	return func(s *Shell[L]) { s.log = l }
}

// New constructs a Shell over root with the given Handler and Config. It
// does not activate the shell; call Activate to emit the welcome banner
// and first prompt.
func New[L cmp.Ordered](root *tree.Directory[L], h Handler, cfg Config[L], opts ...Option[L]) (*Shell[L], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := tree.Validate(root, reservedKeywords); err != nil {
		return nil, err
	}

	s := &Shell[L]{
		id:      uuid.NewString(),
		cfg:     cfg,
		root:    root,
		handler: h,
		state:   Inactive,
		parser:  parser.New(cfg.MaxInput),
		hist:    history.New(cfg.HistorySize),
		metrics: noopMetrics{},
		log:     noopLogger{},
	}
	s.pathStack = tree.NewStack(cfg.MaxPathDepth)

	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = noopMetrics{}
	}
	if s.log == nil {
		s.log = noopLogger{}
	}

	if s.authEnabled {
		if err := cfg.validateAuthStrings(); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// SetIO attaches the byte transport. Split out of New/Option so demo
// binaries can build a Shell before their CharIo adapter exists (e.g.
// while still negotiating raw terminal mode).
func (s *Shell[L]) SetIO(io CharIo) {
	s.io = io
}

// State returns the shell's current CliState.
func (s *Shell[L]) State() CliState {
	return s.state
}

// User returns the current logged-in user, or nil when unauthenticated
// (always nil if authentication is disabled).
func (s *Shell[L]) User() *access.User[L] {
	return s.user
}

// Activate transitions from Inactive to the appropriate initial active
// state (LoggedOut if auth is enabled, LoggedIn otherwise), then writes
// the welcome banner and the first prompt.
func (s *Shell[L]) Activate(ctx context.Context) error {
	if s.state != Inactive {
		return nil
	}

	banner := s.cfg.WelcomeBanner
	if s.authEnabled {
		s.state = LoggedOut
		banner = s.cfg.WelcomeBannerAuth
	} else {
		s.state = LoggedIn
	}

	s.log.Debug(ctx, "shell activated", "shell_id", s.id, "state", s.state.String())

	if err := s.write(banner + "\r\n"); err != nil {
		return err
	}
	if s.state == LoggedOut {
		return s.write(s.cfg.LoginPrompt)
	}
	return s.writePrompt()
}

func (s *Shell[L]) write(str string) error {
	return s.io.WriteString(str)
}

func (s *Shell[L]) writePrompt() error {
	return s.write(s.renderPrompt())
}

// renderPrompt builds "<username><@><path>> ", truncating with an
// ellipsis if it would exceed MaxPrompt.
func (s *Shell[L]) renderPrompt() string {
	username := ""
	if s.user != nil {
		username = s.user.Username
	}

	_, names := tree.Resolve(s.root, s.pathStack)
	pathStr := "/"
	if len(names) > 0 {
		pathStr = "/" + strings.Join(names, "/")
	}

	prompt := username + "@" + pathStr + "> "
	if len(prompt) <= s.cfg.MaxPrompt {
		return prompt
	}

	// Truncate trailing path components until it fits, substituting an
	// ellipsis for the dropped suffix.
	for len(names) > 0 {
		names = names[:len(names)-1]
		pathStr = "/…"
		if len(names) > 0 {
			pathStr = "/" + strings.Join(names, "/") + "/…"
		}
		prompt = username + "@" + pathStr + "> "
		if len(prompt) <= s.cfg.MaxPrompt {
			return prompt
		}
	}
	// Nothing left to drop; return what we have, truncated hard.
	if len(prompt) > s.cfg.MaxPrompt {
		return prompt[:s.cfg.MaxPrompt]
	}
	return prompt
}

// emit renders r's flags and message to the transport, then the prompt
// if requested. The message is truncated to cfg.MaxResponse bytes first,
// the bound spec.md section 3 puts on Response.message.
func (s *Shell[L]) emit(r Response) error {
	msg := r.Message
	if len(msg) > s.cfg.MaxResponse {
		msg = msg[:s.cfg.MaxResponse]
	}

	var b strings.Builder
	if r.PrefixNewline && !r.InlineMessage {
		b.WriteString("\r\n")
	}
	if r.IndentMessage && msg != "" {
		b.WriteString("  ")
	}
	b.WriteString(msg)
	if r.PostfixNewline {
		b.WriteString("\r\n")
	}
	if err := s.write(b.String()); err != nil {
		return err
	}
	if r.ShowPrompt {
		return s.writePrompt()
	}
	return nil
}
