package shell

import (
	"context"

	"github.com/marmos91/nutshell/pkg/shell/parser"
)

// ProcessChar feeds one character through the shell for synchronous
// dispatch only: a command resolving to Kind=Async produces
// ErrAsyncNotSupported instead of being executed.
func (s *Shell[L]) ProcessChar(ctx context.Context, c rune) error {
	return s.processChar(ctx, c, false)
}

// ProcessCharAsync feeds one character through the shell, permitting
// dispatch of both Kind=Sync and Kind=Async commands. The caller's
// Handler must additionally implement AsyncHandler for async commands to
// resolve.
func (s *Shell[L]) ProcessCharAsync(ctx context.Context, c rune) error {
	return s.processChar(ctx, c, true)
}

func (s *Shell[L]) processChar(ctx context.Context, c rune, allowAsync bool) error {
	if s.state == Inactive {
		return nil
	}

	ev := s.parser.Step(c, &s.buffer)

	var err error
	switch s.state {
	case LoggedOut:
		err = s.processLoggedOut(ctx, ev)
	case LoggedIn:
		err = s.processLoggedIn(ctx, ev, allowAsync)
	}
	if err != nil {
		return err
	}

	// The deferred-flush pattern (spec.md section 5/6): async transports
	// only buffer inside PutChar, so ProcessCharAsync's one additional
	// suspension point (besides ExecuteAsync) is here, after a char's
	// writes have been queued.
	if allowAsync {
		if f, ok := s.io.(Flusher); ok {
			return f.Flush(ctx)
		}
	}
	return nil
}

// processLoggedOut restricts input to line editing plus Enter; Tab and
// history navigation do not exist before login. Characters typed after
// the first ':' are echoed masked.
func (s *Shell[L]) processLoggedOut(ctx context.Context, ev parser.Event) error {
	switch ev.Kind {
	case parser.Character:
		return s.write(string(s.loginEcho()))
	case parser.Backspace:
		return s.write("\b \b")
	case parser.Enter:
		return s.handleLogin(ctx)
	case parser.ClearAndRedraw:
		return s.write("\r\n" + s.cfg.LoginPrompt)
	default:
		return nil
	}
}

// loginEcho returns the character to echo for the rune the parser just
// appended to the buffer: literal before the username/password
// separator, '*' once a ':' has already been seen.
func (s *Shell[L]) loginEcho() rune {
	if len(s.buffer) == 0 {
		return ' '
	}
	typed := s.buffer[len(s.buffer)-1]
	for _, r := range s.buffer[:len(s.buffer)-1] {
		if r == ':' {
			return '*'
		}
	}
	return typed
}

// processLoggedIn handles the full line-editing and dispatch surface:
// character echo, tab completion, history recall, and Enter dispatch.
func (s *Shell[L]) processLoggedIn(ctx context.Context, ev parser.Event, allowAsync bool) error {
	switch ev.Kind {
	case parser.Character:
		return s.write(string(ev.Char))
	case parser.Backspace:
		return s.write("\b \b")
	case parser.Tab:
		return s.handleTab(ctx)
	case parser.UpArrow:
		return s.handleHistoryNav(true)
	case parser.DownArrow:
		return s.handleHistoryNav(false)
	case parser.ClearAndRedraw:
		s.hist.Reset()
		s.historyPrimed = false
		return s.write("\r\n" + s.renderPrompt())
	case parser.Enter:
		return s.handleEnter(ctx, allowAsync)
	default:
		return nil
	}
}
