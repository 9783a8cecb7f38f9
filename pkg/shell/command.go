package shell

import (
	"context"
	"strings"

	"github.com/marmos91/nutshell/pkg/shell/completion"
	shellpath "github.com/marmos91/nutshell/pkg/shell/path"
	"github.com/marmos91/nutshell/pkg/shell/response"
	"github.com/marmos91/nutshell/pkg/shell/tree"
)

// handleEnter processes a completed input line: the reserved global
// commands first, then path resolution and handler dispatch. The trimmed
// line is appended to history only when dispatch succeeds.
func (s *Shell[L]) handleEnter(ctx context.Context, allowAsync bool) error {
	line := strings.TrimSpace(string(s.buffer))
	s.buffer = s.buffer[:0]
	s.hist.Reset()
	s.historyPrimed = false

	if line == "" {
		return s.write("\r\n" + s.renderPrompt())
	}

	fields := strings.Fields(line)
	head, args := fields[0], fields[1:]

	var resp Response
	var dispatchErr error

	switch {
	case len(args) > s.cfg.MaxArgs:
		dispatchErr = tooManyArguments(s.cfg.MaxArgs, len(args))
	case head == "?" || head == "ls":
		resp = s.listCurrentDirectory()
	case head == "help":
		resp = s.help()
	case head == "logout" && s.authEnabled:
		resp = s.logout()
	case head == "clear":
		resp = s.clearScreen()
	default:
		resp, dispatchErr = s.dispatchPath(ctx, head, args, allowAsync)
	}

	if dispatchErr != nil {
		resp = response.Error(asShellError(dispatchErr).Message)
	} else if !resp.ExcludeFromHistory {
		s.hist.Add(line)
	}

	if err := s.emit(resp); err != nil {
		return err
	}
	if head == "logout" && s.authEnabled && dispatchErr == nil {
		return s.write(s.cfg.LoginPrompt)
	}
	return nil
}

// dispatchPath resolves head against the command tree and, on a
// directory, updates the current path; on a command, validates the
// argument count and dispatches to the Handler.
func (s *Shell[L]) dispatchPath(ctx context.Context, head string, args []string, allowAsync bool) (Response, error) {
	p, err := shellpath.Parse(head, s.cfg.MaxPathDepth)
	if err != nil {
		return Response{}, ErrInvalidPath
	}

	node, stack, err := s.resolve(p)
	if err != nil {
		return Response{}, err
	}

	if node.IsDirectory() {
		if len(args) != 0 {
			return Response{}, invalidArgCount(0, 0, len(args))
		}
		s.pathStack = stack
		// spec.md section 4.8 step 6: navigating into a directory emits
		// no message line, just the newline that closes the submitted
		// command and the redrawn prompt -- not a second blank line for
		// a message that was never there.
		r := response.Empty()
		r.PostfixNewline = false
		return r, nil
	}

	cmd := node.Command
	if len(args) < cmd.MinArgs || len(args) > cmd.MaxArgs {
		return Response{}, invalidArgCount(cmd.MinArgs, cmd.MaxArgs, len(args))
	}

	s.metrics.CommandDispatched(cmd.ID)

	if cmd.Kind == tree.Async {
		if !allowAsync {
			return Response{}, ErrAsyncNotSupported
		}
		ah, ok := s.handler.(AsyncHandler)
		if !ok {
			return Response{}, ErrAsyncNotSupported
		}
		resp, err := ah.ExecuteAsync(ctx, cmd.ID, args)
		if err != nil {
			return Response{}, asShellError(err)
		}
		return resp, nil
	}

	resp, err := s.handler.ExecuteSync(ctx, cmd.ID, args)
	if err != nil {
		return Response{}, asShellError(err)
	}
	return resp, nil
}

// currentLevel returns the held access level for completion/listing
// filters: the logged-in user's level, or the zero value of L when
// authentication is disabled (in which case it is never consulted).
func (s *Shell[L]) currentLevel() L {
	if s.user != nil {
		return s.user.Level
	}
	var zero L
	return zero
}

// handleTab implements completion: the buffer is split on the last '/'
// into a directory prefix (resolved against the tree, access-checked
// like any other path) and a partial name matched against that
// directory's children. A buffer with no '/' completes against the
// current directory; a buffer ending in '/' completes all children of
// the named directory. Mid-argument completion (a buffer already
// containing whitespace) is not supported.
func (s *Shell[L]) handleTab(ctx context.Context) error {
	line := string(s.buffer)
	if strings.ContainsAny(line, " \t") {
		return nil
	}

	prefix, base, partial, ok := s.completionBase(line)
	if !ok {
		return nil
	}

	matches, err := completion.Suggest(base, partial, s.currentLevel(), s.authEnabled, s.cfg.CompletionEnabled)
	if err != nil {
		resp := response.Error(asShellError(err).Message)
		return s.emit(resp)
	}

	switch len(matches) {
	case 0:
		return nil
	case 1:
		return s.completeSingle(prefix, base, matches[0])
	default:
		return s.listMatches(base, matches)
	}
}

// completionBase splits line into the directory-prefix string that
// precedes the last '/' (kept verbatim so it can be re-prepended to the
// completed buffer) and the partial name being typed, then resolves the
// prefix against the tree. An empty prefix means "current directory";
// a line ending in '/' means "list this directory", partial = "".
func (s *Shell[L]) completionBase(line string) (prefix string, base *tree.Directory[L], partial string, ok bool) {
	switch {
	case line == "":
		dir, _ := tree.Resolve(s.root, s.pathStack)
		return "", dir, "", true
	case strings.HasSuffix(line, "/"):
		prefix, partial = line, ""
	default:
		idx := strings.LastIndexByte(line, '/')
		if idx < 0 {
			dir, _ := tree.Resolve(s.root, s.pathStack)
			return "", dir, line, true
		}
		prefix, partial = line[:idx+1], line[idx+1:]
	}

	p, err := shellpath.Parse(prefix, s.cfg.MaxPathDepth)
	if err != nil {
		return "", nil, "", false
	}
	node, _, err := s.resolve(p)
	if err != nil || !node.IsDirectory() {
		return "", nil, "", false
	}
	return prefix, node.Dir, partial, true
}

// completeSingle replaces the partial name in the buffer with the sole
// match, keeping the directory prefix verbatim, and appends a trailing
// slash when it names a directory or a space otherwise, then redraws the
// input line in place.
func (s *Shell[L]) completeSingle(prefix string, base *tree.Directory[L], name string) error {
	child, _ := base.FindChild(name)
	suffix := " "
	if child.IsDirectory() {
		suffix = "/"
	}

	old := len(s.buffer)
	newLine := prefix + name + suffix
	s.buffer = []rune(newLine)
	return s.write(strings.Repeat("\b \b", old) + newLine)
}

// listMatches prints every candidate on its own indented line below the
// current input, a blank line, then redraws the prompt and the
// in-progress buffer unchanged.
func (s *Shell[L]) listMatches(base *tree.Directory[L], matches []string) error {
	var b strings.Builder
	b.WriteString("\r\n")
	for _, m := range matches {
		child, _ := base.FindChild(m)
		b.WriteString("  ")
		b.WriteString(m)
		if child.IsDirectory() {
			b.WriteString("/")
		}
		b.WriteString("\r\n")
	}
	b.WriteString("\r\n")
	b.WriteString(s.renderPrompt())
	b.WriteString(string(s.buffer))
	return s.write(b.String())
}

// handleHistoryNav moves the recall cursor and redraws the input line
// with the recalled entry, saving the in-progress buffer on the first
// Up of a navigation run so Down can restore it.
func (s *Shell[L]) handleHistoryNav(up bool) error {
	if !s.historyPrimed {
		s.hist.SaveCurrent(string(s.buffer))
		s.historyPrimed = true
	}

	var line string
	var ok bool
	if up {
		line, ok = s.hist.Previous()
	} else {
		line, ok = s.hist.Next()
	}
	if !ok {
		return nil
	}
	if !s.hist.Navigating() {
		s.historyPrimed = false
	}

	old := len(s.buffer)
	s.buffer = []rune(line)
	return s.write(strings.Repeat("\b \b", old) + line)
}
