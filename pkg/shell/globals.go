package shell

import (
	"strings"

	"github.com/marmos91/nutshell/pkg/shell/response"
	"github.com/marmos91/nutshell/pkg/shell/tree"
)

// reservedKeywords preempt path parsing entirely; no tree node at any
// depth may share one of these names (spec.md section 3's tree
// invariant), checked once by tree.Validate at Shell construction.
var reservedKeywords = []string{"?", "ls", "help", "logout", "clear"}

// listCurrentDirectory implements "?"/"ls": the accessible children of
// the current directory, in tree-declaration order, access-filtered.
func (s *Shell[L]) listCurrentDirectory() Response {
	dir, _ := tree.Resolve(s.root, s.pathStack)

	var b strings.Builder
	first := true
	for _, child := range dir.Children {
		if !s.levelPermits(child.Level()) {
			continue
		}
		if !first {
			b.WriteString("\r\n")
		}
		first = false

		b.WriteString("  ")
		b.WriteString(child.Name())
		if child.IsDirectory() {
			b.WriteString("/")
		}
		// Directories carry no description (spec.md section 3's
		// Directory has no such field); only commands get one.
		if !child.IsDirectory() {
			b.WriteString("   ")
			b.WriteString(child.Command.Description)
		}
	}

	r := response.Success(b.String())
	r.IndentMessage = false // each line is already indented above
	return r
}

// help lists the reserved global commands; "logout" appears only when
// authentication is enabled.
func (s *Shell[L]) help() Response {
	lines := []struct{ name, desc string }{
		{"?", "List the current directory"},
		{"ls", "List the current directory"},
		{"help", "Show this help text"},
	}
	if s.authEnabled {
		lines = append(lines, struct{ name, desc string }{"logout", "End the current session"})
	}
	lines = append(lines, struct{ name, desc string }{"clear", "Clear the screen"})

	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			b.WriteString("\r\n")
		}
		b.WriteString("  ")
		b.WriteString(l.name)
		b.WriteString("   ")
		b.WriteString(l.desc)
	}

	r := response.Success(b.String())
	r.IndentMessage = false
	return r
}

// clearScreen emits the terminal clear-and-home sequence. It is the only
// escape sequence the core emits beyond plain newlines.
func (s *Shell[L]) clearScreen() Response {
	r := response.Success("\x1b[2J\x1b[H")
	r.IndentMessage = false
	r.PrefixNewline = false
	r.PostfixNewline = false
	return r
}
