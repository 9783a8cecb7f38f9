// Package path parses the absolute/relative path strings a shell user types
// into an ordered sequence of segments. It has no filesystem semantics of
// its own: "." and ".." are preserved literally and interpreted later by
// the resolver that walks the command tree.
package path

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidPath is returned for any path string that cannot be parsed.
var ErrInvalidPath = errors.New("invalid path")

// Path is a parsed, not-yet-resolved path string.
type Path struct {
	Absolute bool
	Segments []string
}

// Parse splits s into an absolute or relative Path.
//
// Rules:
//   - a leading '/' marks the path absolute and is consumed
//   - consecutive or trailing '/' produce empty segments, which are dropped
//   - '.' and '..' are kept as literal segments; resolution interprets them
//   - a segment containing whitespace or a NUL byte is rejected
//   - more than maxDepth segments after the empty-segment collapse is rejected
func Parse(s string, maxDepth int) (Path, error) {
	absolute := strings.HasPrefix(s, "/")
	raw := s
	if absolute {
		raw = s[1:]
	}

	var segments []string
	for _, seg := range strings.Split(raw, "/") {
		if seg == "" {
			continue
		}
		if strings.ContainsAny(seg, " \t\r\n\x00") {
			return Path{}, fmt.Errorf("%w: segment %q contains whitespace or NUL", ErrInvalidPath, seg)
		}
		segments = append(segments, seg)
	}

	if len(segments) > maxDepth {
		return Path{}, fmt.Errorf("%w: path depth %d exceeds maximum %d", ErrInvalidPath, len(segments), maxDepth)
	}

	return Path{Absolute: absolute, Segments: segments}, nil
}

// String renders the path back to its canonical slash-joined form.
func (p Path) String() string {
	joined := strings.Join(p.Segments, "/")
	if p.Absolute {
		return "/" + joined
	}
	return joined
}
