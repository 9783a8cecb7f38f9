// Package completion implements prefix matching over a directory's
// children for tab completion, access-filtered the same way path
// resolution is.
//
// Suggest's signature never changes based on whether completion is
// enabled: callers always call it and pass the enabled flag through;
// when disabled it simply returns no matches, so call sites stay free
// of conditional branching on the feature.
package completion

import (
	"cmp"
	"errors"
	"strings"

	"github.com/marmos91/nutshell/pkg/shell/access"
	"github.com/marmos91/nutshell/pkg/shell/tree"
)

// MaxSuggestions bounds the number of matches Suggest ever returns.
const MaxSuggestions = 32

// ErrBufferFull is returned when a prefix matches more than MaxSuggestions
// children.
var ErrBufferFull = errors.New("completion: too many matches")

// Suggest returns, in tree-declaration order, the names of dir's children
// whose name starts with prefix and whose access level is held by level.
// When authEnabled is false the access filter is skipped entirely (there
// is no user to check against). When enabled is false (completion
// feature disabled) Suggest always returns a nil slice.
func Suggest[L cmp.Ordered](dir *tree.Directory[L], prefix string, level L, authEnabled, enabled bool) ([]string, error) {
	if !enabled || dir == nil {
		return nil, nil
	}

	var matches []string
	for _, child := range dir.Children {
		if authEnabled && !access.Permitted(level, child.Level()) {
			continue
		}
		if !strings.HasPrefix(child.Name(), prefix) {
			continue
		}
		matches = append(matches, child.Name())
		if len(matches) > MaxSuggestions {
			return nil, ErrBufferFull
		}
	}
	return matches, nil
}
