package shell

import (
	"cmp"

	"github.com/marmos91/nutshell/pkg/shell/access"
	shellpath "github.com/marmos91/nutshell/pkg/shell/path"
	"github.com/marmos91/nutshell/pkg/shell/tree"
)

// resolve walks p against the tree starting from root (if p.Absolute) or
// the shell's current directory, applying the access check at every
// step. It returns the terminal node and the stack reflecting the
// traversal.
//
// Access-denied and nonexistent nodes are deliberately indistinguishable:
// both produce ErrInvalidPath, and no code path here leaks which one
// occurred.
func (s *Shell[L]) resolve(p shellpath.Path) (tree.Node[L], tree.Stack, error) {
	stack := tree.NewStack(s.cfg.MaxPathDepth)
	if p.Absolute {
		// start empty
	} else {
		stack = s.pathStack.Clone()
	}

	dir, _ := tree.Resolve(s.root, stack)
	node := tree.NewDirectoryNode(dir)

	for i, seg := range p.Segments {
		switch seg {
		case ".":
			continue
		case "..":
			stack.Pop()
			dir, _ = tree.Resolve(s.root, stack)
			node = tree.NewDirectoryNode(dir)
			continue
		default:
			child, ok := dir.FindChild(seg)
			if !ok {
				return tree.Node[L]{}, tree.Stack{}, ErrInvalidPath
			}
			if !s.levelPermits(child.Level()) {
				s.metrics.AccessDenied()
				return tree.Node[L]{}, tree.Stack{}, ErrInvalidPath
			}

			if child.IsDirectory() {
				idx := childIndex(dir, seg)
				if !stack.Push(idx) {
					return tree.Node[L]{}, tree.Stack{}, ErrPathTooDeep
				}
				dir = child.Dir
				node = child
				continue
			}

			// Command: must be the last segment.
			if i != len(p.Segments)-1 {
				return tree.Node[L]{}, tree.Stack{}, ErrInvalidPath
			}
			return child, stack, nil
		}
	}

	return node, stack, nil
}

func childIndex[L cmp.Ordered](dir *tree.Directory[L], name string) int {
	for i, c := range dir.Children {
		if c.Name() == name {
			return i
		}
	}
	return -1
}

// levelPermits applies the access check, skipping it entirely when
// authentication is disabled (there is no user to check against).
func (s *Shell[L]) levelPermits(required L) bool {
	if !s.authEnabled {
		return true
	}
	if s.user == nil {
		return false
	}
	return access.Permitted(s.user.Level, required)
}
