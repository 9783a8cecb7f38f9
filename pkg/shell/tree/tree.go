// Package tree holds the const, read-only command directory tree: metadata
// for leaf commands, the directories that group them, and the two-variant
// node type that lets a single ordered slice hold either.
//
// Node deliberately avoids an interface with a method set per variant
// (a trait-object equivalent) so that whole trees can be built as package
// level composite literals — the Go analogue of Rust const-initialized
// static data. See SPEC_FULL.md section A.
package tree

import (
	"cmp"
	"fmt"
)

// Kind distinguishes how a command is dispatched.
type Kind int

const (
	// Sync commands are dispatched via Handler.ExecuteSync and never suspend.
	Sync Kind = iota
	// Async commands require the async entrypoint and Handler.ExecuteAsync.
	Async
)

func (k Kind) String() string {
	if k == Async {
		return "async"
	}
	return "sync"
}

// CommandMeta is pure, read-only metadata for one leaf command. It carries
// no behavior; execution is looked up by ID against a user-supplied Handler.
type CommandMeta[L cmp.Ordered] struct {
	// ID is the handler-dispatch key passed to Handler.ExecuteSync/Async.
	ID string
	// Name is the display and path-match key (must be unique among siblings).
	Name string
	// Description is the one-line text shown by ls/?.
	Description string
	// Level is the minimum access level required to resolve this command.
	Level L
	// Kind selects the dispatch entrypoint.
	Kind Kind
	// MinArgs/MaxArgs bound accepted argument counts (inclusive).
	MinArgs int
	MaxArgs int
}

// Directory groups child nodes under a name. The tree has no mutable state:
// Children is fixed at construction and its order is preserved verbatim for
// listing and completion.
type Directory[L cmp.Ordered] struct {
	Name     string
	Children []Node[L]
	Level    L
}

// NodeKind tags which variant a Node holds.
type NodeKind int

const (
	KindCommand NodeKind = iota
	KindDirectory
)

// Node is a tagged union of *CommandMeta or *Directory. Exactly one of
// Command/Dir is non-nil, matching Kind.
type Node[L cmp.Ordered] struct {
	Kind    NodeKind
	Command *CommandMeta[L]
	Dir     *Directory[L]
}

// NewCommandNode wraps a CommandMeta as a Node.
func NewCommandNode[L cmp.Ordered](c *CommandMeta[L]) Node[L] {
	return Node[L]{Kind: KindCommand, Command: c}
}

// NewDirectoryNode wraps a Directory as a Node.
func NewDirectoryNode[L cmp.Ordered](d *Directory[L]) Node[L] {
	return Node[L]{Kind: KindDirectory, Dir: d}
}

// Name projects the variant's name.
func (n Node[L]) Name() string {
	if n.Kind == KindCommand {
		return n.Command.Name
	}
	return n.Dir.Name
}

// Level projects the variant's required access level.
func (n Node[L]) Level() L {
	if n.Kind == KindCommand {
		return n.Command.Level
	}
	return n.Dir.Level
}

// IsDirectory reports whether n wraps a Directory.
func (n Node[L]) IsDirectory() bool {
	return n.Kind == KindDirectory
}

// FindChild does a case-sensitive linear scan for a child named name.
// Ordering in Children is never touched; it is the tree author's
// responsibility to declare children in the order they should be listed.
func (d *Directory[L]) FindChild(name string) (Node[L], bool) {
	for _, child := range d.Children {
		if child.Name() == name {
			return child, true
		}
	}
	return Node[L]{}, false
}

// ErrDuplicateName and ErrReservedName are returned by Validate.
var (
	ErrDuplicateName = fmt.Errorf("tree: duplicate sibling name")
	ErrReservedName  = fmt.Errorf("tree: name collides with a reserved keyword")
)

// Validate walks root checking the two invariants spec.md section 3
// fixes on the tree: no two siblings share a name, and no child name
// collides with reserved. It is meant to be called once, at Shell
// construction, against a tree that is otherwise never mutated again.
func Validate[L cmp.Ordered](root *Directory[L], reserved []string) error {
	return validateDir(root, reserved)
}

func validateDir[L cmp.Ordered](dir *Directory[L], reserved []string) error {
	seen := make(map[string]struct{}, len(dir.Children))
	for _, child := range dir.Children {
		name := child.Name()
		if _, dup := seen[name]; dup {
			return fmt.Errorf("%w: %q under %q", ErrDuplicateName, name, dir.Name)
		}
		seen[name] = struct{}{}

		for _, r := range reserved {
			if name == r {
				return fmt.Errorf("%w: %q under %q", ErrReservedName, name, dir.Name)
			}
		}

		if child.IsDirectory() {
			if err := validateDir(child.Dir, reserved); err != nil {
				return err
			}
		}
	}
	return nil
}
