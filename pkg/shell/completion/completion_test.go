package completion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/nutshell/pkg/shell/tree"
)

type level int

const (
	guest level = iota
	user
	admin
)

func sampleDir() *tree.Directory[level] {
	status := &tree.CommandMeta[level]{ID: "status", Name: "status", Level: guest, Kind: tree.Sync}
	storage := &tree.CommandMeta[level]{ID: "storage", Name: "storage", Level: guest, Kind: tree.Sync}
	system := &tree.Directory[level]{Name: "system", Level: admin}
	return &tree.Directory[level]{
		Children: []tree.Node[level]{
			tree.NewCommandNode(status),
			tree.NewCommandNode(storage),
			tree.NewDirectoryNode(system),
		},
	}
}

func TestSuggest(t *testing.T) {
	dir := sampleDir()

	t.Run("MatchesPrefixInDeclarationOrder", func(t *testing.T) {
		matches, err := Suggest(dir, "st", guest, true, true)
		require.NoError(t, err)
		assert.Equal(t, []string{"status", "storage"}, matches)
	})

	t.Run("FiltersByAccessLevel", func(t *testing.T) {
		matches, err := Suggest(dir, "sys", user, true, true)
		require.NoError(t, err)
		assert.Empty(t, matches)
	})

	t.Run("SkipsAccessCheckWhenAuthDisabled", func(t *testing.T) {
		matches, err := Suggest(dir, "sys", guest, false, true)
		require.NoError(t, err)
		assert.Equal(t, []string{"system"}, matches)
	})

	t.Run("NoMatchesReturnsEmpty", func(t *testing.T) {
		matches, err := Suggest(dir, "zzz", guest, true, true)
		require.NoError(t, err)
		assert.Empty(t, matches)
	})

	t.Run("DisabledFeatureAlwaysEmpty", func(t *testing.T) {
		matches, err := Suggest(dir, "", guest, true, false)
		require.NoError(t, err)
		assert.Empty(t, matches)
	})

	t.Run("NilDirectoryIsEmpty", func(t *testing.T) {
		matches, err := Suggest[level](nil, "", guest, true, true)
		require.NoError(t, err)
		assert.Empty(t, matches)
	})

	t.Run("OverflowReturnsBufferFull", func(t *testing.T) {
		many := &tree.Directory[level]{}
		for i := 0; i < MaxSuggestions+1; i++ {
			c := &tree.CommandMeta[level]{ID: "c", Name: "c" + string(rune('a'+i)), Level: guest, Kind: tree.Sync}
			many.Children = append(many.Children, tree.NewCommandNode(c))
		}
		_, err := Suggest(many, "c", guest, true, true)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrBufferFull)
	})
}
