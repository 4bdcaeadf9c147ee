package stage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStageNode_FilePathClearedWhenFileRemoved(t *testing.T) {
	file := filepath.Join(t.TempDir(), "AccountService.cls")
	require.NoError(t, os.WriteFile(file, []byte("public class AccountService {}"), 0644))

	node := NewComponentNode("AccountService", file)
	assert.Equal(t, file, node.FilePath())
	assert.Equal(t, IconLocal, node.Icon)

	require.NoError(t, os.Remove(file))

	assert.Empty(t, node.FilePath())
	assert.Equal(t, IconRemote, node.Icon)

	// stays cleared even if the file comes back
	require.NoError(t, os.WriteFile(file, []byte(""), 0644))
	assert.Empty(t, node.FilePath())
}

func TestStageNode_SetFilePath(t *testing.T) {
	node := NewComponentNode("AccountService", "")
	assert.Equal(t, IconRemote, node.Icon)

	file := filepath.Join(t.TempDir(), "AccountService.cls")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	node.SetFilePath(file)
	assert.Equal(t, IconLocal, node.Icon)

	node.SetFilePath("")
	assert.Equal(t, IconRemote, node.Icon)
}

func TestStageNode_TypeNodeHasNoIcon(t *testing.T) {
	group := NewTypeNode("Apex Classes", "ApexClass")
	group.SetFilePath("/does/not/exist")

	assert.Equal(t, IconNone, group.Icon)
	assert.True(t, group.IsTypeNode())
}

func TestStageNode_AddChild(t *testing.T) {
	group := NewTypeNode("Apex Classes", "ApexClass")
	child := NewComponentNode("A", "")

	group.AddChild(child)

	assert.Same(t, group, child.Parent)
	require.Len(t, group.Children, 1)
	assert.Same(t, child, group.Children[0])
	require.Len(t, child.Command.Arguments, 1)
	assert.Same(t, child, child.Command.Arguments[0])
}
