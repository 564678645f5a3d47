package accounts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpansion_ToggleIsolated(t *testing.T) {
	var e Expansion
	e.Expand(3)

	e.Toggle(1)
	assert.True(t, e.IsExpanded(1))
	assert.False(t, e.IsExpanded(2), "child state must not change")
	assert.True(t, e.IsExpanded(3), "sibling state must not change")

	e.Toggle(1)
	assert.False(t, e.IsExpanded(1))
	assert.False(t, e.IsExpanded(2))
	assert.True(t, e.IsExpanded(3))
}

func TestExpansion_CollapseAll(t *testing.T) {
	var e Expansion
	e.Expand(1)
	e.Expand(2)
	require.Equal(t, 2, e.Len())

	e.CollapseAll()
	assert.Equal(t, 0, e.Len())
	assert.False(t, e.IsExpanded(1))

	// Still usable after a reset.
	e.Toggle(2)
	assert.True(t, e.IsExpanded(2))
}

func TestExpansion_ExpandAll(t *testing.T) {
	tree, err := Build(sampleChart())
	require.NoError(t, err)

	var e Expansion
	e.ExpandAll(tree)

	assert.True(t, e.IsExpanded(1))
	assert.True(t, e.IsExpanded(2))
	assert.True(t, e.IsExpanded(3))
	assert.False(t, e.IsExpanded(4), "leaves are not expanded")
	assert.Equal(t, 3, e.Len())
}
