package code

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValid(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"1", true},
		{"1.1.0", true},
		{"10.02.300", true},
		{"", false},
		{"abc", false},
		{"1.", false},
		{".1", false},
		{"1..2", false},
		{"1.a", false},
		{" 1.1", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Valid(tt.input), "Valid(%q)", tt.input)
	}
}

func TestParse(t *testing.T) {
	c, err := Parse("1.2.30")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 30}, c.Segments())
	assert.Equal(t, 3, c.Depth())
	assert.Equal(t, "1.2.30", c.String())
}

func TestParse_Invalid(t *testing.T) {
	for _, s := range []string{"", "x", "1.", "1.1.x"} {
		_, err := Parse(s)
		assert.Error(t, err, "Parse(%q) should fail", s)
	}
}

func TestSegmentsIsCopy(t *testing.T) {
	c, err := Parse("1.1")
	require.NoError(t, err)
	segs := c.Segments()
	segs[0] = 9
	assert.Equal(t, []int{1, 1}, c.Segments())
}

func TestChildSuggestions(t *testing.T) {
	assert.Equal(t, "1.1.0", SelectChild("1.1"))
	assert.Equal(t, "1.1.", AddChildPrefix("1.1"))
	assert.True(t, Valid(SelectChild("1.1")))
	assert.False(t, Valid(AddChildPrefix("1.1")), "add-child stub awaits a suffix")
}
