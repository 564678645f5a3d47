// Package code handles dot-segmented account codes such as "1.1.0".
package code

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Format is the human-readable shape of a valid code.
const Format = "X.X.X"

var pattern = regexp.MustCompile(`^\d+(\.\d+)*$`)

// Valid reports whether s is a dot-separated list of numeric segments.
func Valid(s string) bool {
	return pattern.MatchString(s)
}

// Code is a parsed account code.
type Code struct {
	raw      string
	segments []int
}

// Parse parses "1.1.0" into its segments.
func Parse(s string) (Code, error) {
	if !Valid(s) {
		return Code{}, fmt.Errorf("invalid account code %q: expected format %s", s, Format)
	}

	parts := strings.Split(s, ".")
	segs := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Code{}, fmt.Errorf("invalid segment %q in account code %q: %w", p, s, err)
		}
		segs[i] = n
	}
	return Code{raw: s, segments: segs}, nil
}

// String returns the code as written.
func (c Code) String() string {
	return c.raw
}

// Segments returns a copy of the numeric segments.
func (c Code) Segments() []int {
	out := make([]int, len(c.segments))
	copy(out, c.segments)
	return out
}

// Depth is the number of segments.
func (c Code) Depth() int {
	return len(c.segments)
}

// SelectChild returns the code suggested when a parent is picked in the tree.
// "1.1" -> "1.1.0"
func SelectChild(parent string) string {
	return parent + ".0"
}

// AddChildPrefix returns the code stub offered by "add child", awaiting a suffix.
// "1.1" -> "1.1."
func AddChildPrefix(parent string) string {
	return parent + "."
}
