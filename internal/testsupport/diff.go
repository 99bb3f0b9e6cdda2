// Package testsupport gives the concurrency test suite readable
// failure output: a colorized unified diff between an expected and an
// actual result set, instead of testify's default dump of two large
// slices — line-oriented comparison of sorted string sets rather than
// free-form document text.
package testsupport

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/mcuadros/go-defaults"
)

// TestingT is the subset of *testing.T this package needs, so tests
// can pass a *testing.T or a *testing.B interchangeably.
type TestingT interface {
	Errorf(format string, args ...interface{})
}

// Options controls SetDiffer's rendering. The zero value (via
// NewSetDiffer) disables color, which is what CI log output wants;
// enable it for local runs where a TTY will render it.
type Options struct {
	EnableColors bool `default:"false"`
}

// SetDiffer renders a unified diff between two string sets when they
// don't match, reporting through t.Errorf.
type SetDiffer struct {
	t    TestingT
	opts Options
}

// NewSetDiffer builds a SetDiffer with EnableColors defaulted via
// mcuadros/go-defaults.
func NewSetDiffer(t TestingT) *SetDiffer {
	opts := Options{}
	defaults.SetDefaults(&opts)
	return &SetDiffer{t: t, opts: opts}
}

// WithColors toggles colorized diff output and returns the receiver
// for chaining.
func (d *SetDiffer) WithColors(enable bool) *SetDiffer {
	d.opts.EnableColors = enable
	return d
}

// AssertEqualSets reports a test failure with a unified diff if
// expected and actual, compared as sorted multisets (order is
// immaterial; a duplicate counts as an extra element and is listed in
// the diff), are not identical. Both slices are sorted into a
// newline-joined block before diffing, so the output lines up element
// by element instead of as two opaque blobs.
func (d *SetDiffer) AssertEqualSets(expected, actual []string) {
	exp := sortedCopy(expected)
	act := sortedCopy(actual)

	expText := strings.Join(exp, "\n")
	actText := strings.Join(act, "\n")
	if expText == actText {
		return
	}

	edits := myers.ComputeEdits("", expText, actText)
	unified := gotextdiff.ToUnified("expected", "actual", expText, edits)
	rendered := fmt.Sprint(unified)

	if d.opts.EnableColors {
		rendered = colorizeUnified(rendered)
	}

	d.t.Errorf("result set mismatch (expected %d items, got %d):\n%s",
		len(expected), len(actual), rendered)
}

func sortedCopy(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	sort.Strings(out)
	return out
}

func colorizeUnified(diff string) string {
	red := color.New(color.FgRed)
	red.EnableColor()
	green := color.New(color.FgGreen)
	green.EnableColor()
	cyan := color.New(color.FgCyan)
	cyan.EnableColor()
	yellow := color.New(color.FgYellow)
	yellow.EnableColor()

	lines := strings.Split(diff, "\n")
	colorized := make([]string, 0, len(lines))
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "---") || strings.HasPrefix(line, "+++"):
			colorized = append(colorized, yellow.Sprint(line))
		case strings.HasPrefix(line, "@@"):
			colorized = append(colorized, cyan.Sprint(line))
		case strings.HasPrefix(line, "-"):
			colorized = append(colorized, red.Sprint(line))
		case strings.HasPrefix(line, "+"):
			colorized = append(colorized, green.Sprint(line))
		default:
			colorized = append(colorized, line)
		}
	}
	return strings.Join(colorized, "\n")
}
