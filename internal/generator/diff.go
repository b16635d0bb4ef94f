package generator

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// WriteDiff writes a line diff turning before into after. Removed lines are
// prefixed with "-", added lines with "+" and unchanged lines with " ".
func WriteDiff(w io.Writer, before, after []byte, colored bool) error {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(string(before), string(after))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	del := fmt.Sprint
	ins := fmt.Sprint
	if colored {
		red, green := color.New(color.FgRed), color.New(color.FgGreen)
		red.EnableColor()
		green.EnableColor()
		del, ins = red.Sprint, green.Sprint
	}

	for _, d := range diffs {
		var prefix string
		paint := fmt.Sprint
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix, paint = "-", del
		case diffmatchpatch.DiffInsert:
			prefix, paint = "+", ins
		default:
			prefix = " "
		}
		for _, line := range splitLines(d.Text) {
			if _, err := fmt.Fprintln(w, paint(prefix+line)); err != nil {
				return err
			}
		}
	}
	return nil
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
