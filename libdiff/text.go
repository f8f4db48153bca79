package libdiff

import (
	"strings"
	"unicode/utf8"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// TextDelta summarizes a character level diff between two texts.
type TextDelta struct {
	// Offset is the rune offset in the previous text of the first
	// difference.
	Offset   int
	Removed  []string
	Inserted []string
}

// DiffText returns the delta between from and to, or nil if they are
// equal.
func DiffText(from, to string) *TextDelta {
	if from == to {
		return nil
	}
	diffCfg := diffpatch.New()
	doMultiLine := strings.Contains(from, "\n") && strings.Contains(to, "\n")
	diffs := diffCfg.DiffMain(from, to, doMultiLine)
	diffs = diffCfg.DiffCleanupSemantic(diffs)
	res := &TextDelta{Offset: -1}
	ri := 0
	for i := range diffs {
		diff := &diffs[i]
		switch diff.Type {
		case diffpatch.DiffInsert:
			if res.Offset < 0 {
				res.Offset = ri
			}
			res.Inserted = append(res.Inserted, diff.Text)
		case diffpatch.DiffDelete:
			if res.Offset < 0 {
				res.Offset = ri
			}
			res.Removed = append(res.Removed, diff.Text)
			ri += utf8.RuneCountInString(diff.Text)
		case diffpatch.DiffEqual:
			ri += utf8.RuneCountInString(diff.Text)
		}
	}
	if res.Offset < 0 {
		return nil
	}
	return res
}
