package ir

import (
	"slices"
	"strconv"
	"strings"
)

// Path returns the location of node i as "$", a section field, then
// child indices, e.g. $.'1: History'[2][0]. Ids with characters other
// than letters, digits and underscores are quoted.
func (t *Tree) Path(i int) string {
	if i == Root || i == NoNode {
		return "$"
	}
	n := &t.Nodes[i]
	if n.Parent == Root && n.Type == SectionType {
		return "$." + quoteField(string(n.Section))
	}
	k := slices.Index(t.ChildrenOf(n.Parent), i)
	return t.Path(n.Parent) + "[" + strconv.Itoa(k) + "]"
}

func quoteField(f string) string {
	if f != "" && strings.IndexFunc(f, func(r rune) bool {
		return !(r == '_' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z')
	}) == -1 {
		return f
	}
	return "'" + strings.ReplaceAll(f, "'", "\\'") + "'"
}
