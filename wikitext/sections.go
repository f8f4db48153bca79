package wikitext

// RawSection is a heading and the text up to the next heading of any
// level. The first section of a document is the lede: it has no heading
// and Level 0.
type RawSection struct {
	Title    string
	Level    int
	Raw      string
	Offset   int
	Elements []Element
}

// SplitSections groups elems, as returned by Parse(src), into sections.
// The lede is always present, possibly empty.
func SplitSections(src string, elems []Element) []RawSection {
	res := []RawSection{{}}
	for _, e := range elems {
		if e.Kind == KHeading {
			res = append(res, RawSection{Title: e.Name, Level: e.Level, Offset: e.Offset})
		}
		cur := &res[len(res)-1]
		cur.Elements = append(cur.Elements, e)
	}
	for i := range res {
		end := len(src)
		if i+1 < len(res) {
			end = res[i+1].Offset
		}
		res[i].Raw = src[res[i].Offset:end]
	}
	return res
}
