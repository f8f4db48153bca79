package encode

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/signadot/wikidiff"
	"github.com/signadot/wikidiff/aggregate"
	"github.com/signadot/wikidiff/format"
	"github.com/signadot/wikidiff/lexical"
)

type EncState struct {
	format  format.Format
	colors  *Colors
	summary bool
	name    string
}

func newState(opts []EncodeOption) *EncState {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	return es
}

// document is what structured formats write for one result.
type document struct {
	Name        string               `json:"name,omitempty" yaml:"name,omitempty"`
	Granularity wikidiff.Granularity `json:"granularity" yaml:"granularity"`
	Complete    bool                 `json:"complete" yaml:"complete"`
	Edits       []wikidiff.Edit      `json:"edits,omitempty" yaml:"edits,omitempty"`
	Text        []wikidiff.TextEdit  `json:"text,omitempty" yaml:"text,omitempty"`
	Counts      aggregate.Counts     `json:"counts" yaml:"counts"`
}

// Encode writes r to w.
func Encode(r *wikidiff.Result, w io.Writer, opts ...EncodeOption) error {
	es := newState(opts)
	if es.format.IsText() {
		return es.text(r, w)
	}
	doc := &document{
		Name:        es.name,
		Granularity: r.Granularity,
		Complete:    r.Complete,
		Counts:      r.Counts,
	}
	if !es.summary {
		doc.Edits = r.Edits
		doc.Text = r.Text
	}
	return es.structured(doc, w)
}

// EncodeTokens writes the lexical counts of one text to w.
func EncodeTokens(c lexical.Counts, w io.Writer, opts ...EncodeOption) error {
	es := newState(opts)
	if !es.format.IsText() {
		return es.structured(c, w)
	}
	cats := make([]string, 0, len(c))
	for cat := range c {
		cats = append(cats, string(cat))
	}
	sort.Strings(cats)
	for _, cat := range cats {
		toks := c[lexical.Category(cat)]
		if _, err := fmt.Fprintf(w, "%s %s\n", es.colors.attr(HeaderColor, cat),
			es.colors.attr(CountColor, fmt.Sprint(c.Total(lexical.Category(cat))))); err != nil {
			return err
		}
		if es.summary {
			continue
		}
		keys := make([]string, 0, len(toks))
		for k := range toks {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if _, err := fmt.Fprintf(w, "  %q %d\n", k, toks[k]); err != nil {
				return err
			}
		}
	}
	return nil
}

func (es *EncState) structured(v any, w io.Writer) error {
	switch {
	case es.format.IsJSON():
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case es.format.IsYAML():
		d, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		if _, err := io.WriteString(w, "---\n"); err != nil {
			return err
		}
		_, err = w.Write(d)
		return err
	}
	return fmt.Errorf("%w: %d", format.ErrBadFormat, int(es.format))
}

var actionMarks = map[aggregate.Action]string{
	aggregate.Insert: "+",
	aggregate.Remove: "-",
	aggregate.Change: "~",
	aggregate.Move:   ">",
}

func (es *EncState) text(r *wikidiff.Result, w io.Writer) error {
	c := es.colors
	tw := &textWriter{w: w}
	if es.name != "" {
		tw.printf("%s\n", c.attr(HeaderColor, "== "+es.name+" =="))
	}
	state := "complete"
	if !r.Complete {
		state = "incomplete"
	}
	tw.printf("%s %s (%s)\n", c.attr(HeaderColor, "granularity"), r.Granularity, state)
	if !es.summary {
		for i := range r.Edits {
			es.edit(tw, &r.Edits[i])
		}
		for i := range r.Text {
			es.textEdit(tw, &r.Text[i])
		}
	}
	if len(r.Counts) > 0 {
		tw.printf("%s\n", c.attr(HeaderColor, "counts"))
	}
	for _, key := range r.Counts.Keys() {
		var parts []string
		for _, a := range aggregate.Actions() {
			if n := r.Counts[key][a]; n > 0 {
				parts = append(parts, c.action(a, fmt.Sprintf("%s %d", a, n)))
			}
		}
		tw.printf("  %-12s %s\n", key, strings.Join(parts, " "))
	}
	return tw.err
}

func (es *EncState) edit(tw *textWriter, e *wikidiff.Edit) {
	c := es.colors
	head := c.action(e.Action, fmt.Sprintf("%s %s %s", actionMarks[e.Action], e.Type, e.Action))
	switch {
	case e.Prev == nil:
		tw.printf("%s %s\n", head, es.side(e.Curr))
	case e.Curr == nil:
		tw.printf("%s %s\n", head, es.side(e.Prev))
	default:
		tw.printf("%s %s -> %s\n", head, es.side(e.Prev), es.side(e.Curr))
	}
}

func (es *EncState) side(s *wikidiff.Side) string {
	return fmt.Sprintf("%s@%d %q", es.colors.attr(SectionColor, string(s.Section)), s.Offset, abbrev(s.Text, 60))
}

func (es *EncState) textEdit(tw *textWriter, te *wikidiff.TextEdit) {
	c := es.colors
	head := c.action(te.Action, fmt.Sprintf("%s Text %s", actionMarks[te.Action], te.Action))
	prev, curr := string(te.PrevSection), string(te.CurrSection)
	if prev == "" {
		prev = "-"
	}
	if curr == "" {
		curr = "-"
	}
	tw.printf("%s %s -> %s@%d\n", head, c.attr(SectionColor, prev), c.attr(SectionColor, curr), te.Offset)
	for _, s := range te.Removed {
		tw.printf("    %s\n", c.action(aggregate.Remove, fmt.Sprintf("-%q", abbrev(s, 60))))
	}
	for _, s := range te.Inserted {
		tw.printf("    %s\n", c.action(aggregate.Insert, fmt.Sprintf("+%q", abbrev(s, 60))))
	}
}

// textWriter keeps the first write error.
type textWriter struct {
	w   io.Writer
	err error
}

func (tw *textWriter) printf(f string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.w, f, args...)
}

func abbrev(s string, n int) string {
	rs := []rune(s)
	if len(rs) <= n {
		return s
	}
	return string(rs[:n-3]) + "..."
}
