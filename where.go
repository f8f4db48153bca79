package wikidiff

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/signadot/wikidiff/ir"
)

// Where selects the entries of a Result with a boolean expression over
// the variables
//
//	type         node type name, "Text" for text edits
//	action       "insert", "remove", "change" or "move"
//	section      section id, the current one when there is one
//	prevSection  section id in the previous revision, or ""
//	currSection  section id in the current revision, or ""
//	text         raw node text, or the changed text fragments
//	offset       rune offset within the section
//
// for example `type == "Template" && action != "move"`.
type Where struct {
	src string
	prg *vm.Program
}

func whereEnv() map[string]any {
	return map[string]any{
		"type":        "",
		"action":      "",
		"section":     "",
		"prevSection": "",
		"currSection": "",
		"text":        "",
		"offset":      0,
	}
}

func CompileWhere(src string) (*Where, error) {
	prg, err := expr.Compile(src, expr.Env(whereEnv()), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("where %q: %w", src, err)
	}
	return &Where{src: src, prg: prg}, nil
}

func (w *Where) String() string {
	return w.src
}

func (w *Where) match(env map[string]any) (bool, error) {
	res, err := expr.Run(w.prg, env)
	if err != nil {
		return false, fmt.Errorf("where %q: %w", w.src, err)
	}
	b, _ := res.(bool)
	return b, nil
}

func editEnv(e *Edit) map[string]any {
	env := whereEnv()
	env["type"] = e.Type.String()
	env["action"] = string(e.Action)
	s := e.Curr
	if e.Prev != nil {
		env["prevSection"] = string(e.Prev.Section)
		s = e.Prev
	}
	if e.Curr != nil {
		env["currSection"] = string(e.Curr.Section)
		s = e.Curr
	}
	env["section"] = string(s.Section)
	env["text"] = s.Text
	env["offset"] = s.Offset
	return env
}

func textEnv(te *TextEdit) map[string]any {
	env := whereEnv()
	env["type"] = ir.TextType.String()
	env["action"] = string(te.Action)
	env["prevSection"] = string(te.PrevSection)
	env["currSection"] = string(te.CurrSection)
	env["section"] = string(te.CurrSection)
	if te.CurrSection == "" {
		env["section"] = string(te.PrevSection)
	}
	env["text"] = strings.Join(append(append([]string(nil), te.Removed...), te.Inserted...), " ")
	env["offset"] = te.Offset
	return env
}

// Filter returns a copy of r holding the entries w selects, with counts
// recomputed from them.
func (r *Result) Filter(w *Where) (*Result, error) {
	res := &Result{
		Granularity: r.Granularity,
		Complete:    r.Complete,
		lang:        r.lang,
	}
	for i := range r.Edits {
		ok, err := w.match(editEnv(&r.Edits[i]))
		if err != nil {
			return nil, err
		}
		if ok {
			res.Edits = append(res.Edits, r.Edits[i])
		}
	}
	for i := range r.Text {
		ok, err := w.match(textEnv(&r.Text[i]))
		if err != nil {
			return nil, err
		}
		if ok {
			res.Text = append(res.Text, r.Text[i])
		}
	}
	res.recount()
	return res, nil
}
