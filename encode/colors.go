package encode

import (
	"strings"

	"github.com/fatih/color"

	"github.com/signadot/wikidiff/aggregate"
)

type ColorAttr int

const (
	HeaderColor ColorAttr = iota
	SectionColor
	CountColor
	DimColor
)

type Colors struct {
	Default func(string, ...any) string
	Action  map[aggregate.Action]func(string, ...any) string
	Attr    map[ColorAttr]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Action: map[aggregate.Action]func(string, ...any) string{
			aggregate.Insert: color.RGB(8, 196, 16).SprintfFunc(),
			aggregate.Remove: color.RGB(196, 64, 64).SprintfFunc(),
			aggregate.Change: color.RGB(198, 198, 46).SprintfFunc(),
			aggregate.Move:   color.RGB(128, 168, 196).SprintfFunc(),
		},
		Attr: map[ColorAttr]func(string, ...any) string{
			HeaderColor:  color.New(color.Bold).SprintfFunc(),
			SectionColor: color.RGB(74, 92, 138).SprintfFunc(),
			CountColor:   color.CyanString,
			DimColor:     color.RGB(96, 96, 96).SprintfFunc(),
		},
	}
	for k, f := range colors.Action {
		colors.Action[k] = escaped(f)
	}
	for k, f := range colors.Attr {
		colors.Attr[k] = escaped(f)
	}
	return colors
}

func escaped(f func(string, ...any) string) func(string, ...any) string {
	return func(v string, _ ...any) string {
		return f(strings.ReplaceAll(v, "%", "%%"))
	}
}

func colorDefault(v string, _ ...any) string {
	return v
}

func (c *Colors) action(a aggregate.Action, s string) string {
	if c == nil {
		return s
	}
	if f, ok := c.Action[a]; ok {
		return f(s)
	}
	return c.Default(s)
}

func (c *Colors) attr(a ColorAttr, s string) string {
	if c == nil {
		return s
	}
	if f, ok := c.Attr[a]; ok {
		return f(s)
	}
	return c.Default(s)
}
