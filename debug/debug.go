// Package debug holds tracing switches read once from the environment.
package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Parse    bool
	Prune    bool
	TED      bool
	Moves    bool
	Sections bool
}

var d *debug

func init() {
	d = &debug{}
	d.Parse = boolEnv("WIKIDIFF_DEBUG_PARSE")
	d.Prune = boolEnv("WIKIDIFF_DEBUG_PRUNE")
	d.TED = boolEnv("WIKIDIFF_DEBUG_TED")
	d.Moves = boolEnv("WIKIDIFF_DEBUG_MOVES")
	d.Sections = boolEnv("WIKIDIFF_DEBUG_SECTIONS")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Parse() bool {
	return d.Parse
}
func Prune() bool {
	return d.Prune
}
func TED() bool {
	return d.TED
}
func Moves() bool {
	return d.Moves
}
func Sections() bool {
	return d.Sections
}
