package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/signadot/wikidiff/parse"
)

func tree(cfg *TreeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Tree.Parse(cc, args)
	if err != nil {
		cfg.Tree.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: tree takes at most 1 arg, got %v", cli.ErrUsage, args)
	}
	arg := "-"
	if len(args) == 1 {
		arg = args[0]
	}
	tool, err := cfg.tool()
	if err != nil {
		return err
	}
	text, err := readArg(cc, arg)
	if err != nil {
		return fmt.Errorf("error reading %s: %w", arg, err)
	}
	t := tool.Parse(text)
	if cfg.Unnest {
		n := parse.UnnestAll(t, parse.MaxDepth(tool.Config.MaxDepth))
		tool.Log.Debug("unnested", "nodes", n)
	}
	return t.Dump(cc.Out)
}
