package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/scott-cotton/cli"

	"github.com/signadot/wikidiff"
	"github.com/signadot/wikidiff/encode"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	if args[0] == "-" && args[1] == "-" {
		return fmt.Errorf("%w: at most one revision may be read from stdin", cli.ErrUsage)
	}
	var where *wikidiff.Where
	if cfg.Where != "" {
		if where, err = wikidiff.CompileWhere(cfg.Where); err != nil {
			return fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
	}
	tool, err := cfg.tool()
	if err != nil {
		return err
	}
	prev, err := readArg(cc, args[0])
	if err != nil {
		return fmt.Errorf("error reading %s: %w", args[0], err)
	}
	curr, err := readArg(cc, args[1])
	if err != nil {
		return fmt.Errorf("error reading %s: %w", args[1], err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	res, err := tool.Diff(ctx, prev, curr)
	if err != nil {
		return err
	}
	if where != nil {
		if res, err = res.Filter(where); err != nil {
			return err
		}
	}
	opts := append(cfg.encOpts(cc.Out), encode.EncodeSummary(cfg.Summary))
	if err := encode.Encode(res, cc.Out, opts...); err != nil {
		return err
	}
	if !res.Empty() {
		return cli.ExitCodeErr(1)
	}
	return nil
}
