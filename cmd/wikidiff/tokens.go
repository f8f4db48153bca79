package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/signadot/wikidiff/encode"
)

func tokens(cfg *TokensConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Tokens.Parse(cc, args)
	if err != nil {
		cfg.Tokens.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: tokens takes at most 1 arg, got %v", cli.ErrUsage, args)
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
	opts := append(cfg.encOpts(cc.Out), encode.EncodeSummary(cfg.Summary))
	return encode.EncodeTokens(tool.Tokens(text), cc.Out, opts...)
}
