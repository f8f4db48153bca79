package main

import (
	"runtime"

	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format: text/t, json/j, yaml/y",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "wikidiff").
		WithSynopsis("wikidiff [opts] command [opts]").
		WithDescription("wikidiff compares two revisions of a wiki article.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return wikidiffMain(cfg, cc, args)
		}).
		WithSubs(
			DiffCommand(cfg),
			TreeCommand(cfg),
			TokensCommand(cfg),
			BatchCommand(cfg))
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("diff").
		WithAliases("d", "di").
		WithOpts(opts...).
		WithSynopsis("diff [-where expr] [-summary] prev curr").
		WithDescription("diff two revisions; either may be - for stdin").
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
	cfg.Diff = cmd
	return cmd
}

func TreeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &TreeConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("tree").
		WithAliases("t").
		WithOpts(opts...).
		WithSynopsis("tree [-unnest] [file]").
		WithDescription("print the node tree of a revision").
		WithRun(func(cc *cli.Context, args []string) error {
			return tree(cfg, cc, args)
		})
	cfg.Tree = cmd
	return cmd
}

func TokensCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &TokensConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("tokens").
		WithAliases("tok").
		WithOpts(opts...).
		WithSynopsis("tokens [-summary] [file]").
		WithDescription("count the lexical tokens of the text of a revision").
		WithRun(func(cc *cli.Context, args []string) error {
			return tokens(cfg, cc, args)
		})
	cfg.Tokens = cmd
	return cmd
}

func BatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &BatchConfig{MainConfig: mainCfg, J: runtime.GOMAXPROCS(0)}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("batch").
		WithAliases("b").
		WithOpts(opts...).
		WithSynopsis("batch [-j n] [-gops] [-summary] manifest.yaml").
		WithDescription("diff the revision pairs listed in a manifest").
		WithRun(func(cc *cli.Context, args []string) error {
			return batch(cfg, cc, args)
		})
	cfg.Batch = cmd
	return cmd
}
