package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/signadot/wikidiff"
	"github.com/signadot/wikidiff/encode"
	"github.com/signadot/wikidiff/format"
)

// ConfigPatchEnv names the environment variable holding a JSON merge
// patch for the diff config. It applies after -config and before -set.
const ConfigPatchEnv = "WIKIDIFF_CONFIG_PATCH"

type MainConfig struct {
	Color   bool   `cli:"name=color desc='encode with color'"`
	Config  string `cli:"name=config desc='YAML diff config file'"`
	Set     string `cli:"name=set desc='JSON merge patch applied to the diff config'"`
	Lang    string `cli:"name=lang desc='language code of the revisions'"`
	Timeout string `cli:"name=timeout desc='time budget of one diff, e.g. 2s'"`
	V       bool   `cli:"name=v desc='log debug messages'"`

	OutFormat *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

// diffConfig layers the defaults, the -config file, the environment
// patch, -set and finally -lang and -timeout.
func (cfg *MainConfig) diffConfig() (wikidiff.Config, error) {
	res := wikidiff.DefaultConfig()
	var err error
	if cfg.Config != "" {
		d, err := os.ReadFile(cfg.Config)
		if err != nil {
			return res, err
		}
		if res, err = res.PatchYAML(d); err != nil {
			return res, fmt.Errorf("%s: %w", cfg.Config, err)
		}
	}
	if p := os.Getenv(ConfigPatchEnv); p != "" {
		if res, err = res.Patch([]byte(p)); err != nil {
			return res, fmt.Errorf("%s: %w", ConfigPatchEnv, err)
		}
	}
	if cfg.Set != "" {
		if res, err = res.Patch([]byte(cfg.Set)); err != nil {
			return res, fmt.Errorf("%w: -set: %w", cli.ErrUsage, err)
		}
	}
	if cfg.Lang != "" {
		res.Language = cfg.Lang
	}
	if cfg.Timeout != "" {
		d, err := time.ParseDuration(cfg.Timeout)
		if err != nil {
			return res, fmt.Errorf("%w: -timeout: %w", cli.ErrUsage, err)
		}
		res.Timeout = wikidiff.Duration(d)
	}
	return res, res.Validate()
}

func (cfg *MainConfig) tool() (*wikidiff.Tool, error) {
	dc, err := cfg.diffConfig()
	if err != nil {
		return nil, err
	}
	tool, err := wikidiff.NewTool(dc)
	if err != nil {
		return nil, err
	}
	tool.Log = newLog(cfg.V)
	return tool, nil
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	var f format.Format
	if cfg.OutFormat != nil {
		f = *cfg.OutFormat
	}
	res := []encode.EncodeOption{
		encode.EncodeFormat(f),
	}
	if cfg.Color {
		res = append(res, encode.EncodeColors(encode.NewColors()))
		return res
	}
	colorsSet := false
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		colorsSet = opt.Value != nil
		break
	}
	if colorsSet {
		return res
	}
	file, ok := w.(*os.File)
	if !ok {
		return res
	}
	if isatty.IsTerminal(file.Fd()) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

type DiffConfig struct {
	*MainConfig
	Where   string `cli:"name=where desc='only report edits matching the expression'"`
	Summary bool   `cli:"name=summary desc='only report counts'"`

	Diff *cli.Command
}

type TreeConfig struct {
	*MainConfig
	Unnest bool `cli:"name=unnest desc='unnest compound nodes'"`

	Tree *cli.Command
}

type TokensConfig struct {
	*MainConfig
	Summary bool `cli:"name=summary desc='only report totals'"`

	Tokens *cli.Command
}

type BatchConfig struct {
	*MainConfig
	J       int  `cli:"name=j desc='number of concurrent diffs'"`
	Gops    bool `cli:"name=gops desc='start a gops diagnostics agent'"`
	Summary bool `cli:"name=summary desc='only report counts'"`

	Batch *cli.Command
}
