package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"

	"github.com/goccy/go-yaml"
	"github.com/google/gops/agent"
	"github.com/scott-cotton/cli"

	"github.com/signadot/wikidiff"
	"github.com/signadot/wikidiff/encode"
)

// Pair is one manifest entry. Relative paths are relative to the
// manifest. Lang, when set, overrides the configured language.
type Pair struct {
	Name string `yaml:"name"`
	Prev string `yaml:"prev"`
	Curr string `yaml:"curr"`
	Lang string `yaml:"lang"`
}

type pairResult struct {
	res *wikidiff.Result
	err error
}

func batch(cfg *BatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Batch.Parse(cc, args)
	if err != nil {
		cfg.Batch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: batch requires a manifest, got %v", cli.ErrUsage, args)
	}
	if cfg.J < 1 {
		return fmt.Errorf("%w: -j must be positive", cli.ErrUsage)
	}
	if cfg.Gops {
		if err := agent.Listen(agent.Options{}); err != nil {
			fmt.Fprintf(os.Stderr, "gops agent failed: %v\n", err)
		}
		defer agent.Close()
	}
	pairs, err := loadManifest(args[0])
	if err != nil {
		return err
	}
	tool, err := cfg.tool()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	results := runBatch(ctx, tool, pairs, cfg.J)

	opts := append(cfg.encOpts(cc.Out), encode.EncodeSummary(cfg.Summary))
	differ := false
	var firstErr error
	for i, pr := range results {
		if pr.err != nil {
			tool.Log.Error("pair failed", "name", pairs[i].Name, "error", pr.err)
			if firstErr == nil {
				firstErr = fmt.Errorf("%s: %w", pairs[i].Name, pr.err)
			}
			continue
		}
		if err := encode.Encode(pr.res, cc.Out, append(opts, encode.EncodeName(pairs[i].Name))...); err != nil {
			return err
		}
		differ = differ || !pr.res.Empty()
	}
	if firstErr != nil {
		return firstErr
	}
	if differ {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func loadManifest(path string) ([]Pair, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var pairs []Pair
	if err := yaml.Unmarshal(d, &pairs); err != nil {
		return nil, fmt.Errorf("error decoding manifest %s: %w", path, err)
	}
	dir := filepath.Dir(path)
	for i := range pairs {
		p := &pairs[i]
		if p.Prev == "" || p.Curr == "" {
			return nil, fmt.Errorf("manifest %s: entry %d needs prev and curr", path, i)
		}
		if p.Name == "" {
			p.Name = fmt.Sprintf("%s..%s", p.Prev, p.Curr)
		}
		if !filepath.IsAbs(p.Prev) {
			p.Prev = filepath.Join(dir, p.Prev)
		}
		if !filepath.IsAbs(p.Curr) {
			p.Curr = filepath.Join(dir, p.Curr)
		}
	}
	return pairs, nil
}

// runBatch diffs pairs on j workers. Results are in the order of pairs.
func runBatch(ctx context.Context, tool *wikidiff.Tool, pairs []Pair, j int) []pairResult {
	results := make([]pairResult, len(pairs))
	work := make(chan int)
	wg := sync.WaitGroup{}
	for range min(j, len(pairs)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range work {
				res, err := diffPair(ctx, tool, &pairs[i])
				results[i] = pairResult{res: res, err: err}
			}
		}()
	}
	for i := range pairs {
		work <- i
	}
	close(work)
	wg.Wait()
	return results
}

func diffPair(ctx context.Context, tool *wikidiff.Tool, p *Pair) (*wikidiff.Result, error) {
	prev, err := os.ReadFile(p.Prev)
	if err != nil {
		return nil, err
	}
	curr, err := os.ReadFile(p.Curr)
	if err != nil {
		return nil, err
	}
	if p.Lang != "" {
		t := *tool
		t.Config.Language = p.Lang
		tool = &t
	}
	return tool.Diff(ctx, string(prev), string(curr))
}
