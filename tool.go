package wikidiff

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/signadot/wikidiff/aggregate"
	"github.com/signadot/wikidiff/ir"
	"github.com/signadot/wikidiff/lexical"
	"github.com/signadot/wikidiff/libdiff"
	"github.com/signadot/wikidiff/parse"
	"github.com/signadot/wikidiff/reconcile"
)

// Tool diffs revisions according to its Config. A Tool holds no state
// between calls and may be used from several goroutines.
type Tool struct {
	Config Config
	Log    *slog.Logger
}

func DefaultTool() *Tool {
	return &Tool{Config: DefaultConfig()}
}

func NewTool(cfg Config) (*Tool, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Tool{Config: cfg}, nil
}

func (t *Tool) log() *slog.Logger {
	if t.Log != nil {
		return t.Log
	}
	return slog.Default()
}

func (t *Tool) parseOpts() []parse.ParseOption {
	return []parse.ParseOption{
		parse.Language(t.Config.Language),
		parse.MaxDepth(t.Config.MaxDepth),
	}
}

func (t *Tool) diffOpts() []libdiff.DiffOption {
	return []libdiff.DiffOption{
		libdiff.WithChangeCost(t.Config.ChangeCost),
		libdiff.WithTypeChangeCost(t.Config.TypeChangeCost),
	}
}

// Parse builds the tree of one revision.
func (t *Tool) Parse(text string) *ir.Tree {
	return parse.Parse(text, t.parseOpts()...)
}

// Tokens counts the lexical tokens of the rendered text of markup.
func (t *Tool) Tokens(markup string) lexical.Counts {
	tree := t.Parse(markup)
	texts := make([]string, len(tree.Sections))
	for i, s := range tree.Sections {
		texts[i] = parse.SectionText(s.Raw, tree.Language)
	}
	return lexical.Count(strings.Join(texts, "\n\n"), tree.Language)
}

// Diff computes the difference between two revisions.
//
// Sections identical in both revisions are pruned first. If what is left
// exceeds the collapse threshold the diff is computed between sections;
// otherwise compound nodes are unnested when that stays under the unnest
// threshold. If the node level diff runs out of its share of the time
// budget, Diff retries between sections with what remains, and if that
// also runs out, or no time is left to reconcile the script, it returns a
// Result with no entries. Running out of time is not an error; a
// cancelled ctx is.
func (t *Tool) Diff(ctx context.Context, prev, curr string) (*Result, error) {
	cfg := &t.Config
	start := time.Now()
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(cfg.Timeout))
		defer cancel()
	}
	t1, t2 := t.Parse(prev), t.Parse(curr)
	libdiff.Prune(t1, t2)

	g := NodeGranularity
	if n := t1.Size() + t2.Size(); n > cfg.CollapseThreshold {
		t.log().Info("diffing sections", "nodes", n, "threshold", cfg.CollapseThreshold)
		libdiff.Collapse(t1)
		libdiff.Collapse(t2)
		g = SectionGranularity
	} else {
		u1, u2 := t1.Clone(), t2.Clone()
		parse.UnnestAll(u1, t.parseOpts()...)
		parse.UnnestAll(u2, t.parseOpts()...)
		if n := u1.Size() + u2.Size(); n < cfg.UnnestThreshold {
			t1, t2 = u1, u2
		} else {
			t.log().Debug("not unnesting", "nodes", n, "threshold", cfg.UnnestThreshold)
		}
	}

	complete := true
	script, err := t.diffRung(ctx, g, t1, t2)
	if errors.Is(err, libdiff.ErrTimeout) && g == NodeGranularity {
		t.log().Warn("node diff timed out", "nodes", t1.Size()+t2.Size(), "budget", time.Duration(cfg.Timeout))
		libdiff.Collapse(t1)
		libdiff.Collapse(t2)
		g, complete = SectionGranularity, false
		script, err = t.diffRung(ctx, g, t1, t2)
	}
	if errors.Is(err, libdiff.ErrTimeout) {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		t.log().Warn("section diff timed out", "sections", len(t1.Sections)+len(t2.Sections), "budget", time.Duration(cfg.Timeout))
		return noResult(), nil
	}
	if err != nil {
		return nil, err
	}
	res, err := t.finish(ctx, g, complete, script)
	if err != nil {
		return nil, err
	}
	t.log().Debug("diff", "granularity", g, "edits", len(res.Edits), "text", len(res.Text), "elapsed", time.Since(start))
	return res, nil
}

// finish turns a finished script into a Result. Reconciling renders
// the text of every affected section, so it is not started once ctx is
// done.
func (t *Tool) finish(ctx context.Context, g Granularity, complete bool, script *libdiff.EditScript) (*Result, error) {
	if err := ctx.Err(); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		t.log().Warn("no time left to reconcile", "granularity", g, "budget", time.Duration(t.Config.Timeout))
		return noResult(), nil
	}
	libdiff.DetectMoves(script)
	return newResult(g, complete, reconcile.Reconcile(script)), nil
}

func noResult() *Result {
	return &Result{Granularity: NoGranularity, Complete: false, Counts: aggregate.Counts{}}
}

// diffRung runs one diff of the degrade ladder. The node level rung gets
// three quarters of the remaining budget so the section level rung can
// still run after it.
func (t *Tool) diffRung(ctx context.Context, g Granularity, t1, t2 *ir.Tree) (*libdiff.EditScript, error) {
	if dl, ok := ctx.Deadline(); ok && g == NodeGranularity {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Until(dl)*3/4)
		defer cancel()
	}
	return libdiff.Diff(ctx, t1, t2, t.diffOpts()...)
}
