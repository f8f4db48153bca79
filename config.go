package wikidiff

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/goccy/go-yaml"

	"github.com/signadot/wikidiff/lang"
	"github.com/signadot/wikidiff/libdiff"
	"github.com/signadot/wikidiff/wikitext"
)

var ErrConfig = errors.New("invalid config")

// Duration is a time.Duration written as text, e.g. "1.5s".
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return fmt.Errorf("%w: timeout: %w", ErrConfig, err)
	}
	*d = Duration(v)
	return nil
}

type Config struct {
	// Language is the wiki language code of both revisions.
	Language string `json:"language" yaml:"language"`
	// Timeout bounds one diff; 0 means no bound.
	Timeout Duration `json:"timeout" yaml:"timeout"`
	// CollapseThreshold is the pruned node count above which diffs are
	// computed between sections only.
	CollapseThreshold int `json:"collapseThreshold" yaml:"collapseThreshold"`
	// UnnestThreshold is the unnested node count below which compound
	// nodes are unnested before diffing.
	UnnestThreshold int `json:"unnestThreshold" yaml:"unnestThreshold"`
	ChangeCost      int `json:"changeCost" yaml:"changeCost"`
	TypeChangeCost  int `json:"typeChangeCost" yaml:"typeChangeCost"`
	MaxDepth        int `json:"maxDepth" yaml:"maxDepth"`
}

func DefaultConfig() Config {
	return Config{
		Language:          lang.Default,
		Timeout:           Duration(5 * time.Second),
		CollapseThreshold: 500,
		UnnestThreshold:   1000,
		ChangeCost:        libdiff.ChangeCost,
		TypeChangeCost:    libdiff.TypeChangeCost,
		MaxDepth:          wikitext.DefaultMaxDepth,
	}
}

func (c *Config) Validate() error {
	switch {
	case c.Timeout < 0:
		return fmt.Errorf("%w: negative timeout %s", ErrConfig, time.Duration(c.Timeout))
	case c.CollapseThreshold <= 0:
		return fmt.Errorf("%w: collapseThreshold must be positive", ErrConfig)
	case c.UnnestThreshold <= 0:
		return fmt.Errorf("%w: unnestThreshold must be positive", ErrConfig)
	case c.MaxDepth <= 0:
		return fmt.Errorf("%w: maxDepth must be positive", ErrConfig)
	case c.ChangeCost <= 0 || c.ChangeCost >= libdiff.RemoveCost+libdiff.InsertCost:
		return fmt.Errorf("%w: changeCost must be in (0, %d)", ErrConfig, libdiff.RemoveCost+libdiff.InsertCost)
	case c.TypeChangeCost <= 2*(libdiff.RemoveCost+libdiff.InsertCost):
		return fmt.Errorf("%w: typeChangeCost must exceed %d", ErrConfig, 2*(libdiff.RemoveCost+libdiff.InsertCost))
	}
	return nil
}

// Patch returns c with the JSON merge patch applied.
func (c Config) Patch(patch []byte) (Config, error) {
	doc, err := json.Marshal(c)
	if err != nil {
		return c, err
	}
	merged, err := jsonpatch.MergePatch(doc, patch)
	if err != nil {
		return c, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	res := Config{}
	if err := json.Unmarshal(merged, &res); err != nil {
		return c, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	return res, nil
}

// PatchYAML is Patch with the patch given as YAML.
func (c Config) PatchYAML(doc []byte) (Config, error) {
	patch, err := yaml.YAMLToJSON(doc)
	if err != nil {
		return c, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	return c.Patch(patch)
}
