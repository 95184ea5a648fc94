package config

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/gypcmake/internal/ctxlog"
	"github.com/specialistvlad/gypcmake/internal/deps"
	"github.com/specialistvlad/gypcmake/internal/target"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// fileRoot is the decoded shape of a settings file.
type fileRoot struct {
	MinimumVersion   *string         `hcl:"cmake_minimum_version,optional"`
	Configurations   []string        `hcl:"configurations,optional"`
	HeaderExtensions []string        `hcl:"header_extensions,optional"`
	Policy           *string         `hcl:"generated_library_policy,optional"`
	GeneratedRoot    *generatedBlock `hcl:"generated_root,block"`
	Families         []*familyBlock  `hcl:"family,block"`
	Remain           hcl.Body        `hcl:",remain"`
}

type generatedBlock struct {
	Placeholder *string `hcl:"placeholder,optional"`
	Prefix      *string `hcl:"prefix,optional"`
	Token       *string `hcl:"token,optional"`
}

type familyBlock struct {
	Name       string   `hcl:"name,label"`
	Extensions []string `hcl:"extensions"`
}

// evalContext exposes the defaults and a handful of functions to settings
// files.
func evalContext(base *Settings) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"default_configurations":    stringList(Default().Configurations),
			"default_header_extensions": stringList(Default().HeaderExtensions),
			"current_configurations":    stringList(base.Configurations),
		},
		Functions: map[string]function.Function{
			"concat":   stdlib.ConcatFunc,
			"distinct": stdlib.DistinctFunc,
			"upper":    stdlib.UpperFunc,
			"lower":    stdlib.LowerFunc,
		},
	}
}

func stringList(items []string) cty.Value {
	if len(items) == 0 {
		return cty.ListValEmpty(cty.String)
	}
	vals := make([]cty.Value, len(items))
	for i, s := range items {
		vals[i] = cty.StringVal(s)
	}
	return cty.ListVal(vals)
}

// Load layers the settings file at path over base and returns the result.
// base is not modified.
func Load(ctx context.Context, path string, base *Settings) (*Settings, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading settings file.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse settings file %s: %w", path, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(file.Body, evalContext(base), &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode settings file %s: %w", path, diags)
	}
	// Anything left over is an unknown attribute or block.
	if _, diags := root.Remain.Content(&hcl.BodySchema{}); diags.HasErrors() {
		return nil, fmt.Errorf("unknown setting in %s: %w", path, diags)
	}

	s := base.Clone()
	if root.MinimumVersion != nil {
		s.MinimumVersion = *root.MinimumVersion
	}
	if root.Configurations != nil {
		s.Configurations = root.Configurations
	}
	if root.HeaderExtensions != nil {
		s.HeaderExtensions = root.HeaderExtensions
	}
	if root.Policy != nil {
		p, err := deps.ParsePolicy(*root.Policy)
		if err != nil {
			return nil, fmt.Errorf("settings file %s: %w", path, err)
		}
		s.Policy = p
	}
	if g := root.GeneratedRoot; g != nil {
		if g.Placeholder != nil {
			s.Placeholder = *g.Placeholder
		}
		if g.Prefix != nil {
			s.GeneratedPrefix = *g.Prefix
		}
		if g.Token != nil {
			s.Token = *g.Token
		}
	}
	for _, f := range root.Families {
		s.Families[target.Family(f.Name)] = f.Extensions
	}

	logger.Debug("Settings file applied.", "configurations", s.Configurations, "families", len(s.Families), "policy", s.Policy.String())
	return s, nil
}
