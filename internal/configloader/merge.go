package configloader

import (
	"slices"

	"github.com/yaklabco/wikispan/pkg/config"
)

// merge combines two configurations, with override taking precedence:
//   - Scalars: override wins when non-zero.
//   - Booleans: override wins only when true, so a later layer cannot unset.
//   - Name sets: union of both.
//   - Other slices: override replaces base when non-nil.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	if override.FollowSymlinks {
		result.FollowSymlinks = true
	}
	if override.Write {
		result.Write = true
	}
	if override.DryRun {
		result.DryRun = true
	}

	if !override.Names.IsZero() {
		result.Names = base.Names.Merge(override.Names)
	}

	if override.Extensions != nil {
		result.Extensions = slices.Clone(override.Extensions)
	}
	if override.Ignore != nil {
		result.Ignore = slices.Clone(override.Ignore)
	}
	if override.Categories != nil {
		result.Categories = slices.Clone(override.Categories)
	}

	return &result
}

// MergeAll merges configurations in order, later ones taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for _, cfg := range configs[1:] {
		result = merge(result, cfg)
	}
	return result
}
