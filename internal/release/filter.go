package release

import "strings"

// ServerAssetPrefix identifies frida-server artifacts.
const ServerAssetPrefix = "frida-server-"

// FilterServerAssets returns the frida-server assets of rel in their original order.
// It returns an empty (non-nil) slice when nothing matches.
func FilterServerAssets(rel *Release) []Asset {
	return Filter{Prefix: ServerAssetPrefix}.Apply(rel.Assets)
}

// Filter selects assets by name prefix and, optionally, by platform.
type Filter struct {
	// Prefix every selected asset name must start with.
	Prefix string
	// Platforms restricts selection to names containing at least one of
	// these substrings (e.g. "android-arm64"). Empty means no restriction.
	Platforms []string
}

// Apply returns the matching assets, preserving order.
func (f Filter) Apply(assets []Asset) []Asset {
	selected := make([]Asset, 0, len(assets))
	for _, a := range assets {
		if !a.HasPrefix(f.Prefix) {
			continue
		}
		if !f.matchesPlatform(a) {
			continue
		}
		selected = append(selected, a)
	}
	return selected
}

func (f Filter) matchesPlatform(a Asset) bool {
	if len(f.Platforms) == 0 {
		return true
	}
	for _, p := range f.Platforms {
		if p != "" && strings.Contains(a.Name, p) {
			return true
		}
	}
	return false
}
