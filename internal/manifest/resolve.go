package manifest

import (
	"fmt"
	"slices"

	"github.com/agentic-research/stagehand/api"
)

// ParsePlatform turns a CLI/platform string into an api.Platform. Empty and
// "auto" detect from the running OS.
func ParsePlatform(s string) (api.Platform, error) {
	switch s {
	case "", "auto":
		return api.DetectPlatform(), nil
	case string(api.PlatformWindows):
		return api.PlatformWindows, nil
	case string(api.PlatformDarwin):
		return api.PlatformDarwin, nil
	case string(api.PlatformOther):
		return api.PlatformOther, nil
	default:
		return "", fmt.Errorf("unknown platform %q (want windows, darwin, other, or auto)", s)
	}
}

// ResolveAssets applies the per-platform source overrides to the shader
// declarations. Pure: no filesystem access.
func ResolveAssets(m *Manifest, platform api.Platform) []api.Asset {
	assets := make([]api.Asset, 0, len(m.Shaders))
	for _, s := range m.Shaders {
		source := s.Source
		switch platform {
		case api.PlatformWindows:
			if s.Windows != "" {
				source = s.Windows
			}
		case api.PlatformDarwin:
			if s.Darwin != "" {
				source = s.Darwin
			}
		}
		assets = append(assets, api.Asset{Source: source, Output: s.Output})
	}
	return assets
}

// ResolveTrees returns the trees that apply to the platform, in declaration
// order. Pure: no filesystem access.
func ResolveTrees(m *Manifest, platform api.Platform) []api.Tree {
	trees := make([]api.Tree, 0, len(m.Trees))
	for _, t := range m.Trees {
		if len(t.Platforms) > 0 && !slices.Contains(t.Platforms, string(platform)) {
			continue
		}
		trees = append(trees, api.Tree{Root: t.Root, IfPresent: t.IfPresent})
	}
	return trees
}

// Resolve assembles the full staging plan for a platform.
func Resolve(m *Manifest, platform api.Platform) api.Plan {
	return api.Plan{
		ShaderDir:  m.ShaderDir,
		EnvFile:    m.EnvFile,
		StaticDirs: slices.Clone(m.StaticDirs),
		Assets:     ResolveAssets(m, platform),
		Trees:      ResolveTrees(m, platform),
	}
}
