package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentic-research/stagehand/api"
)

func sources(assets []api.Asset) []string {
	out := make([]string, len(assets))
	for i, a := range assets {
		out[i] = a.Source
	}
	return out
}

func roots(trees []api.Tree) []string {
	out := make([]string, len(trees))
	for i, tr := range trees {
		out[i] = tr.Root
	}
	return out
}

func TestResolveAssets_PlatformOverrides(t *testing.T) {
	m := Default()

	windows := sources(ResolveAssets(m, api.PlatformWindows))
	assert.Contains(t, windows, "windows/basicShader.frag")
	assert.Contains(t, windows, "windows/basicShader_noTexture.frag")
	assert.NotContains(t, windows, "darwin/basicShader.frag")

	darwin := sources(ResolveAssets(m, api.PlatformDarwin))
	assert.Contains(t, darwin, "darwin/basicShader.frag")
	assert.NotContains(t, darwin, "windows/basicShader.frag")

	// Vertex shaders have no overrides on any platform.
	assert.Contains(t, windows, "basicShader.vert")
	assert.Contains(t, darwin, "basicShader.vert")

	other := sources(ResolveAssets(m, api.PlatformOther))
	assert.Equal(t, []string{
		"basicShader.vert",
		"basicShader_mesh.vert",
		"basicShader.frag",
		"basicShader_noTexture.frag",
	}, other)
}

func TestResolveAssets_OutputsUnaffectedByPlatform(t *testing.T) {
	m := Default()
	for _, p := range []api.Platform{api.PlatformWindows, api.PlatformDarwin, api.PlatformOther} {
		assets := ResolveAssets(m, p)
		require.Len(t, assets, len(m.Shaders))
		for i, a := range assets {
			assert.Equal(t, m.Shaders[i].Output, a.Output)
		}
	}
}

func TestResolveTrees_DarwinExtraTree(t *testing.T) {
	m := Default()

	darwin := roots(ResolveTrees(m, api.PlatformDarwin))
	assert.Contains(t, darwin, "target/x86_64-apple-darwin/release")

	for _, p := range []api.Platform{api.PlatformWindows, api.PlatformOther} {
		rs := roots(ResolveTrees(m, p))
		assert.NotContains(t, rs, "target/x86_64-apple-darwin/release", "platform %s", p)
		assert.Contains(t, rs, "target/debug")
		assert.Contains(t, rs, "target/release")
	}
}

func TestResolveTrees_KeepsIfPresentFlag(t *testing.T) {
	trees := ResolveTrees(Default(), api.PlatformOther)
	var cmake *api.Tree
	for i := range trees {
		if trees[i].Root == "cmake-build-debug/GLVK/VK" {
			cmake = &trees[i]
		}
	}
	require.NotNil(t, cmake)
	assert.True(t, cmake.IfPresent)
}

func TestParsePlatform(t *testing.T) {
	for _, name := range []string{"windows", "darwin", "other"} {
		p, err := ParsePlatform(name)
		require.NoError(t, err)
		assert.Equal(t, api.Platform(name), p)
	}

	auto, err := ParsePlatform("auto")
	require.NoError(t, err)
	assert.Equal(t, api.DetectPlatform(), auto)

	_, err = ParsePlatform("plan9")
	require.Error(t, err)
}

func TestResolve_AssemblesPlan(t *testing.T) {
	m := Default()
	plan := Resolve(m, api.PlatformOther)

	assert.Equal(t, m.ShaderDir, plan.ShaderDir)
	assert.Equal(t, m.EnvFile, plan.EnvFile)
	assert.Len(t, plan.Assets, len(m.Shaders))

	// The plan owns its static dir slice.
	plan.StaticDirs[0] = "mutated"
	assert.Equal(t, "models", m.StaticDirs[0])
}
