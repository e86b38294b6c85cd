// Package manifest loads the declarative staging manifest and resolves it
// into a platform-free plan. Manifests are HCL by default; a JSON form with
// the same shape is accepted for generated configs.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
)

// Shader declares one compile unit: a source file, the artifact name, and
// optional per-platform source overrides.
type Shader struct {
	Name   string
	Source string
	Output string
	// Windows and Darwin, when set, replace Source on that platform.
	Windows string
	Darwin  string
}

// Tree declares one output tree.
type Tree struct {
	Name string
	Root string
	// Platforms restricts the tree to the named platforms; empty means all.
	Platforms []string
	// IfPresent trees are staged only when the root already exists.
	IfPresent bool
}

// Manifest is the decoded, format-independent staging configuration.
type Manifest struct {
	ShaderDir  string
	EnvFile    string
	Compiler   string
	StaticDirs []string
	Shaders    []Shader
	Trees      []Tree
}

// Default returns the built-in manifest: the basic shader set compiled into
// debug and release trees, a Darwin-only cross-target tree, and an
// if-present cmake tree.
func Default() *Manifest {
	m := &Manifest{
		Shaders: []Shader{
			{Name: "vert", Source: "basicShader.vert", Output: "vert.spv"},
			{Name: "mesh", Source: "basicShader_mesh.vert", Output: "basicShader_mesh.spv"},
			{
				Name:    "frag",
				Source:  "basicShader.frag",
				Output:  "frag.spv",
				Windows: "windows/basicShader.frag",
				Darwin:  "darwin/basicShader.frag",
			},
			{
				Name:    "no-texture",
				Source:  "basicShader_noTexture.frag",
				Output:  "basicShader_noTexture.spv",
				Windows: "windows/basicShader_noTexture.frag",
				Darwin:  "darwin/basicShader_noTexture.frag",
			},
		},
		Trees: []Tree{
			{Name: "debug", Root: "target/debug"},
			{Name: "release", Root: "target/release"},
			{
				Name:      "darwin-release",
				Root:      "target/x86_64-apple-darwin/release",
				Platforms: []string{"darwin"},
			},
			{Name: "cmake", Root: "cmake-build-debug/GLVK/VK", IfPresent: true},
		},
	}
	applyDefaults(m)
	return m
}

// Load reads a manifest file, picking the decoder from the extension.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m *Manifest
	switch ext := filepath.Ext(path); ext {
	case ".hcl":
		m, err = parseHCL(data, path)
	case ".json":
		m, err = parseJSON(data)
	default:
		return nil, fmt.Errorf("unsupported manifest format %q (want .hcl or .json)", ext)
	}
	if err != nil {
		return nil, err
	}

	applyDefaults(m)
	if err := m.validate(); err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	return m, nil
}

func applyDefaults(m *Manifest) {
	if m.ShaderDir == "" {
		m.ShaderDir = "shaders"
	}
	if m.EnvFile == "" {
		m.EnvFile = ".env"
	}
	if len(m.StaticDirs) == 0 {
		m.StaticDirs = []string{"models", "resource", "textures"}
	}
}

// validate enforces the mapping invariants: every shader names a source and
// an output, and output names are unique within a tree.
func (m *Manifest) validate() error {
	seen := make(map[string]string, len(m.Shaders))
	for _, s := range m.Shaders {
		if s.Source == "" {
			return fmt.Errorf("shader %q: missing source", s.Name)
		}
		if s.Output == "" {
			return fmt.Errorf("shader %q: missing output", s.Name)
		}
		if prev, ok := seen[s.Output]; ok {
			return fmt.Errorf("shader %q: output %q already produced by shader %q", s.Name, s.Output, prev)
		}
		seen[s.Output] = s.Name
	}
	for _, t := range m.Trees {
		if t.Root == "" {
			return fmt.Errorf("tree %q: missing root", t.Name)
		}
	}
	return nil
}
