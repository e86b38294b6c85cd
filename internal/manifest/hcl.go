package manifest

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// fileHCL mirrors the manifest file structure for gohcl decoding.
type fileHCL struct {
	Project *projectHCL `hcl:"project,block"`
	Shaders []shaderHCL `hcl:"shader,block"`
	Trees   []treeHCL   `hcl:"tree,block"`
}

type projectHCL struct {
	ShaderDir  string   `hcl:"shader_dir,optional"`
	EnvFile    string   `hcl:"env_file,optional"`
	Compiler   string   `hcl:"compiler,optional"`
	StaticDirs []string `hcl:"static_dirs,optional"`
}

type shaderHCL struct {
	Name    string `hcl:"name,label"`
	Source  string `hcl:"source"`
	Output  string `hcl:"output"`
	Windows string `hcl:"windows,optional"`
	Darwin  string `hcl:"darwin,optional"`
}

type treeHCL struct {
	Name      string   `hcl:"name,label"`
	Root      string   `hcl:"root"`
	Platforms []string `hcl:"platforms,optional"`
	IfPresent bool     `hcl:"if_present,optional"`
}

func parseHCL(data []byte, filename string) (*Manifest, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse manifest: %w", diags)
	}

	var decoded fileHCL
	if diags := gohcl.DecodeBody(file.Body, nil, &decoded); diags.HasErrors() {
		return nil, fmt.Errorf("decode manifest: %w", diags)
	}

	m := &Manifest{}
	if p := decoded.Project; p != nil {
		m.ShaderDir = p.ShaderDir
		m.EnvFile = p.EnvFile
		m.Compiler = p.Compiler
		m.StaticDirs = p.StaticDirs
	}
	for _, s := range decoded.Shaders {
		m.Shaders = append(m.Shaders, Shader(s))
	}
	for _, t := range decoded.Trees {
		m.Trees = append(m.Trees, Tree(t))
	}
	return m, nil
}
