package manifest

import (
	"fmt"

	"github.com/ohler55/ojg/oj"
)

// parseJSON decodes the JSON manifest form. The shape mirrors the HCL one:
//
//	{
//	  "project": {"shader_dir": "...", "env_file": "...", "static_dirs": [...]},
//	  "shaders": [{"name": "...", "source": "...", "output": "...", "windows": "...", "darwin": "..."}],
//	  "trees":   [{"name": "...", "root": "...", "platforms": [...], "if_present": true}]
//	}
func parseJSON(data []byte) (*Manifest, error) {
	parsed, err := oj.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	root, ok := parsed.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("parse manifest: top level must be an object, got %T", parsed)
	}

	m := &Manifest{}
	if project, ok := root["project"].(map[string]any); ok {
		m.ShaderDir = str(project, "shader_dir")
		m.EnvFile = str(project, "env_file")
		m.Compiler = str(project, "compiler")
		m.StaticDirs = strs(project, "static_dirs")
	}
	if shaders, ok := root["shaders"].([]any); ok {
		for i, entry := range shaders {
			obj, ok := entry.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("parse manifest: shaders[%d] must be an object", i)
			}
			m.Shaders = append(m.Shaders, Shader{
				Name:    str(obj, "name"),
				Source:  str(obj, "source"),
				Output:  str(obj, "output"),
				Windows: str(obj, "windows"),
				Darwin:  str(obj, "darwin"),
			})
		}
	}
	if trees, ok := root["trees"].([]any); ok {
		for i, entry := range trees {
			obj, ok := entry.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("parse manifest: trees[%d] must be an object", i)
			}
			ifPresent, _ := obj["if_present"].(bool)
			m.Trees = append(m.Trees, Tree{
				Name:      str(obj, "name"),
				Root:      str(obj, "root"),
				Platforms: strs(obj, "platforms"),
				IfPresent: ifPresent,
			})
		}
	}
	return m, nil
}

func str(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}

func strs(obj map[string]any, key string) []string {
	list, ok := obj[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, v := range list {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
