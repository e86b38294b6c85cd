package api

import "runtime"

// Platform selects which per-platform shader variants and output trees
// apply to a staging run.
type Platform string

const (
	PlatformWindows Platform = "windows"
	PlatformDarwin  Platform = "darwin"
	// PlatformOther covers every OS without platform-specific shader
	// sources; it stages the base mapping only.
	PlatformOther Platform = "other"
)

// DetectPlatform maps the running OS onto a Platform.
func DetectPlatform() Platform {
	switch runtime.GOOS {
	case "windows":
		return PlatformWindows
	case "darwin":
		return PlatformDarwin
	default:
		return PlatformOther
	}
}

// Asset pairs one shader source file with the name of its compiled artifact.
type Asset struct {
	// Source is the path of the shader source, relative to the shader dir.
	Source string `json:"source"`
	// Output is the filename of the compiled artifact, staged into
	// <tree>/shaders/.
	Output string `json:"output"`
}

// Tree is one destination root representing a build configuration
// (debug, release, or a target triple).
type Tree struct {
	// Root of the tree, relative to the project directory.
	Root string `json:"root"`
	// IfPresent trees are staged only when Root already exists.
	IfPresent bool `json:"if_present,omitempty"`
}

// Plan is a fully resolved staging plan. It is platform-free: the
// platform-specific source selection and tree list have already been
// applied, so the stager itself never branches on the OS.
type Plan struct {
	// ShaderDir holds the shader sources and receives compiled artifacts
	// before they are copied into the trees.
	ShaderDir string `json:"shader_dir"`
	// EnvFile is copied into the root of every tree under its base name.
	EnvFile string `json:"env_file"`
	// StaticDirs are mirrored (delete-then-copy) into every tree.
	StaticDirs []string `json:"static_dirs"`
	// Assets to compile and stage, in declaration order.
	Assets []Asset `json:"assets"`
	// Trees to populate, in declaration order.
	Trees []Tree `json:"trees"`
}
