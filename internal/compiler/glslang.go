// Package compiler invokes the external shader compiler. The compiler is
// treated as an opaque collaborator: it reads a source file and writes a
// compiled artifact next to it; nothing here parses either format.
package compiler

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/agentic-research/stagehand/internal/ctxlog"
)

// DefaultBin is the reference GLSL compiler shipped with the Vulkan SDK.
const DefaultBin = "glslangValidator"

// Compiler turns one shader source into one compiled artifact. dir is the
// working directory for the invocation, relative to the project root;
// source and output are relative to dir.
type Compiler interface {
	Compile(ctx context.Context, dir, source, output string) error
}

// Glslang runs glslangValidator (or a compatible binary) as a subprocess.
// The working directory is set per invocation instead of chdir-ing the
// process, so concurrent test cases and repeated runs stay independent.
type Glslang struct {
	// Bin is the compiler executable; DefaultBin when empty.
	Bin string
	// Base is the project directory that dir arguments are relative to.
	Base string
}

// Compile runs `<bin> -V <source> -o <output>` in Base/dir. A nonzero exit
// status is an error carrying the tool's combined output, since
// glslangValidator reports diagnostics on stdout.
func (g *Glslang) Compile(ctx context.Context, dir, source, output string) error {
	bin := g.Bin
	if bin == "" {
		bin = DefaultBin
	}

	cmd := exec.CommandContext(ctx, bin, "-V", source, "-o", output)
	cmd.Dir = filepath.Join(g.Base, dir)

	ctxlog.FromContext(ctx).Debug("compiling shader",
		"bin", bin, "dir", cmd.Dir, "source", source, "output", output)

	out, err := cmd.CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg != "" {
			return fmt.Errorf("%s %s: %s: %w", bin, source, msg, err)
		}
		return fmt.Errorf("%s %s: %w", bin, source, err)
	}
	return nil
}
