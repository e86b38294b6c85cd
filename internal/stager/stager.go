// Package stager populates build output trees with compiled shaders,
// mirrored static asset directories, and the environment file. It operates
// on an abstract filesystem and an abstract compiler so the whole procedure
// runs against memfs and a fake compiler in tests.
package stager

import (
	"context"
	"os"
	"path"
	"slices"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/agentic-research/stagehand/api"
	"github.com/agentic-research/stagehand/internal/compiler"
	"github.com/agentic-research/stagehand/internal/ctxlog"
	"github.com/agentic-research/stagehand/internal/journal"
)

// ShadersDir is the fixed name of the compiled-shader subdirectory in
// every output tree.
const ShadersDir = "shaders"

// Stager stages one resolved plan into its output trees.
type Stager struct {
	// FS is rooted at the project directory. All plan paths are relative
	// to it.
	FS billy.Filesystem
	// Compiler produces the artifacts named by the plan's assets.
	Compiler compiler.Compiler
	// Journal, when non-nil, enables pruning of shader outputs staged by a
	// previous run but absent from the current plan. Without it the
	// shaders directory is overlay-copied only.
	Journal *journal.Journal
}

// Stage compiles every asset, then populates every tree in plan order.
//
// Failure policy is fail-fast throughout: the first compile error aborts
// the run before any tree is modified, and the first filesystem error
// aborts the remaining trees. Re-running after a fix is the recovery path;
// the whole operation is idempotent.
func (s *Stager) Stage(ctx context.Context, plan api.Plan) error {
	if err := s.compileAll(ctx, plan); err != nil {
		return err
	}

	log := ctxlog.FromContext(ctx)
	for _, tree := range plan.Trees {
		if tree.IfPresent {
			if _, err := s.FS.Stat(tree.Root); err != nil {
				log.Info("skipping absent tree", "root", tree.Root)
				continue
			}
		}
		if err := s.stageTree(ctx, plan, tree); err != nil {
			return err
		}
		log.Info("staged tree", "root", tree.Root)
	}
	return nil
}

// compileAll invokes the compiler for every asset and verifies that each
// invocation actually produced its artifact.
func (s *Stager) compileAll(ctx context.Context, plan api.Plan) error {
	for _, asset := range plan.Assets {
		src := s.FS.Join(plan.ShaderDir, asset.Source)
		if _, err := s.FS.Stat(src); err != nil {
			if os.IsNotExist(err) {
				return &StagingError{Op: OpCompile, Path: src, Err: ErrSourceMissing}
			}
			return &StagingError{Op: OpCompile, Path: src, Err: err}
		}

		if err := s.Compiler.Compile(ctx, plan.ShaderDir, asset.Source, asset.Output); err != nil {
			return &StagingError{
				Op:   OpCompile,
				Path: src,
				Err:  joinErr(ErrCompileFailed, err),
			}
		}

		out := s.FS.Join(plan.ShaderDir, asset.Output)
		if _, err := s.FS.Stat(out); err != nil {
			return &StagingError{
				Op:   OpCompile,
				Path: out,
				Err:  joinErr(ErrCompileFailed, err),
			}
		}
	}
	return nil
}

// stageTree runs steps 3-6 of the staging procedure for a single tree:
// ensure shape, stage shaders, stage the env file, mirror static dirs.
func (s *Stager) stageTree(ctx context.Context, plan api.Plan, tree api.Tree) error {
	for _, dir := range append([]string{ShadersDir}, plan.StaticDirs...) {
		p := s.FS.Join(tree.Root, dir)
		if err := s.FS.MkdirAll(p, 0o755); err != nil {
			return &StagingError{Op: OpMkdir, Path: p, Err: err}
		}
	}

	if err := s.stageShaders(ctx, plan, tree); err != nil {
		return err
	}

	dst := s.FS.Join(tree.Root, path.Base(plan.EnvFile))
	if err := s.copyFile(plan.EnvFile, dst); err != nil {
		return err
	}

	for _, dir := range plan.StaticDirs {
		if err := s.mirror(dir, s.FS.Join(tree.Root, dir)); err != nil {
			return err
		}
	}
	return nil
}

// stageShaders overlay-copies the compiled artifacts into <tree>/shaders,
// then reconciles against the journal: outputs recorded by the previous
// run but absent from the current plan are removed.
func (s *Stager) stageShaders(ctx context.Context, plan api.Plan, tree api.Tree) error {
	current := make([]string, 0, len(plan.Assets))
	for _, asset := range plan.Assets {
		src := s.FS.Join(plan.ShaderDir, asset.Output)
		dst := s.FS.Join(tree.Root, ShadersDir, asset.Output)
		if err := s.copyFile(src, dst); err != nil {
			return err
		}
		current = append(current, asset.Output)
	}

	if s.Journal == nil {
		return nil
	}

	previous, err := s.Journal.Recorded(tree.Root)
	if err != nil {
		return err
	}
	log := ctxlog.FromContext(ctx)
	for _, name := range previous {
		if slices.Contains(current, name) {
			continue
		}
		stale := s.FS.Join(tree.Root, ShadersDir, name)
		if err := s.FS.Remove(stale); err != nil && !os.IsNotExist(err) {
			return &StagingError{Op: OpRemove, Path: stale, Err: err}
		}
		log.Debug("pruned stale shader", "path", stale)
	}
	return s.Journal.Record(tree.Root, current)
}

// copyFile copies src to dst, overwriting dst. A missing src surfaces as
// ErrSourceMissing.
func (s *Stager) copyFile(src, dst string) error {
	data, err := util.ReadFile(s.FS, src)
	if err != nil {
		if os.IsNotExist(err) {
			return &StagingError{Op: OpCopy, Path: src, Err: ErrSourceMissing}
		}
		return &StagingError{Op: OpCopy, Path: src, Err: err}
	}
	if err := util.WriteFile(s.FS, dst, data, 0o644); err != nil {
		return &StagingError{Op: OpCopy, Path: dst, Err: err}
	}
	return nil
}
