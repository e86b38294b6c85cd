package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/agentic-research/stagehand/api"
	"github.com/agentic-research/stagehand/internal/compiler"
	"github.com/agentic-research/stagehand/internal/ctxlog"
	"github.com/agentic-research/stagehand/internal/journal"
	"github.com/agentic-research/stagehand/internal/manifest"
	"github.com/agentic-research/stagehand/internal/stager"
)

var (
	manifestPath string
	platformFlag string
	projectDir   string
	compilerBin  string
	journalPath  string
	verbose      bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&manifestPath, "manifest", "m", "", "Path to staging manifest (.hcl or .json); built-in defaults when empty")
	rootCmd.PersistentFlags().StringVarP(&platformFlag, "platform", "p", "auto", "Target platform: windows, darwin, other, or auto")
	rootCmd.PersistentFlags().StringVarP(&projectDir, "project", "C", ".", "Project directory holding shader and asset sources")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.Flags().StringVar(&compilerBin, "compiler", "", "Shader compiler binary (default glslangValidator)")
	rootCmd.Flags().StringVar(&journalPath, "journal", ".stagehand.db", "Staging journal path; empty disables stale-shader pruning")
}

var rootCmd = &cobra.Command{
	Use:   "stagehand",
	Short: "Stage compiled shaders and static assets into build output trees",
	Args:  cobra.NoArgs,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})))
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		m, platform, err := loadManifest()
		if err != nil {
			return err
		}
		plan := manifest.Resolve(m, platform)

		bin := compilerBin
		if bin == "" {
			bin = m.Compiler
		}

		st := &stager.Stager{
			FS:       osfs.New(projectDir),
			Compiler: &compiler.Glslang{Bin: bin, Base: projectDir},
		}

		if journalPath != "" {
			path := journalPath
			if !filepath.IsAbs(path) {
				path = filepath.Join(projectDir, path)
			}
			j, err := journal.Open(path)
			if err != nil {
				return err
			}
			defer func() { _ = j.Close() }()
			st.Journal = j
		}

		ctx := ctxlog.WithLogger(cmd.Context(), slog.Default())

		start := time.Now()
		fmt.Printf("Staging %d shaders into %d trees (%s)...\n",
			len(plan.Assets), len(plan.Trees), platform)
		if err := st.Stage(ctx, plan); err != nil {
			return err
		}
		fmt.Printf("Done in %v.\n", time.Since(start))
		return nil
	},
}

// loadManifest resolves the platform and loads the manifest named by the
// flags, falling back to the built-in defaults.
func loadManifest() (*manifest.Manifest, api.Platform, error) {
	platform, err := manifest.ParsePlatform(platformFlag)
	if err != nil {
		return nil, "", err
	}
	if manifestPath == "" {
		return manifest.Default(), platform, nil
	}
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return nil, "", err
	}
	return m, platform, nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
