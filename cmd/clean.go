package cmd

import (
	"fmt"
	"os"
	"path"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/spf13/cobra"

	"github.com/agentic-research/stagehand/internal/manifest"
	"github.com/agentic-research/stagehand/internal/stager"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove staged assets from the output trees",
	Long: `Remove the staged shader, static asset, and env file entries from every
output tree in the plan. The tree roots themselves are kept: they usually
belong to the build system (cargo's target/, cmake's build dir) and hold
outputs the stager never wrote.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, platform, err := loadManifest()
		if err != nil {
			return err
		}
		plan := manifest.Resolve(m, platform)
		fs := osfs.New(projectDir)

		for _, tree := range plan.Trees {
			if _, err := fs.Stat(tree.Root); os.IsNotExist(err) {
				continue
			}
			staged := append([]string{stager.ShadersDir}, plan.StaticDirs...)
			staged = append(staged, path.Base(plan.EnvFile))
			for _, name := range staged {
				target := fs.Join(tree.Root, name)
				if err := util.RemoveAll(fs, target); err != nil {
					return fmt.Errorf("remove %s: %w", target, err)
				}
			}
			fmt.Printf("Cleaned %s\n", tree.Root)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}
