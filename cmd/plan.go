package cmd

import (
	"fmt"

	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"

	"github.com/agentic-research/stagehand/internal/manifest"
)

var planJSON bool

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Print the resolved staging plan without touching the filesystem",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, platform, err := loadManifest()
		if err != nil {
			return err
		}
		plan := manifest.Resolve(m, platform)

		if planJSON {
			out, err := oj.Marshal(plan, 2)
			if err != nil {
				return fmt.Errorf("marshal plan: %w", err)
			}
			fmt.Println(string(out))
			return nil
		}

		fmt.Printf("Platform:   %s\n", platform)
		fmt.Printf("Shader dir: %s\n", plan.ShaderDir)
		fmt.Printf("Env file:   %s\n", plan.EnvFile)
		fmt.Println("Shaders:")
		for _, a := range plan.Assets {
			fmt.Printf("  %s -> shaders/%s\n", a.Source, a.Output)
		}
		fmt.Println("Static dirs:")
		for _, d := range plan.StaticDirs {
			fmt.Printf("  %s\n", d)
		}
		fmt.Println("Trees:")
		for _, t := range plan.Trees {
			if t.IfPresent {
				fmt.Printf("  %s (if present)\n", t.Root)
				continue
			}
			fmt.Printf("  %s\n", t.Root)
		}
		return nil
	},
}

func init() {
	planCmd.Flags().BoolVar(&planJSON, "json", false, "Emit the plan as JSON")
	rootCmd.AddCommand(planCmd)
}
