package main

import (
	"log/slog"
	"os"

	"github.com/agentic-research/stagehand/cmd"
)

func main() {
	// Minimal logger until the root command configures the real one.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	cmd.Execute()
}
