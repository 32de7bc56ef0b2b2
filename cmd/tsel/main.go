package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"tsel/internal/cli"
	"tsel/internal/cli/commands"
	"tsel/internal/config"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:   "tsel",
		Short: "CI test selector",
		Long: `Select the test files a CI job should run for the latest commit.
Changed source files are mapped to their tests, an optional LLM is asked for
more, and only test files that exist inside the project are written out.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Create initial config with defaults
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Execute root command
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
