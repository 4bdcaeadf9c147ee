package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"sfstage/internal/cli"
	"sfstage/internal/cli/commands"
	"sfstage/internal/config"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:          "sfstage",
		Short:        "Stage Salesforce metadata and run LWC tests",
		Long:         `Keep a tree of Salesforce metadata components staged for deployment, write package.xml manifests from it, and run Lightning Web Component Jest tests in parallel.`,
		Version:      version,
		SilenceUsage: true,
	}

	// Load config for the project in the working directory
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = rootCmd.ExecuteContext(ctx)
	stop()
	cmds.Close()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
