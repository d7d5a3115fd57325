// Package cmd implements the CLI command structure for taskgroups.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nibzard/taskgroups/internal/config"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the taskgroups CLI.
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("taskgroups", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return versionCommand(stdout)
	}

	// If no args or first arg is a flag, use "list" as default
	subcommand := "list"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	app := &app{ctx: ctx, cws: cws, cfg: cws.Config, stdout: stdout, stderr: stderr}

	switch subcommand {
	case "list", "ls":
		return app.listCommand(remainingArgs)
	case "show":
		return app.showCommand(remainingArgs)
	case "dry-run":
		return app.dryRunCommand(remainingArgs)
	case "check":
		return app.checkCommand(remainingArgs)
	case "config":
		return app.configCommand(remainingArgs)
	case "version":
		return versionCommand(stdout)
	case "help":
		printUsage(fs, stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// versionCommand prints the version.
func versionCommand(w io.Writer) error {
	fmt.Fprintf(w, "taskgroups version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "taskgroups - collect tagged tasks into group tasks")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  taskgroups [options] [command]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  list [-json]     List registered groups and aliases (default command)")
	fmt.Fprintln(w, "  show <task>      Print the expansion of a task")
	fmt.Fprintln(w, "  dry-run <task>   Walk a task, running empty-group placeholders")
	fmt.Fprintln(w, "  check            Validate the task file against the tag schema")
	fmt.Fprintln(w, "  config [-example] Show effective configuration and its sources")
	fmt.Fprintln(w, "  version          Show version information")
	fmt.Fprintln(w, "  help             Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
}
