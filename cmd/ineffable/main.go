// Package main is the ineffable command: it validates, merges and explains
// input binding files, and runs a live terminal demo of a configuration.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dshills/ineffable/internal/config/loader"
	"github.com/dshills/ineffable/internal/logging"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

// Exit codes.
const (
	exitOK      = 0
	exitInvalid = 1
	exitUsage   = 2
)

type command struct {
	name    string
	summary string
	run     func(args []string, stdout, stderr io.Writer) int
}

var commands []command

func init() {
	commands = []command{
		{"validate", "check binding files against declared actions", runValidate},
		{"merge", "fold binding files and print the result", runMerge},
		{"explain", "describe the action kinds and their bindings", runExplain},
		{"demo", "show live action state in the terminal", runDemo},
		{"version", "print version information", runVersion},
	}
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	setupLogging(stderr)

	if len(args) == 0 {
		usage(stderr)
		return exitUsage
	}
	switch args[0] {
	case "-h", "-help", "--help", "help":
		usage(stdout)
		return exitOK
	}
	for _, c := range commands {
		if c.name == args[0] {
			return c.run(args[1:], stdout, stderr)
		}
	}
	fmt.Fprintf(stderr, "Error: unknown command %q\n\n", args[0])
	usage(stderr)
	return exitUsage
}

// setupLogging applies INEFFABLE_LOG_LEVEL to the process logger.
func setupLogging(w io.Writer) {
	level := logging.LevelWarn
	if l, ok := loader.NewEnvLoader(loader.EnvPrefix).LogLevel(); ok {
		level = l
	}
	logging.SetDefault(logging.New(logging.Config{Level: level, Output: w, Prefix: "ineffable"}))
}

func usage(w io.Writer) {
	p := newPrinter(w)
	fmt.Fprintf(w, "ineffable - input binding tool\n\n")
	fmt.Fprintf(w, "Usage: ineffable <command> [options] [files...]\n\n")
	fmt.Fprintf(w, "Commands:\n")
	width := 0
	for _, c := range commands {
		width = max(width, displayWidth(c.name))
	}
	for _, c := range commands {
		fmt.Fprintf(w, "  %s  %s\n", p.paint(colorAccent, pad(c.name, width)), c.summary)
	}
	fmt.Fprintf(w, "\nRun 'ineffable <command> -h' for command options.\n")
	fmt.Fprintf(w, "Set %sLOG_LEVEL to debug, info, warn or error for diagnostics.\n", loader.EnvPrefix)
}

func runVersion(_ []string, stdout, _ io.Writer) int {
	fmt.Fprintf(stdout, "ineffable %s (%s)\n", version, commit)
	return exitOK
}
