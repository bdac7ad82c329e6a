package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dshills/ineffable/internal/action"
	"github.com/dshills/ineffable/internal/config"
	"github.com/dshills/ineffable/internal/config/layer"
	"github.com/dshills/ineffable/internal/config/loader"
	"github.com/dshills/ineffable/internal/ineffable"
	"github.com/dshills/ineffable/internal/report"
)

// loadStack loads every file into its own layer. Later files have higher
// priority; the first file is merged with MergeReplace and the rest with
// mode.
func loadStack(l *loader.Loader, files []string, mode config.MergeMode) (*layer.Stack, *report.Report, error) {
	stack := layer.NewStack()
	rep := report.New()
	for i, path := range files {
		cfg, fileRep, err := l.Load(path)
		rep.Merge(fileRep)
		if err != nil {
			return nil, rep, err
		}
		lay := layer.NewLayerWithConfig(path, layer.SourceFile, layer.PriorityFile+i, cfg)
		lay.Path = path
		if i > 0 {
			lay.Mode = mode
		}
		stack.AddLayer(lay)
	}
	return stack, rep, nil
}

func loadRegistry(l *loader.Loader, path string, cfg *config.InputConfig) (*action.Registry, *report.Report, error) {
	if path == "" {
		return loader.InferRegistry(cfg), report.New(), nil
	}
	return l.LoadRegistry(path, nil)
}

func runValidate(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	registryPath := fs.String("registry", "", "file declaring actions under [actions.<Group>]")
	appendMode := fs.Bool("append", false, "append later files' bindings instead of replacing them")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: ineffable validate [-registry file] [-append] config...\n\n")
		fmt.Fprintf(stderr, "Without -registry, action kinds are inferred from the bindings.\n\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return exitUsage
	}

	mode := config.MergeReplace
	if *appendMode {
		mode = config.MergeAppend
	}

	l := loader.New(nil)
	stack, rep, err := loadStack(l, fs.Args(), mode)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}
	cfg := stack.Effective()

	reg, regRep, err := loadRegistry(l, *registryPath, cfg)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}
	rep.Merge(regRep)
	rep.Merge(ineffable.Validate(reg, cfg))

	newPrinter(stdout).printReport(rep)
	if rep.HasErrors() {
		return exitInvalid
	}
	return exitOK
}

func runMerge(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("merge", flag.ContinueOnError)
	fs.SetOutput(stderr)
	formatName := fs.String("format", "toml", "output format: toml, yaml or json")
	output := fs.String("o", "", "write to file instead of stdout; the extension selects the format")
	appendMode := fs.Bool("append", false, "append later files' bindings instead of replacing them")
	baseMode := fs.Bool("base", false, "each later file discards everything below it")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: ineffable merge [-format toml|yaml|json] [-o file] [-append|-base] config...\n\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() == 0 || (*appendMode && *baseMode) {
		fs.Usage()
		return exitUsage
	}

	mode := config.MergeReplace
	switch {
	case *appendMode:
		mode = config.MergeAppend
	case *baseMode:
		mode = config.MergeBase
	}

	stack, rep, err := loadStack(loader.New(nil), fs.Args(), mode)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}
	if !rep.Empty() {
		newPrinter(stderr).printReport(rep)
	}
	if rep.HasErrors() {
		return exitInvalid
	}
	cfg := stack.Effective()

	if *output != "" {
		if err := loader.Save(*output, cfg); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitUsage
		}
		return exitOK
	}

	format, err := loader.ParseFormat(*formatName)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}
	data, err := loader.Marshal(cfg, format)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}
	if _, err := stdout.Write(data); err != nil {
		return exitUsage
	}
	return exitOK
}

func runExplain(args []string, stdout, stderr io.Writer) int {
	kinds := action.Kinds
	if len(args) > 0 {
		kinds = nil
		for _, a := range args {
			k, err := action.ParseKind(a)
			if err != nil {
				fmt.Fprintf(stderr, "Error: %v\n", err)
				return exitUsage
			}
			kinds = append(kinds, k)
		}
	}

	p := newPrinter(stdout)
	for i, k := range kinds {
		if i > 0 {
			fmt.Fprintln(stdout)
		}
		fmt.Fprintln(stdout, p.paint(colorAccent, k.String()))
		fmt.Fprintf(stdout, "  %s\n", k.Explain())
		for _, line := range strings.Split(k.Example(), "\n") {
			fmt.Fprintf(stdout, "  %s\n", p.paint(colorDim, line))
		}
	}
	return exitOK
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
