package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/strut-dev/strut/internal/cli"
	"github.com/strut-dev/strut/internal/utils"
)

func main() {
	var (
		manifestFlag = flag.String("manifest", "strut.yaml", "Path to the resolved binding-graph manifest")
		outFlag      = flag.String("out", "", "Root directory generated packages are written under (defaults to the manifest's output setting)")
		moduleFlag   = flag.String("module", "", "Target module path (defaults to the nearest go.mod)")
		verboseFlag  = flag.Bool("verbose", false, "Enable verbose output and detailed error reporting")
		quietFlag    = flag.Bool("quiet", false, "Only show errors and final results")
		cleanFlag    = flag.Bool("clean", false, "Delete all strut_gen.go files from the specified directories")
		helpFlag     = flag.Bool("help", false, "Show help information")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] [directory-paths...]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Strut Creator Generator\n")
		fmt.Fprintf(os.Stderr, "Reads a resolved binding-graph manifest and synthesizes component creator types.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nArguments:\n")
		fmt.Fprintf(os.Stderr, "  directory-paths    Only used with --clean: directories to remove generated files from\n")
		fmt.Fprintf(os.Stderr, "                     Supports Go-style patterns like './...' for recursive cleaning\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s --manifest build/graph.yaml                 # Generate from a manifest\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --manifest graph.yaml --out ./internal/di   # Generate into a specific root\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --module github.com/myorg/myapp             # Specify the module explicitly\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --verbose                                   # Enable detailed output\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --clean ./...                               # Delete all strut_gen.go files\n", os.Args[0])
	}

	flag.Parse()

	if *helpFlag {
		flag.Usage()
		os.Exit(0)
	}

	var diagnostics *utils.DiagnosticSystem
	if *quietFlag {
		diagnostics = utils.NewQuietDiagnostics()
	} else if *verboseFlag {
		diagnostics = utils.NewVerboseDiagnostics()
	} else {
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}

	diagnostics.Section("Strut Creator Generator")

	if *cleanFlag {
		dirs := flag.Args()
		if len(dirs) == 0 {
			dirs = []string{"./..."}
		}
		diagnostics.Info("Starting cleanup operation...")

		cleaner := cli.NewCleaner()
		removed, err := cleaner.CleanGeneratedFiles(dirs)
		if err != nil {
			diagnostics.Error("Clean operation failed: %v", err)
			os.Exit(1)
		}

		diagnostics.Success("Removed %d generated files", len(removed))
		return
	}

	config := cli.Config{
		ManifestPath: *manifestFlag,
		OutputRoot:   *outFlag,
		Module:       *moduleFlag,
		Verbose:      *verboseFlag,
		Quiet:        *quietFlag,
	}

	if *verboseFlag {
		diagnostics.Subsection("Configuration")
		diagnostics.List("Manifest: %s", config.ManifestPath)
		if config.OutputRoot != "" {
			diagnostics.List("Output root: %s", config.OutputRoot)
		}
		if config.Module != "" {
			diagnostics.List("Custom module: %s", config.Module)
		}
	}

	diagnostics.Subsection("Code Generation")
	generator := cli.NewGenerator(config, diagnostics)

	if err := generator.Generate(); err != nil {
		diagnostics.Error("Generation failed: %v", err)
		os.Exit(1)
	}

	summary := generator.GetSummary()
	stats := map[string]interface{}{
		"Components processed": summary.ComponentsProcessed,
		"Creators generated":   summary.CreatorsGenerated,
		"Components skipped":   summary.ComponentsSkipped,
		"Files written":        len(summary.GeneratedFiles),
	}
	diagnostics.Summary("Generation Complete!", stats)

	if *verboseFlag && len(summary.GeneratedFiles) > 0 {
		diagnostics.Subsection("Generated Files")
		for _, file := range summary.GeneratedFiles {
			diagnostics.List("%s", file)
		}
	}

	diagnostics.Success("Your creators are ready to use!")
}
