package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/toyz/autoimpl/internal/cli"
	"github.com/toyz/autoimpl/internal/utils"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[0], os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command line and returns the process exit code
func run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(stderr)

	var (
		strategyFlag = flags.String("strategy", "", "Interface selection strategy: named, qualified or inherited (default named)")
		outFlag      = flags.String("out", "", "Directory generated files are written to (default "+cli.DefaultOutputDir+")")
		configFlag   = flags.String("config", "", "Path to a YAML configuration file (default ./"+cli.DefaultConfigFile+" when present)")
		markerFlag   = flags.String("marker", "", "Marker attribute name (default AutoImplement)")
		markerNsFlag = flags.String("marker-namespace", "", "Namespace of the emitted marker declaration (default AttributeGenerator)")
		jobsFlag     = flags.Int("concurrency", 0, "Maximum targets transformed in parallel (default GOMAXPROCS)")
		verboseFlag  = flags.Bool("verbose", false, "Enable verbose output and detailed error reporting")
		quietFlag    = flags.Bool("quiet", false, "Only show errors and final results")
		cleanFlag    = flags.Bool("clean", false, "Delete generated .g.cs files from the specified directories and the output directory")
		dryRunFlag   = flags.Bool("dry-run", false, "Report the files that would be written without writing them")
		helpFlag     = flags.Bool("help", false, "Show help information")
	)

	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s [options] <directory-paths...>\n\n", name)
		fmt.Fprintf(stderr, "AutoImplement Code Generator\n")
		fmt.Fprintf(stderr, "Scans C# sources for [AutoImplement] markers and generates partial types implementing the named interfaces' properties.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		flags.PrintDefaults()
		fmt.Fprintf(stderr, "\nArguments:\n")
		fmt.Fprintf(stderr, "  directory-paths    One or more directories to scan for C# files\n")
		fmt.Fprintf(stderr, "                     Supports Go-style patterns like './...' for recursive scanning\n")
		fmt.Fprintf(stderr, "                     May be omitted when the configuration file lists directories\n")
		fmt.Fprintf(stderr, "\nDirectory Patterns:\n")
		fmt.Fprintf(stderr, "  ./...              Scan current directory and all subdirectories recursively\n")
		fmt.Fprintf(stderr, "  ./src/...          Scan src directory and all its subdirectories\n")
		fmt.Fprintf(stderr, "  ./src/Models       Scan only the specific directory (no recursion)\n")
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  %s ./...                              # Scan everything recursively\n", name)
		fmt.Fprintf(stderr, "  %s -strategy qualified ./src/...      # Emit global:: qualified names\n", name)
		fmt.Fprintf(stderr, "  %s -strategy inherited ./...          # Mark interfaces instead of classes\n", name)
		fmt.Fprintf(stderr, "  %s -out obj/Generated ./...           # Choose the output directory\n", name)
		fmt.Fprintf(stderr, "  %s -dry-run -verbose ./...            # Show what would be written\n", name)
		fmt.Fprintf(stderr, "  %s -clean ./...                       # Delete generated files\n", name)
	}

	if err := flags.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	if *helpFlag {
		flags.Usage()
		return 0
	}

	config, err := loadConfig(*configFlag)
	if err != nil {
		cli.NewDiagnosticReporterTo(*verboseFlag, stderr).ReportError(err)
		return 1
	}

	// Flags given on the command line override the configuration file
	overrides := cli.Config{Directories: flags.Args()}
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "strategy":
			overrides.Strategy = *strategyFlag
		case "out":
			overrides.Output = *outFlag
		case "marker":
			overrides.Marker.Name = *markerFlag
		case "marker-namespace":
			overrides.Marker.Namespace = *markerNsFlag
		case "concurrency":
			overrides.Concurrency = *jobsFlag
		case "verbose":
			overrides.Verbose = *verboseFlag
		case "dry-run":
			overrides.DryRun = *dryRunFlag
		}
	})
	config = config.Merge(overrides)

	// Create diagnostic system based on flags
	var diagnostics *utils.DiagnosticSystem
	if *quietFlag {
		diagnostics = utils.NewQuietDiagnostics()
	} else if config.Verbose {
		diagnostics = utils.NewVerboseDiagnostics()
	} else {
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}
	if stdout != os.Stdout || stderr != os.Stderr {
		diagnostics.SetOutput(stdout, stderr)
	}
	reporter := cli.NewDiagnosticReporterTo(config.Verbose, stderr)

	if len(config.Directories) == 0 {
		fmt.Fprintf(stderr, "Error: At least one directory path is required\n\n")
		flags.Usage()
		return 1
	}

	diagnostics.Header("C# Property Generator")

	if *cleanFlag {
		return clean(diagnostics, reporter, append(append([]string{}, config.Directories...), config.Output))
	}

	if config.Verbose {
		diagnostics.Subsection("Configuration")
		diagnostics.List("Target directories: %s", strings.Join(config.Directories, ", "))
		diagnostics.List("Strategy: %s", config.Strategy)
		diagnostics.List("Marker: %s.%s", config.Marker.Namespace, config.Marker.Name)
		diagnostics.List("Output: %s", config.Output)
		if config.DryRun {
			diagnostics.List("Dry run: enabled")
		}
	}

	generator, err := cli.NewGeneratorWithDiagnostics(config, diagnostics, reporter)
	if err != nil {
		reporter.ReportError(err)
		return 1
	}

	diagnostics.Subsection("Code Generation")
	if err := generator.Generate(ctx); err != nil {
		diagnostics.Error("Generation failed")
		reporter.ReportError(err)
		return 1
	}

	summary := generator.GetSummary()
	title := "Generation Complete!"
	if summary.DryRun {
		title = "Dry Run Complete!"
	}
	diagnostics.Summary(title, summary.Stats())

	if config.Verbose && len(summary.GeneratedFiles) > 0 {
		diagnostics.Subsection("Generated Files")
		for _, file := range summary.GeneratedFiles {
			diagnostics.List("%s", file)
		}
		diagnostics.Verbose("Finished run %s in %s", summary.RunID, summary.Duration)
	}

	diagnostics.GenerationComplete()
	return 0
}

// loadConfig reads the explicit configuration file, or the default one when it exists
func loadConfig(path string) (cli.Config, error) {
	config := cli.DefaultConfig()
	if path == "" {
		if _, err := os.Stat(cli.DefaultConfigFile); err != nil {
			return config, nil
		}
		path = cli.DefaultConfigFile
	}
	return cli.LoadConfigFile(path, config)
}

func clean(diagnostics *utils.DiagnosticSystem, reporter *cli.DiagnosticReporter, dirs []string) int {
	diagnostics.Info("Starting cleanup operation...")
	diagnostics.StartProgress("Cleaning generated files")

	removed, err := cli.NewCleaner().CleanGeneratedFiles(dirs)
	if err != nil {
		diagnostics.EndProgress(false, "")
		reporter.ReportError(err)
		return 1
	}

	diagnostics.EndProgress(true, "")
	for _, file := range removed {
		diagnostics.Verbose("Removed %s", file)
	}
	diagnostics.Success("Removed %d generated files", len(removed))
	return 0
}
