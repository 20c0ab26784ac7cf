package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/chayuto/ai-truffle-hog/internal/config"
	"github.com/chayuto/ai-truffle-hog/internal/model"
	"github.com/chayuto/ai-truffle-hog/internal/provider"
	_ "github.com/chayuto/ai-truffle-hog/internal/provider/init"
	"github.com/chayuto/ai-truffle-hog/internal/ratelimit"
	"github.com/chayuto/ai-truffle-hog/internal/report"
	"github.com/chayuto/ai-truffle-hog/internal/session"
	"github.com/chayuto/ai-truffle-hog/internal/validate"
)

// scanFlags holds the flag values for NewScanCmd's Run closure.
type scanFlags struct {
	configPath    string
	output        string
	validate      bool
	contextLines  int
	maxConcurrent int
	timeout       time.Duration
	providers     []string
}

// NewScanCmd builds the "scan" subcommand: walk every target, scan it for
// candidate credentials, optionally validate them live, and render the
// result in the requested format.
func NewScanCmd() *cobra.Command {
	flags := &scanFlags{}

	scanCmd := &cobra.Command{
		Use:     "scan <target>...",
		Short:   "Scan one or more local paths or repository URLs for leaked AI credentials.",
		Example: "ai-truffle-hog scan ./my-project https://github.com/example/leaky-repo.git",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) == 0 {
				cmd.Help()
				os.Exit(1)
			}

			opts := loadOptions(flags)

			var validateClient *validate.Client
			if opts.Validator.Enabled {
				validateClient = validate.NewClient(validate.Options{
					MaxConcurrent: opts.Validator.MaxConcurrent,
					Timeout:       time.Duration(opts.Validator.TimeoutSeconds) * time.Second,
					Registry:      provider.Default,
					Limiters:      ratelimit.NewLimiters(),
				})
			}

			sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
			sp.Suffix = fmt.Sprintf(" scanning %d target(s)...", len(args))
			sp.Start()

			runner := session.NewRunner(opts, validateClient)
			result := runner.Run(context.Background(), args)

			sp.Stop()

			if err := renderReport(cmd, flags.output, result); err != nil {
				fmt.Fprintln(os.Stderr, err.Error())
				os.Exit(1)
			}
		},
	}

	scanCmd.Flags().StringVar(&flags.configPath, "config", "", "path to a YAML config file")
	scanCmd.Flags().StringVarP(&flags.output, "output", "o", "table", "output format: table, json, or sarif")
	scanCmd.Flags().BoolVar(&flags.validate, "validate", false, "validate each candidate against its provider's live API")
	scanCmd.Flags().IntVar(&flags.contextLines, "context-lines", 0, "lines of context to capture around each match (0 uses config/default)")
	scanCmd.Flags().IntVar(&flags.maxConcurrent, "max-concurrent", 0, "bound on in-flight validation probes (0 uses config/default)")
	scanCmd.Flags().DurationVar(&flags.timeout, "timeout", 0, "per-probe validation timeout (0 uses config/default)")
	scanCmd.Flags().StringSliceVar(&flags.providers, "providers", nil, "restrict scanning to these provider names (default: all registered)")

	return scanCmd
}

// loadOptions builds the effective config.Options from an optional YAML
// file overlaid with the scan command's own flags. A flag wins only when
// set to a non-zero value (or true, for --validate); a zero or false flag
// leaves the file's or the default value in place.
func loadOptions(flags *scanFlags) config.Options {
	store := config.NewStore()
	if flags.configPath != "" {
		if err := store.LoadYAMLFile(flags.configPath); err != nil {
			fmt.Fprintf(os.Stderr, "failed to load config %s: %s\n", flags.configPath, err.Error())
			os.Exit(1)
		}
	}
	opts := config.FromStore(store)

	if flags.validate {
		opts.Validator.Enabled = true
	}
	if flags.contextLines > 0 {
		opts.Scanner.ContextLines = flags.contextLines
	}
	if flags.maxConcurrent > 0 {
		opts.Validator.MaxConcurrent = flags.maxConcurrent
	}
	if flags.timeout > 0 {
		opts.Validator.TimeoutSeconds = int(flags.timeout / time.Second)
	}
	if len(flags.providers) > 0 {
		filter := make(map[string]bool, len(flags.providers))
		for _, name := range flags.providers {
			filter[name] = true
		}
		opts.Scanner.ProviderFilter = filter
	}

	return opts
}

// renderReport writes session to cmd's stdout in the requested format.
func renderReport(cmd *cobra.Command, format string, session model.ScanSession) error {
	out := cmd.OutOrStdout()
	switch format {
	case "json":
		return report.WriteJSON(out, session)
	case "sarif":
		return report.WriteSARIF(out, session)
	case "table", "":
		return report.WriteTable(out, session)
	default:
		return fmt.Errorf("unknown output format %q (want table, json, or sarif)", format)
	}
}
