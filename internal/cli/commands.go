// Package cli wires the cobra command surface to the deployment engine.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/avkozyr/static-deploy/internal/version"
	"github.com/avkozyr/static-deploy/pkg/config"
	"github.com/avkozyr/static-deploy/pkg/deployer"
	"github.com/avkozyr/static-deploy/pkg/display"
	"github.com/avkozyr/static-deploy/pkg/errors"
	"github.com/avkozyr/static-deploy/pkg/interrupt"
	"github.com/avkozyr/static-deploy/pkg/logging"
	"github.com/avkozyr/static-deploy/pkg/scanner"
	"github.com/avkozyr/static-deploy/pkg/theme"
)

// Process exit codes. Partial means at least one job succeeded and at least
// one failed; cancelled follows shell convention for SIGINT.
const (
	ExitSuccess      = 0
	ExitPartial      = 1
	ExitTotalFailure = 2
	ExitCancelled    = 130
)

// ExitError carries a non-zero process exit code out of a run that already
// reported its outcome. main exits with Code without printing it again.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var (
		verbosity int
		flags     config.Flags
		areas     []string
		locales   []string
	)

	rootCmd := &cobra.Command{
		Use:   "static-deploy [magento-root]",
		Short: "Deploy static theme content for Magento 2",
		Long: `static-deploy copies Hyva theme assets straight into pub/static,
resolving each theme's inheritance chain and layering overrides over parent
and vendor-module sources. Luma themes are handed off to bin/magento
setup:static-content:deploy, which performs the LESS and RequireJS
compilation a plain file copy cannot.`,
		Version: version.Version,
		Args:    cobra.MaximumNArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				flags.Root = args[0]
			}
			flags.Areas = areas
			flags.Locales = locales
			flags.Verbose = verbosity > 0
			return runDeploy(flags)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.Flags().StringSliceVarP(&areas, "area", "a", nil, "Areas to deploy (default frontend,adminhtml)")
	rootCmd.Flags().StringSliceVarP(&flags.Themes, "theme", "t", nil, "Deploy only these themes (Vendor/name)")
	rootCmd.Flags().StringSliceVarP(&locales, "locale", "l", nil, "Locales to deploy (default en_US)")
	rootCmd.Flags().IntVarP(&flags.Jobs, "jobs", "j", 0, "Parallel jobs (default number of CPUs)")
	rootCmd.Flags().BoolVarP(&flags.IncludeDev, "include-dev", "d", false, "Also copy development files (sources, maps, configs)")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// runDeploy is the root command body: configure, discover, deploy, report.
func runDeploy(flags config.Flags) error {
	logger := logging.GetLogger("cli")

	cfg, err := config.New(flags)
	if err != nil {
		return err
	}

	info, err := os.Stat(cfg.Root)
	if err != nil || !info.IsDir() {
		return errors.Newf(errors.ErrRootNotFound,
			"magento root not found: %s", cfg.Root).
			WithDetail("root", cfg.Root)
	}

	if ver, ok := deployer.ReadDeployedVersion(cfg.Root); ok {
		logger.Debug().Str("version", ver).Msg("Existing deployed version")
	}

	themes, err := discoverThemes(cfg)
	if err != nil {
		return err
	}
	if len(themes) == 0 {
		fmt.Println("No themes found to deploy")
		return nil
	}

	jobs := deployer.JobMatrix(themes, cfg.Locales)
	logger.Info().
		Int("themes", len(themes)).
		Int("locales", len(cfg.Locales)).
		Int("jobs", len(jobs)).
		Int("workers", cfg.Jobs).
		Msg("Starting deployment")

	flag := interrupt.NewFlag()
	flag.Notify()

	stats := deployer.NewStats()
	progress := display.StartProgress(len(jobs), cfg.Verbose)
	start := time.Now()

	results := deployer.Run(jobs, themes, cfg.Root, flag, stats, deployer.Options{
		Verbose:    cfg.Verbose,
		IncludeDev: cfg.IncludeDev,
		Workers:    cfg.Jobs,
	}, func(deployer.DeployResult) {
		progress.Increment()
	})

	progress.Stop()
	elapsed := time.Since(start)

	report := display.NewReport()
	fmt.Print(report.RenderSummary(results, stats, elapsed))

	if code := exitCode(results, flag); code != ExitSuccess {
		return &ExitError{Code: code}
	}
	return nil
}

// discoverThemes scans every configured area and applies the --theme filter.
// Asking for a theme that was not discovered is an error, not a silent no-op.
func discoverThemes(cfg *config.Config) ([]*theme.Theme, error) {
	var themes []*theme.Theme
	for _, area := range cfg.Areas {
		found, err := scanner.DiscoverThemes(cfg.Root, area, cfg.Jobs)
		if err != nil {
			return nil, err
		}
		themes = append(themes, found...)
	}

	if len(cfg.Themes) == 0 {
		return themes, nil
	}

	wanted := make(map[string]bool, len(cfg.Themes))
	for _, name := range cfg.Themes {
		wanted[name] = false
	}

	filtered := make([]*theme.Theme, 0, len(themes))
	for _, t := range themes {
		if _, ok := wanted[t.FullName()]; ok {
			wanted[t.FullName()] = true
			filtered = append(filtered, t)
		}
	}

	for name, found := range wanted {
		if !found {
			return nil, errors.Newf(errors.ErrThemeNotFound,
				"theme not found: %s", name).
				WithDetail("theme", name)
		}
	}
	return filtered, nil
}

func exitCode(results []deployer.DeployResult, flag *interrupt.Flag) int {
	_, hasSuccess, hasFailure := deployer.CollectResults(results)

	if flag.IsSet() {
		return ExitCancelled
	}
	switch {
	case hasFailure && hasSuccess:
		return ExitPartial
	case hasFailure:
		return ExitTotalFailure
	default:
		return ExitSuccess
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("static-deploy version %s\n", version.Version)
			fmt.Printf("  commit: %s\n", version.Commit)
			fmt.Printf("  built:  %s\n", version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 "Generate shell completion script",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
}
