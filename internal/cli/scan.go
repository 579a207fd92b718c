package cli

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/unohee/ci-templates/pkg/config"
	"github.com/unohee/ci-templates/pkg/detect"
	"github.com/unohee/ci-templates/pkg/models"
	"github.com/unohee/ci-templates/pkg/report"
	"github.com/unohee/ci-templates/pkg/walker"
)

var (
	strictMode bool
	ciMode     bool
	jsonOutput bool
	patterns   string
	excludes   string
	configFile string
	debugMode  bool
)

var scanCmd = &cobra.Command{
	Use:   "scan [paths...]",
	Short: "Scan source files for fake-data patterns",
	Long: `Scans Python source files for textual evidence that ML feature code was
produced with synthetic/random data generators instead of real measurements.

Exit codes: 0 = PASS, 1 = FAIL (CRITICAL finding, or WARNING under --strict),
2 = configuration error.`,
	Run: func(cmd *cobra.Command, args []string) {
		initLogger(debugMode)
		defer logger.Sync()

		cfg, err := config.Resolve(args, config.Overrides{
			Patterns:   patterns,
			Excludes:   excludes,
			ConfigFile: configFile,
			Strict:     strictMode,
			CI:         ciMode,
			JSON:       jsonOutput,
		})
		if err != nil {
			logger.Errorw("invalid configuration", "error", err)
			exitWith(models.ExitConfig)
		}
		logger.Debugw("configuration resolved",
			"targets", cfg.Targets,
			"patterns", cfg.FeaturePatterns,
			"excludes", cfg.Excludes,
			"strict", cfg.Strict)

		files, walkDiags, err := walker.Walk(cfg)
		if err != nil {
			logger.Errorw("target resolution failed", "error", err)
			exitWith(models.ExitConfig)
		}
		logger.Debugf("scanning %d file(s)", len(files))

		engine := detect.NewEngine(cfg)
		findings, scanDiags := engine.ScanAll(files)

		diags := append(walkDiags, scanDiags...)
		for _, d := range diags {
			logger.Warnw("file skipped", "file", d.File, "reason", d.Message)
		}

		out := report.Build(cfg.Targets, len(files), findings, diags, cfg.Strict)

		switch {
		case cfg.JSON:
			err = report.RenderJSON(os.Stdout, out)
		case cfg.CI:
			err = report.RenderCI(os.Stdout, out)
		default:
			err = report.RenderHuman(os.Stdout, out)
		}
		if err != nil {
			logger.Errorw("render failed", "error", err)
			exitWith(models.ExitConfig)
		}

		if code := report.ExitCode(out); code != models.ExitPass {
			exitWith(code)
		}
	},
}

// exitWith flushes the logger before terminating; os.Exit skips defers.
func exitWith(code int) {
	if logger != nil {
		logger.Sync()
	}
	os.Exit(code)
}

func init() {
	scanCmd.Flags().BoolVar(&strictMode, "strict", false, "Treat WARNING findings as failures")
	scanCmd.Flags().BoolVar(&ciMode, "ci", false, "Emit GitHub Actions workflow commands")
	scanCmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit machine-readable JSON")
	scanCmd.Flags().StringVar(&patterns, "patterns", "", "Feature-name patterns, comma separated (overrides env)")
	scanCmd.Flags().StringVar(&excludes, "exclude", "", "Path globs to skip, comma separated (adds to env)")
	scanCmd.Flags().StringVar(&configFile, "config", "", "Optional YAML config file")
	scanCmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.AddCommand(scanCmd)
}
