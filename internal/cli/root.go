// Package cli wires the fakedata commands: flag parsing, logger setup, and
// exit-code mapping. All scan logic lives in pkg/.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/unohee/ci-templates/pkg/models"
	"github.com/unohee/ci-templates/pkg/version"
	"go.uber.org/zap"
)

var logger *zap.SugaredLogger

var rootCmd = &cobra.Command{
	Use:   "fakedata",
	Short: "fakedata - detects fake/synthetic data patterns in ML feature code",
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the detector version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Fake Data Detector")
		fmt.Printf("Build: %s\n", version.EngineVersion())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(models.ExitConfig)
	}
}

// initLogger builds the console logger. Debug switches to the development
// config so rule evaluation can be traced.
func initLogger(debug bool) {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	cfg.Encoding = "console"
	raw, err := cfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: logger init failed: %v\n", err)
		os.Exit(models.ExitConfig)
	}
	logger = raw.Sugar()
}
