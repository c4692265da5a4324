package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootFlags = struct {
	debug *bool
}{}

var rootCmd = &cobra.Command{
	Use:           "dewy",
	Short:         "dewy is a toolchain for the dewy grammar language",
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootFlags.debug = rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
}

func Execute() error {
	return rootCmd.Execute()
}

func newLogger() (*zap.Logger, error) {
	if *rootFlags.debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

// readSource reads a rule source from a file, or from stdin when the path
// is - or empty.
func readSource(path string) ([]byte, error) {
	if path == "" || path == "-" {
		src, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("cannot read stdin: %w", err)
		}
		return src, nil
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %v: %w", path, err)
	}
	return src, nil
}
