// cmd/codeview/main.go
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bethropolis/codeview/internal/app"
	"github.com/bethropolis/codeview/internal/buffer"
	"github.com/bethropolis/codeview/internal/clipboard"
	"github.com/bethropolis/codeview/internal/config"
	"github.com/bethropolis/codeview/internal/event"
	"github.com/bethropolis/codeview/internal/logger"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		flags config.Flags
		dump  bool
		watch bool
	)
	cmd := &cobra.Command{
		Use:          "codeview [file]",
		Short:        "A terminal code viewer with incremental syntax highlighting",
		Version:      version,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var filePath string
			if len(args) > 0 {
				filePath = args[0]
			}

			cfg, err := config.Load(flags.ConfigFilePath, &flags)
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}

			// The terminal UI owns stderr, so an unset log file discards.
			logPath := cfg.Logger.LogFilePath
			var out io.Writer
			if logPath != "" || dump {
				w, closeLog, err := logger.OpenOutput(logPath)
				if err != nil {
					return err
				}
				defer closeLog()
				out = w
			}
			logger.Init(cfg.Logger, out)
			cfg.LogWarnings()

			if dump {
				return runDump(cmd.OutOrStdout(), cfg, filePath)
			}
			return runApp(cfg, filePath, watch)
		},
	}
	cmd.SetVersionTemplate("codeview {{.Version}}\n")
	flags.DefineFlags(cmd.Flags())
	cmd.Flags().BoolVar(&dump, "dump", false, "Print the highlight tags of the file and exit")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Reload the scheme file named by --scheme when it changes")
	return cmd
}

// runDump highlights a file without a terminal and prints its tags.
func runDump(w io.Writer, cfg *config.Config, filePath string) error {
	if filePath == "" {
		return fmt.Errorf("--dump needs a file")
	}
	buf := buffer.NewSliceBuffer()
	if err := buf.Load(filePath); err != nil {
		return err
	}
	if _, _, err := app.NewView(cfg, buf, event.NewManager(), &clipboard.Memory{}); err != nil {
		return err
	}
	return app.Dump(w, buf)
}

func runApp(cfg *config.Config, filePath string, watch bool) error {
	logger.Infof("Starting codeview %s", version)
	a, err := app.NewApp(app.Options{Config: cfg, FilePath: filePath})
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		return err
	}
	if watch {
		if err := a.WatchScheme(); err != nil {
			logger.Errorf("Error watching scheme: %v", err)
			return err
		}
	}
	if err := a.Run(); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		return err
	}
	logger.Infof("codeview finished.")
	return nil
}
