package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"pydocfmt/internal/config"
	"pydocfmt/internal/crawler"
	"pydocfmt/internal/git"
	"pydocfmt/internal/pipeline"
	"pydocfmt/internal/storage"
)

var (
	rootCmd = &cobra.Command{
		Use:          "pydocfmt",
		Short:        "Format Python code and docstrings from a section schema",
		SilenceUsage: true,
	}

	configPath  string
	noCache     bool
	changedOnly bool
	baseRef     string
	verbose     bool

	logger *zap.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Path to the configuration file")
	rootCmd.PersistentFlags().BoolVar(&noCache, "no-cache", false, "Re-examine files even when the cache says they are formatted")
	rootCmd.PersistentFlags().BoolVar(&changedOnly, "changed", false, "Only format files changed relative to --base")
	rootCmd.PersistentFlags().StringVar(&baseRef, "base", "HEAD", "Git ref used by --changed")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	}

	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(checkCmd)
}

var fmtCmd = &cobra.Command{
	Use:   "fmt [paths...]",
	Short: "Format files and directories in place",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), args, false)
	},
}

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Report files that would be reformatted, exiting non-zero if any",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), args, true)
	},
}

func run(ctx context.Context, args []string, check bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	defer logger.Sync()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	files, err := collectFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		logger.Warn("no Python files found in the specified paths")
		return nil
	}
	logger.Info("formatting", zap.Int("files", len(files)), zap.Bool("check", check))

	p, err := pipeline.New(cfg, logger)
	if err != nil {
		return err
	}
	p.Check = check

	if !noCache {
		cache, err := storage.NewFormatCache(cfg.Cache.Path)
		if err != nil {
			logger.Warn("cache unavailable, continuing without it", zap.Error(err))
		} else {
			defer cache.Close()
			p.Cache = cache
		}
	}

	res, err := p.Run(ctx, files)
	if err != nil {
		return err
	}
	if check && len(res.Changed) > 0 {
		for _, file := range res.Changed {
			fmt.Println(file)
		}
		return fmt.Errorf("%d files would be reformatted", len(res.Changed))
	}
	logger.Info("done",
		zap.Int("formatted", len(res.Changed)),
		zap.Int("unchanged", res.Unchanged),
		zap.Int("skipped", res.Skipped))
	return nil
}

// collectFiles resolves positional arguments, or the git-changed set when
// --changed is given, into Python file paths.
func collectFiles(args []string) ([]string, error) {
	if changedOnly {
		if len(args) > 0 {
			return nil, fmt.Errorf("--changed does not take positional paths")
		}
		changed, err := git.ChangedFiles(baseRef)
		if err != nil {
			return nil, err
		}
		args = changed
		if len(args) == 0 {
			return nil, nil
		}
	}
	if len(args) == 0 {
		args = []string{"."}
	}

	var files []string
	err := crawler.New().Resolve(args, func(path string) {
		files = append(files, path)
	})
	return files, err
}
