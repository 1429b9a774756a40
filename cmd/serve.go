package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/offdeck/offdeck/internal/cache"
	"github.com/offdeck/offdeck/internal/convert"
	"github.com/offdeck/offdeck/internal/progress"
	"github.com/offdeck/offdeck/internal/serve"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve converted decks over HTTP for preview",
	Long: `Serves <output_dir> on a local HTTP port. With --watch, the named deck
is converted up front and re-converted whenever its source file changes.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "listen port (overrides config)")
	serveCmd.Flags().String("watch", "", "deck name to re-convert on source changes")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if port, _ := cmd.Flags().GetInt("port"); port > 0 {
		cfg.ServePort = port
	}

	logf := func(format string, a ...interface{}) {
		fmt.Fprintf(os.Stderr, format+"\n", a...)
	}

	if watchName, _ := cmd.Flags().GetString("watch"); watchName != "" {
		ca, err := cache.Open(cfg.CacheDir)
		if err != nil {
			return fmt.Errorf("opening cache: %w", err)
		}
		conv := convert.New(cfg, ca, progress.NopReporter{})
		conv.SetLogf(func(format string, a ...interface{}) {
			vlogf(format+"\n", a...)
		})

		if _, err := conv.Run(context.Background(), watchName); err != nil {
			return err
		}
		inputPath, _ := conv.ResolvePaths(watchName)

		go func() {
			err := serve.Watch(context.Background(), inputPath, func() error {
				_, err := conv.Run(context.Background(), watchName)
				return err
			}, logf)
			if err != nil && err != context.Canceled {
				logf("watcher stopped: %v", err)
			}
		}()
		logf("watching %s", inputPath)
	}

	srv := serve.New(serve.Config{
		Dir:      cfg.OutputDir,
		Port:     cfg.ServePort,
		AllowAll: cfg.ServeAllowAll,
	})
	fmt.Printf("Serving decks from %s at http://localhost:%d\n", cfg.OutputDir, cfg.ServePort)
	return srv.ListenAndServe()
}
