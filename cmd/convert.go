package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/offdeck/offdeck/internal/cache"
	"github.com/offdeck/offdeck/internal/convert"
	"github.com/offdeck/offdeck/internal/progress"
)

var convertCmd = &cobra.Command{
	Use:   "convert [deck]",
	Short: "Convert a slide deck into a self-contained offline HTML file",
	Long: `Reads <source_dir>/<deck>.html (the extension is optional), embeds every
eligible external resource, isolates chart scripts per slide, and writes
<output_dir>/<deck>_deck.html.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().Bool("clear-cache", false, "empty the resource cache before converting")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ca, err := cache.Open(cfg.CacheDir)
	if err != nil {
		return fmt.Errorf("opening cache: %w", err)
	}

	if clear, _ := cmd.Flags().GetBool("clear-cache"); clear {
		if err := ca.Clear(); err != nil {
			return fmt.Errorf("clearing cache: %w", err)
		}
		fmt.Printf("Cache cleared: %s\n", ca.Dir())
		if len(args) == 0 {
			return nil
		}
	}

	if len(args) == 0 {
		return fmt.Errorf("deck name required (or --clear-cache)")
	}

	conv := convert.New(cfg, ca, progress.NewReporter())
	conv.SetLogf(func(format string, a ...interface{}) {
		vlogf(format+"\n", a...)
	})

	res, err := conv.Run(context.Background(), args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Converted %d slides, %d charts in %s\n",
		res.Slides, res.Charts, res.Duration.Round(10*time.Millisecond))
	fmt.Printf("Resources: %d requested, %d from cache, %d downloaded, %d failed\n",
		res.Stats.Requested, res.Stats.CacheHits, res.Stats.Downloaded, res.Stats.Failed)
	fmt.Printf("Output: %s\n", res.OutputPath)
	return nil
}
