// Package convert orchestrates the full deck conversion workflow:
// split -> fetch -> inline -> isolate charts -> assemble.
package convert

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/offdeck/offdeck/internal/assemble"
	"github.com/offdeck/offdeck/internal/cache"
	"github.com/offdeck/offdeck/internal/chartjs"
	"github.com/offdeck/offdeck/internal/classify"
	"github.com/offdeck/offdeck/internal/config"
	"github.com/offdeck/offdeck/internal/download"
	"github.com/offdeck/offdeck/internal/fetch"
	"github.com/offdeck/offdeck/internal/inline"
	"github.com/offdeck/offdeck/internal/progress"
	"github.com/offdeck/offdeck/internal/slides"
)

// Result summarizes one conversion pass.
type Result struct {
	OutputPath string
	Slides     int
	Charts     int
	Stats      download.Stats
	Duration   time.Duration
}

// Converter runs deck conversions against one configuration and cache.
type Converter struct {
	cfg           *config.Config
	cache         *cache.Cache
	reporter      progress.Reporter
	logf          func(format string, args ...interface{})
	essentials    []string
	hasEssentials bool
}

// New creates a Converter. reporter may be nil for silent operation.
func New(cfg *config.Config, ca *cache.Cache, reporter progress.Reporter) *Converter {
	if reporter == nil {
		reporter = progress.NopReporter{}
	}
	return &Converter{
		cfg:      cfg,
		cache:    ca,
		reporter: reporter,
		logf:     func(string, ...interface{}) {},
	}
}

// SetEssentials overrides the always-fetched resource set. Tests use it
// to point at local servers.
func (c *Converter) SetEssentials(urls []string) {
	c.essentials = urls
	c.hasEssentials = true
}

// SetLogf sets the diagnostic log callback.
func (c *Converter) SetLogf(fn func(format string, args ...interface{})) {
	if fn != nil {
		c.logf = fn
	}
}

// ResolvePaths maps an input name to its source file and output
// artifact. The .html extension is optional on the name, and a name
// that already points at an existing file is used as-is.
func (c *Converter) ResolvePaths(name string) (inputPath, outputPath string) {
	base := strings.TrimSuffix(filepath.Base(name), ".html")

	if fileExists(name) {
		inputPath = name
	} else {
		inputPath = filepath.Join(c.cfg.SourceDir, base+".html")
	}
	outputPath = filepath.Join(c.cfg.OutputDir, base+"_deck.html")
	return inputPath, outputPath
}

// Run converts the named deck and writes the artifact.
func (c *Converter) Run(ctx context.Context, name string) (*Result, error) {
	start := time.Now()
	inputPath, outputPath := c.ResolvePaths(name)

	raw, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	parts, err := slides.Split(string(raw))
	if err != nil {
		return nil, fmt.Errorf("splitting %s: %w", inputPath, err)
	}
	title := slides.DeckTitle(parts[0])
	c.logf("detected %d slides, title %q", len(parts), title)

	docs := make([]*slides.Document, len(parts))
	for i, part := range parts {
		doc, err := slides.Parse(i, part)
		if err != nil {
			return nil, fmt.Errorf("parsing slide %d: %w", i+1, err)
		}
		doc.ContainerID = assemble.NewContainerID(i)
		docs[i] = doc
	}

	classifier := classify.New(c.cfg.ExtraAllow)
	fetcher := fetch.New(classifier, time.Duration(c.cfg.FetchTimeout)*time.Second)
	pool := download.NewPool(c.cfg.Workers, classifier, c.cache, fetcher, c.reporter)
	if c.hasEssentials {
		pool.SetEssentials(c.essentials)
	}

	var urls []string
	for _, doc := range docs {
		urls = append(urls, inline.CollectURLs(doc.Root, classifier.Eligible)...)
	}
	records, stats := pool.FetchAll(ctx, urls)
	c.logf("resources: %d requested, %d cached, %d downloaded, %d failed",
		stats.Requested, stats.CacheHits, stats.Downloaded, stats.Failed)

	charts := 0
	for _, doc := range docs {
		inline.Embed(doc.Root, records)
		charts += len(chartjs.RewriteScripts(doc))
	}
	c.logf("isolated %d chart canvases", charts)

	out, err := assemble.Build(docs, records, assemble.Options{
		Title:     title,
		StaggerMS: c.cfg.ChartStagger,
	})
	if err != nil {
		return nil, fmt.Errorf("assembling deck: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(outputPath, []byte(out), 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", outputPath, err)
	}

	return &Result{
		OutputPath: outputPath,
		Slides:     len(docs),
		Charts:     charts,
		Stats:      stats,
		Duration:   time.Since(start),
	}, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
