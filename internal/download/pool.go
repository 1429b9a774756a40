// Package download fans de-duplicated resource fetches out across a
// bounded worker pool, merging cache hits with fresh downloads. A task
// failure is logged and leaves its URL absent from the result; the
// aggregate operation always completes.
package download

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/offdeck/offdeck/internal/cache"
	"github.com/offdeck/offdeck/internal/classify"
	"github.com/offdeck/offdeck/internal/fetch"
	"github.com/offdeck/offdeck/internal/progress"
	"github.com/offdeck/offdeck/internal/resource"
)

// EssentialURLs are embedded unconditionally regardless of what the deck
// references: the highlight.js runtime with its stock themes, and Font
// Awesome with its three webfonts.
var EssentialURLs = []string{
	"https://cdnjs.cloudflare.com/ajax/libs/highlight.js/11.9.0/highlight.min.js",
	"https://cdnjs.cloudflare.com/ajax/libs/highlight.js/11.9.0/styles/default.min.css",
	"https://cdnjs.cloudflare.com/ajax/libs/highlight.js/11.9.0/styles/github.min.css",
	"https://cdnjs.cloudflare.com/ajax/libs/highlight.js/11.9.0/styles/monokai.min.css",
	"https://cdnjs.cloudflare.com/ajax/libs/font-awesome/6.4.0/css/all.min.css",
	"https://cdnjs.cloudflare.com/ajax/libs/font-awesome/6.4.0/webfonts/fa-solid-900.woff2",
	"https://cdnjs.cloudflare.com/ajax/libs/font-awesome/6.4.0/webfonts/fa-regular-400.woff2",
	"https://cdnjs.cloudflare.com/ajax/libs/font-awesome/6.4.0/webfonts/fa-brands-400.woff2",
}

// Stats summarizes one FetchAll pass.
type Stats struct {
	Requested  int
	CacheHits  int
	Downloaded int
	Failed     int
}

// Pool dispatches fetches across a fixed number of workers, checking the
// cache before the network for every task.
type Pool struct {
	workers    int
	classifier *classify.Classifier
	cache      *cache.Cache
	fetcher    *fetch.Fetcher
	reporter   progress.Reporter
	essentials []string
}

// NewPool creates a Pool. workers below 1 is clamped to 1.
func NewPool(workers int, cl *classify.Classifier, ca *cache.Cache, f *fetch.Fetcher, rep progress.Reporter) *Pool {
	if workers < 1 {
		workers = 1
	}
	if rep == nil {
		rep = progress.NopReporter{}
	}
	return &Pool{
		workers:    workers,
		classifier: cl,
		cache:      ca,
		fetcher:    f,
		reporter:   rep,
		essentials: EssentialURLs,
	}
}

// SetEssentials overrides the unconditional resource set; used by tests.
func (p *Pool) SetEssentials(urls []string) { p.essentials = urls }

// FetchAll resolves every eligible URL in urls plus the essential set.
// Input is de-duplicated; each key in the result maps to exactly the
// record fetched for it, so the content is independent of completion
// order. Failures are logged and omitted.
func (p *Pool) FetchAll(ctx context.Context, urls []string) (map[string]*resource.Record, Stats) {
	all := p.collect(urls)
	stats := Stats{Requested: len(all)}

	result := make(map[string]*resource.Record, len(all))
	var mu sync.Mutex
	var done int64

	p.reporter.Start(len(all))
	defer p.reporter.Finish()

	sem := make(chan struct{}, p.workers)
	var wg sync.WaitGroup
	for _, u := range all {
		sem <- struct{}{}
		wg.Add(1)
		go func(url string) {
			defer wg.Done()
			defer func() { <-sem }()

			rec, fromCache, err := p.fetchOne(ctx, url)

			mu.Lock()
			if err != nil {
				stats.Failed++
				fmt.Fprintf(os.Stderr, "Warning: fetch failed: %v\n", err)
			} else {
				result[url] = rec
				if fromCache {
					stats.CacheHits++
				} else {
					stats.Downloaded++
				}
			}
			mu.Unlock()

			count := atomic.AddInt64(&done, 1)
			p.reporter.Update(int(count), url)
		}(u)
	}
	wg.Wait()

	return result, stats
}

// fetchOne resolves a single URL: cache first, then network. A freshly
// downloaded record is stored back; a store failure only costs the cache
// entry, never the record.
func (p *Pool) fetchOne(ctx context.Context, url string) (*resource.Record, bool, error) {
	if rec, ok := p.cache.Lookup(url); ok {
		return rec, true, nil
	}
	rec, err := p.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, false, err
	}
	if err := p.cache.Store(rec); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	return rec, false, nil
}

// collect unions urls with the essential set, drops ineligible entries
// and duplicates, and returns a deterministic order.
func (p *Pool) collect(urls []string) []string {
	seen := make(map[string]bool)
	var all []string
	for _, u := range append(append([]string{}, urls...), p.essentials...) {
		if seen[u] || !p.classifier.Eligible(u) {
			continue
		}
		seen[u] = true
		all = append(all, u)
	}
	sort.Strings(all)
	return all
}
