package config

// DefaultConfig returns a Config with sensible defaults. The directory
// layout matches the conventional project root: slides are read from
// source/, converted decks land in output/, fetched resources persist
// under cache/.
func DefaultConfig() *Config {
	return &Config{
		SourceDir:    "source",
		OutputDir:    "output",
		CacheDir:     "cache",
		Workers:      5,
		FetchTimeout: 30,
		ChartStagger: 500,
		ServePort:    8080,
	}
}
