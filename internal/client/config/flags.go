package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/dmitrijs2005/roomadmin/internal/flagx"
)

// parseFlags overlays cfg with command-line flags.
//
//	-a string   API base URL
//	-t int      request timeout (seconds)
//	-u int      upload/delete concurrency
//	-l string   log level
//
// Other arguments are filtered out with flagx.FilterArgs first.
func parseFlags(cfg *Config, args []string) error {
	filtered := flagx.FilterArgs(args, []string{"-a", "-t", "-u", "-l"})

	fs := flag.NewFlagSet("roomadmin", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "API base URL")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.IntVar(&cfg.UploadConcurrency, "u", cfg.UploadConcurrency, "max concurrent uploads/deletes")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level: debug, info, warn, error")

	if err := fs.Parse(filtered); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	return nil
}
