package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/hirepad/internal/flagx"
)

var knownFlags = []string{"-a", "-d", "-t", "-i", "-r", "-l", "-no-color"}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string     backend base URL
//	-d string     path of the local session database
//	-t duration   per-request timeout
//	-i int        online check interval (seconds)
//	-r float      client-side request limit per second (0 = off)
//	-l string     log level (debug, info, warn, error)
//	-no-color     disable colored output
//
// os.Args is filtered through flagx.FilterArgs first, so flags meant for
// other components (such as -c) do not break parsing.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], knownFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "backend base URL")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "session database path")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "request timeout")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.Float64Var(&cfg.RequestsPerSecond, "r", cfg.RequestsPerSecond, "max requests per second (0 disables)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "disable colored output")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
}
