package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/smartdrive/internal/flagx"
)

// Flags lists every flag consumed by LoadConfig, including the config file
// flags. Command parsers strip these before reading positional arguments.
var Flags = []string{"-a", "-k", "-t", "-c", "-config", "--config"}

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the server (e.g. "http://127.0.0.1:5000")
//	-k string   token directory
//	-t int      request timeout in seconds
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-k", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "server base URL")
	fs.StringVar(&cfg.TokenDir, "k", cfg.TokenDir, "token directory")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}
