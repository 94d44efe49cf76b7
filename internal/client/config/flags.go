package config

import (
	"flag"
	"os"

	"github.com/Samayank/Renal-Tumor-Detection/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   backend base URL (e.g., "http://127.0.0.1:8080")
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.ServerAddr, "a", config.ServerAddr, "backend base URL")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
