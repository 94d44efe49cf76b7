package config

import (
	"flag"
	"os"
	"time"

	"github.com/Samayank/Renal-Tumor-Detection/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      session token validity, hours
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-x string   S3 key prefix
//	-k int      backup trigger hour (0..23)
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-u", "-p", "-b", "-g", "-e", "-x", "-k"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	tokenValidityDuration := fs.Int("t", int(config.TokenValidityDuration.Hours()), "token_validity_duration (in hours)")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.S3Prefix, "x", config.S3Prefix, "S3 key prefix")
	fs.IntVar(&config.BackupHour, "k", config.BackupHour, "daily backup trigger hour (0..23)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TokenValidityDuration = time.Duration(*tokenValidityDuration) * time.Hour
}
