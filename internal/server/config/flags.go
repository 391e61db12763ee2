package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/smartdrive/internal/flagx"
)

var serverFlags = []string{"-a", "-r", "-d", "-s", "-t", "-l", "-u", "-p", "-b", "-g", "-e", "-w", "-U", "-F", "-m", "-S", "-M"}

// parseFlags populates server Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   HTTP bind address (e.g. ":5000")
//	-r string   gRPC health bind address
//	-d string   PostgreSQL DSN
//	-s string   token signing secret
//	-t int      access token validity, minutes
//	-l int      share link validity, seconds
//	-u string   S3 access key
//	-p string   S3 secret key
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g. "http://127.0.0.1:9000")
//	-w string   public URL base for uploaded objects
//	-U string   users table
//	-F string   files table
//	-m int      max upload size, bytes
//	-S string   storage backend (s3|memory)
//	-M string   metadata backend (postgres|memory)
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], serverFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "HTTP address and port to run server")
	fs.StringVar(&config.EndpointAddrGRPC, "r", config.EndpointAddrGRPC, "gRPC health address and port")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "token signing secret")

	accessTokenValidity := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")
	shareLinkValidity := fs.Int("l", int(config.ShareLinkValidityDuration.Seconds()), "share link validity (in seconds)")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 access key")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 secret key")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.S3PublicURLBase, "w", config.S3PublicURLBase, "public URL base for uploaded objects")
	fs.StringVar(&config.UsersTable, "U", config.UsersTable, "users table")
	fs.StringVar(&config.FilesTable, "F", config.FilesTable, "files table")
	fs.Int64Var(&config.MaxUploadSize, "m", config.MaxUploadSize, "max upload size (in bytes)")
	fs.StringVar(&config.StorageBackend, "S", config.StorageBackend, "storage backend: s3|memory")
	fs.StringVar(&config.MetadataBackend, "M", config.MetadataBackend, "metadata backend: postgres|memory")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidity) * time.Minute
	config.ShareLinkValidityDuration = time.Duration(*shareLinkValidity) * time.Second
}
