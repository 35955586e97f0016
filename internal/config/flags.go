package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/placebot/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-d string     upload directory
//	-m int        maximum upload size in bytes
//	-x duration   file max age (e.g. "24h")
//	-i duration   cleanup interval, 0 disables the sweeper
//	-s string     storage backend: local, s3 or minio
//	-u string     S3 root user
//	-p string     S3 root password
//	-b string     S3 bucket
//	-g string     S3 region
//	-e string     S3 base endpoint
//	-k string     S3 key prefix
//	-o string     operator id
//	-r string     operator roles, comma separated ("id:name" or "name")
//	-admin        operator has administrator rights (use -admin=true)
//	-role-id      allowed role id
//	-role-name    allowed role name, used when no role id is set
//	-t duration   platform HTTP timeout
//	-ua string    User-Agent sent to the platform
//
// os.Args is filtered with flagx.FilterArgs first so that flags meant for
// other components (such as -c) do not cause parse errors.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{
		"-d", "-m", "-x", "-i", "-s",
		"-u", "-p", "-b", "-g", "-e", "-k",
		"-o", "-r", "-admin", "-role-id", "-role-name",
		"-t", "-ua",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.UploadDir, "d", cfg.UploadDir, "upload directory")
	fs.Int64Var(&cfg.MaxFileSize, "m", cfg.MaxFileSize, "maximum upload size in bytes")
	fs.DurationVar(&cfg.FileMaxAge, "x", cfg.FileMaxAge, "file max age")
	fs.DurationVar(&cfg.CleanupInterval, "i", cfg.CleanupInterval, "cleanup interval")
	fs.StringVar(&cfg.StorageBackend, "s", cfg.StorageBackend, "storage backend (local|s3|minio)")

	fs.StringVar(&cfg.S3RootUser, "u", cfg.S3RootUser, "S3 root user")
	fs.StringVar(&cfg.S3RootPassword, "p", cfg.S3RootPassword, "S3 root password")
	fs.StringVar(&cfg.S3Bucket, "b", cfg.S3Bucket, "S3 bucket")
	fs.StringVar(&cfg.S3Region, "g", cfg.S3Region, "S3 region")
	fs.StringVar(&cfg.S3BaseEndpoint, "e", cfg.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&cfg.S3Prefix, "k", cfg.S3Prefix, "S3 key prefix")

	fs.StringVar(&cfg.OperatorID, "o", cfg.OperatorID, "operator id")
	roles := fs.String("r", "", "operator roles, comma separated")
	fs.BoolVar(&cfg.OperatorAdmin, "admin", cfg.OperatorAdmin, "operator has administrator rights")
	fs.StringVar(&cfg.AllowedRoleID, "role-id", cfg.AllowedRoleID, "allowed role id")
	fs.StringVar(&cfg.AllowedRoleName, "role-name", cfg.AllowedRoleName, "allowed role name")

	fs.DurationVar(&cfg.HTTPTimeout, "t", cfg.HTTPTimeout, "platform HTTP timeout")
	fs.StringVar(&cfg.UserAgent, "ua", cfg.UserAgent, "platform User-Agent")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	if *roles != "" {
		cfg.OperatorRoles = flagx.SplitList(*roles)
	}
}
