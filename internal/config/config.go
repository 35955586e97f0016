// Package config handles configuration for the bot: defaults, an optional
// JSON overlay and command-line flags, in that order of precedence.
package config

import (
	"time"

	"github.com/dmitrijs2005/placebot/internal/roblox"
)

const (
	BackendLocal = "local"
	BackendS3    = "s3"
	BackendMinio = "minio"
)

// Config holds runtime settings for placebot.
//
// Fields:
//   - UploadDir: directory of the local store.
//   - MaxFileSize: largest accepted upload, in bytes.
//   - FileMaxAge / CleanupInterval: stored files older than FileMaxAge are
//     swept every CleanupInterval; a zero interval disables the sweeper.
//   - StorageBackend: "local", "s3" (AWS SDK) or "minio" (native MinIO client).
//   - S3*: settings shared by both object-store backends.
//   - Operator*: identity of the person driving the CLI, checked against
//     AllowedRoleID / AllowedRoleName.
//   - HTTPTimeout / UserAgent / *URL: platform client settings.
type Config struct {
	UploadDir       string
	MaxFileSize     int64
	FileMaxAge      time.Duration
	CleanupInterval time.Duration
	StorageBackend  string

	S3RootUser     string
	S3RootPassword string
	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string
	S3Prefix       string

	OperatorID      string
	OperatorRoles   []string
	OperatorAdmin   bool
	AllowedRoleID   string
	AllowedRoleName string

	HTTPTimeout time.Duration
	UserAgent   string
	UsersURL    string
	AuthURL     string
	DataURL     string
	DevelopURL  string
	GamesURL    string
	WWWURL      string
}

// LoadDefaults populates c with defaults suitable for a local run.
func (c *Config) LoadDefaults() {
	e := roblox.DefaultEndpoints()

	c.UploadDir = "storage/uploads"
	c.MaxFileSize = 100 << 20
	c.FileMaxAge = 24 * time.Hour
	c.CleanupInterval = time.Hour
	c.StorageBackend = BackendLocal

	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "places"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"

	c.OperatorID = "local"
	c.OperatorRoles = []string{"RobloxDev"}
	c.AllowedRoleName = "RobloxDev"

	c.HTTPTimeout = 60 * time.Second
	c.UsersURL = e.Users
	c.AuthURL = e.Auth
	c.DataURL = e.Data
	c.DevelopURL = e.Develop
	c.GamesURL = e.Games
	c.WWWURL = e.WWW
}

// Endpoints returns the platform base URLs.
func (c *Config) Endpoints() roblox.Endpoints {
	return roblox.Endpoints{
		Users:   c.UsersURL,
		Auth:    c.AuthURL,
		Data:    c.DataURL,
		Develop: c.DevelopURL,
		Games:   c.GamesURL,
		WWW:     c.WWWURL,
	}
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
