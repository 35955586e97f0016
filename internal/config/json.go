package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/placebot/internal/flagx"
	"github.com/dmitrijs2005/placebot/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations
// use timex.Duration so the file may say "24h" or give nanoseconds.
// Pointer fields distinguish "absent" from an explicit zero.
type JsonConfig struct {
	UploadDir       string          `json:"upload_dir"`
	MaxFileSize     int64           `json:"max_file_size"`
	FileMaxAge      *timex.Duration `json:"file_max_age"`
	CleanupInterval *timex.Duration `json:"cleanup_interval"`
	StorageBackend  string          `json:"storage_backend"`

	S3RootUser     string `json:"s3_root_user"`
	S3RootPassword string `json:"s3_root_password"`
	S3Bucket       string `json:"s3_bucket"`
	S3Region       string `json:"s3_region"`
	S3BaseEndpoint string `json:"s3_base_endpoint"`
	S3Prefix       string `json:"s3_prefix"`

	OperatorID      string   `json:"operator_id"`
	OperatorRoles   []string `json:"operator_roles"`
	OperatorAdmin   *bool    `json:"operator_admin"`
	AllowedRoleID   string   `json:"allowed_role_id"`
	AllowedRoleName string   `json:"allowed_role_name"`

	HTTPTimeout *timex.Duration `json:"http_timeout"`
	UserAgent   string          `json:"user_agent"`
	UsersURL    string          `json:"users_url"`
	AuthURL     string          `json:"auth_url"`
	DataURL     string          `json:"data_url"`
	DevelopURL  string          `json:"develop_url"`
	GamesURL    string          `json:"games_url"`
	WWWURL      string          `json:"www_url"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// The file path comes from -c/-config (or $PLACEBOT_CONFIG) via
// flagx.JsonConfigFlags; with no path the function returns without changes.
// Only keys present in the file override the current values. Read or
// unmarshal errors panic, as with flag errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	jc.apply(cfg)
}

func (jc *JsonConfig) apply(cfg *Config) {
	setString(&cfg.UploadDir, jc.UploadDir)
	if jc.MaxFileSize > 0 {
		cfg.MaxFileSize = jc.MaxFileSize
	}
	setDuration(&cfg.FileMaxAge, jc.FileMaxAge)
	setDuration(&cfg.CleanupInterval, jc.CleanupInterval)
	setString(&cfg.StorageBackend, jc.StorageBackend)

	setString(&cfg.S3RootUser, jc.S3RootUser)
	setString(&cfg.S3RootPassword, jc.S3RootPassword)
	setString(&cfg.S3Bucket, jc.S3Bucket)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3BaseEndpoint, jc.S3BaseEndpoint)
	setString(&cfg.S3Prefix, jc.S3Prefix)

	setString(&cfg.OperatorID, jc.OperatorID)
	if jc.OperatorRoles != nil {
		cfg.OperatorRoles = jc.OperatorRoles
	}
	if jc.OperatorAdmin != nil {
		cfg.OperatorAdmin = *jc.OperatorAdmin
	}
	setString(&cfg.AllowedRoleID, jc.AllowedRoleID)
	setString(&cfg.AllowedRoleName, jc.AllowedRoleName)

	setDuration(&cfg.HTTPTimeout, jc.HTTPTimeout)
	setString(&cfg.UserAgent, jc.UserAgent)
	setString(&cfg.UsersURL, jc.UsersURL)
	setString(&cfg.AuthURL, jc.AuthURL)
	setString(&cfg.DataURL, jc.DataURL)
	setString(&cfg.DevelopURL, jc.DevelopURL)
	setString(&cfg.GamesURL, jc.GamesURL)
	setString(&cfg.WWWURL, jc.WWWURL)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v *timex.Duration) {
	if v != nil {
		*dst = v.Duration
	}
}
