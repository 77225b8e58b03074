package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/roomadmin/internal/timex"
)

// JsonConfig is a DTO used only for unmarshalling; durations go through
// timex.Duration so both "3s" and integer nanoseconds are accepted.
type JsonConfig struct {
	APIBaseURL         string         `json:"api_base_url"`
	RequestTimeout     timex.Duration `json:"request_timeout"`
	RetryLimit         *int           `json:"retry_limit"`
	RetryBackoff       timex.Duration `json:"retry_backoff"`
	TokenRefreshLeeway timex.Duration `json:"token_refresh_leeway"`
	UploadConcurrency  int            `json:"upload_concurrency"`
	UploadFolder       string         `json:"upload_folder"`
	UploadBackend      string         `json:"upload_backend"`
	CacheDSN           string         `json:"cache_dsn"`
	CacheTTL           timex.Duration `json:"cache_ttl"`
	LogLevel           string         `json:"log_level"`
	S3                 *JsonS3Config  `json:"s3"`
}

type JsonS3Config struct {
	Endpoint     string `json:"endpoint"`
	Region       string `json:"region"`
	Bucket       string `json:"bucket"`
	AccessKey    string `json:"access_key"`
	SecretKey    string `json:"secret_key"`
	PublicURL    string `json:"public_url"`
	UsePathStyle *bool  `json:"use_path_style"`
}

// parseJson overlays cfg with the values present in the file at path.
// Absent or zero-valued fields leave cfg untouched. An empty path is a no-op.
func parseJson(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&cfg.APIBaseURL, jc.APIBaseURL)
	setString(&cfg.UploadFolder, jc.UploadFolder)
	setString(&cfg.UploadBackend, jc.UploadBackend)
	setString(&cfg.CacheDSN, jc.CacheDSN)
	setString(&cfg.LogLevel, jc.LogLevel)

	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.RetryBackoff.Duration > 0 {
		cfg.RetryBackoff = jc.RetryBackoff.Duration
	}
	if jc.TokenRefreshLeeway.Duration > 0 {
		cfg.TokenRefreshLeeway = jc.TokenRefreshLeeway.Duration
	}
	if jc.CacheTTL.Duration > 0 {
		cfg.CacheTTL = jc.CacheTTL.Duration
	}
	if jc.RetryLimit != nil {
		cfg.RetryLimit = *jc.RetryLimit
	}
	if jc.UploadConcurrency > 0 {
		cfg.UploadConcurrency = jc.UploadConcurrency
	}

	if s := jc.S3; s != nil {
		setString(&cfg.S3.Endpoint, s.Endpoint)
		setString(&cfg.S3.Region, s.Region)
		setString(&cfg.S3.Bucket, s.Bucket)
		setString(&cfg.S3.AccessKey, s.AccessKey)
		setString(&cfg.S3.SecretKey, s.SecretKey)
		setString(&cfg.S3.PublicURL, s.PublicURL)
		if s.UsePathStyle != nil {
			cfg.S3.UsePathStyle = *s.UsePathStyle
		}
	}

	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
