package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/roomadmin/internal/common"
	"github.com/dmitrijs2005/roomadmin/internal/flagx"
)

// Upload backends understood by UploadBackend.
const (
	UploadBackendAPI = "api"
	UploadBackendS3  = "s3"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config holds runtime settings for the roomadmin CLI.
//
// Units: all durations are time.Duration. RetryLimit counts retries after the
// first attempt.
type Config struct {
	APIBaseURL         string        `env:"API_BASE_URL"`
	RequestTimeout     time.Duration `env:"REQUEST_TIMEOUT"`
	RetryLimit         int           `env:"RETRY_LIMIT"`
	RetryBackoff       time.Duration `env:"RETRY_BACKOFF"`
	TokenRefreshLeeway time.Duration `env:"TOKEN_REFRESH_LEEWAY"`
	UploadConcurrency  int           `env:"UPLOAD_CONCURRENCY"`
	UploadFolder       string        `env:"UPLOAD_FOLDER"`
	UploadBackend      string        `env:"UPLOAD_BACKEND"`
	CacheDSN           string        `env:"CACHE_DSN"`
	CacheTTL           time.Duration `env:"CACHE_TTL"`
	LogLevel           string        `env:"LOG_LEVEL"`
	S3                 S3Config      `envPrefix:"S3_"`
}

// S3Config describes the bucket used when UploadBackend is "s3".
// PublicURL is the prefix under which uploaded objects are reachable; it
// defaults to Endpoint/Bucket when empty.
type S3Config struct {
	Endpoint     string `env:"ENDPOINT"`
	Region       string `env:"REGION"`
	Bucket       string `env:"BUCKET"`
	AccessKey    string `env:"ACCESS_KEY"`
	SecretKey    string `env:"SECRET_KEY"`
	PublicURL    string `env:"PUBLIC_URL"`
	UsePathStyle bool   `env:"USE_PATH_STYLE"`
}

// LoadDefaults populates c with development defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:3000"
	c.RequestTimeout = 15 * time.Second
	c.RetryLimit = 2
	c.RetryBackoff = 300 * time.Millisecond
	c.TokenRefreshLeeway = 30 * time.Second
	c.UploadConcurrency = 4
	c.UploadFolder = string(common.UploadFolderRooms)
	c.UploadBackend = UploadBackendAPI
	c.CacheDSN = "roomadmin.db"
	c.CacheTTL = 5 * time.Minute
	c.LogLevel = "info"
	c.S3.Region = "us-east-1"
	c.S3.UsePathStyle = true
}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("%w: api base url is empty", ErrInvalidConfig)
	}
	if c.UploadConcurrency < 1 {
		return fmt.Errorf("%w: upload concurrency must be positive", ErrInvalidConfig)
	}
	if c.RetryLimit < 0 {
		return fmt.Errorf("%w: retry limit must not be negative", ErrInvalidConfig)
	}
	if !common.UploadFolder(c.UploadFolder).Valid() {
		return fmt.Errorf("%w: upload folder %q", ErrInvalidConfig, c.UploadFolder)
	}
	switch c.UploadBackend {
	case UploadBackendAPI:
	case UploadBackendS3:
		if c.S3.Endpoint == "" || c.S3.Bucket == "" {
			return fmt.Errorf("%w: s3 backend needs endpoint and bucket", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: upload backend %q", ErrInvalidConfig, c.UploadBackend)
	}
	return nil
}

// Load builds a Config from defaults, then the JSON file, then dotenv and
// environment variables, then command-line flags. Later sources win.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	files := flagx.ConfigFileFlags(args)

	if err := parseJson(cfg, files.JSON); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, files.Env); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig is Load over the process arguments.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}
