package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson(t *testing.T) {
	t.Run("overlays present fields", func(t *testing.T) {
		path := writeTempJSON(t, map[string]any{
			"api_base_url":    "https://api.example",
			"request_timeout": "20s",
			"retry_limit":     0,
			"cache_ttl":       "1m",
			"upload_backend":  "s3",
			"s3": map[string]any{
				"endpoint":       "http://minio:9000",
				"bucket":         "rooms",
				"use_path_style": false,
			},
		})

		var cfg Config
		cfg.LoadDefaults()
		require.NoError(t, parseJson(&cfg, path))

		assert.Equal(t, "https://api.example", cfg.APIBaseURL)
		assert.Equal(t, 20*time.Second, cfg.RequestTimeout)
		assert.Equal(t, 0, cfg.RetryLimit)
		assert.Equal(t, time.Minute, cfg.CacheTTL)
		assert.Equal(t, UploadBackendS3, cfg.UploadBackend)
		assert.Equal(t, "http://minio:9000", cfg.S3.Endpoint)
		assert.Equal(t, "rooms", cfg.S3.Bucket)
		assert.Equal(t, "us-east-1", cfg.S3.Region, "absent field keeps default")
		assert.False(t, cfg.S3.UsePathStyle)
		assert.Equal(t, 4, cfg.UploadConcurrency, "absent field keeps default")
	})

	t.Run("empty path is a no-op", func(t *testing.T) {
		cfg := Config{APIBaseURL: "keep"}
		require.NoError(t, parseJson(&cfg, ""))
		assert.Equal(t, "keep", cfg.APIBaseURL)
	})

	t.Run("missing file", func(t *testing.T) {
		var cfg Config
		require.Error(t, parseJson(&cfg, filepath.Join(t.TempDir(), "absent.json")))
	})

	t.Run("invalid json", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ not json`), 0o600))

		var cfg Config
		require.Error(t, parseJson(&cfg, bad))
	})
}
