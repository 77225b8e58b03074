// Package config loads runtime configuration for the roomadmin CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Optional dotenv file selected with -env, then ROOMADMIN_* environment
//     variables (S3 settings use ROOMADMIN_S3_*).
//  4. Command-line flags.
//
// Supported flags
//
//	-a string   API base URL
//	-t int      request timeout (seconds)
//	-u int      upload/delete concurrency
//	-l string   log level
//
// # JSON schema
//
//	{
//	  "api_base_url": "https://api.example.com",
//	  "request_timeout": "15s",
//	  "retry_limit": 2,
//	  "upload_concurrency": 4,
//	  "upload_backend": "s3",
//	  "cache_ttl": "5m",
//	  "s3": {"endpoint": "http://127.0.0.1:9000", "bucket": "rooms"}
//	}
package config
