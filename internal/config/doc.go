// Package config loads runtime configuration for the platekeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) whose path comes from the -c flag.
//  3. Command-line flags applied by the cmd layer, which override earlier
//     values.
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "2s" or integer nanoseconds:
//
//	{
//	  "data_dir": "/var/lib/platekeeper",
//	  "s3_endpoint": "http://localhost:9000",
//	  "s3_region": "us-east-1",
//	  "s3_bucket": "platekeeper",
//	  "s3_access_key": "minioadmin",
//	  "s3_secret_key": "minioadmin",
//	  "retry_attempts": 3,
//	  "retry_delay": "2s",
//	  "max_image_dimension": 2048,
//	  "max_image_bytes": 10485760,
//	  "memory_cache_ttl": "5m"
//	}
//
// Primary API
//
//   - type Config                        — all runtime settings
//   - func Load(path) (*Config, error)   — defaults, then JSON overlay
//   - func (*Config) LoadDefaults()      — sets sensible defaults
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
