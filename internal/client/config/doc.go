// Package config loads runtime configuration for the hirepad CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables prefixed with HIREPAD_ (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string     backend base URL
//	-d string     session database path
//	-t duration   request timeout
//	-i int        online status check interval (seconds)
//	-r float      request rate limit (requests/second, 0 = off)
//	-l string     log level
//	-no-color     plain output
//
// # Environment
//
//	HIREPAD_SERVER_URL, HIREPAD_DB_PATH, HIREPAD_REQUEST_TIMEOUT,
//	HIREPAD_ONLINE_CHECK_INTERVAL, HIREPAD_REQUESTS_PER_SECOND,
//	HIREPAD_LOG_LEVEL, HIREPAD_NO_COLOR
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "3s" or integer nanoseconds:
//
//	{
//	  "server_url": "http://127.0.0.1:8000/api",
//	  "database_path": "/home/me/.config/hirepad/session.db",
//	  "request_timeout": "10s",
//	  "online_check_interval": "3s",
//	  "requests_per_second": 5,
//	  "log_level": "info"
//	}
package config
