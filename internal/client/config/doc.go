// Package config loads runtime configuration for the SmartDrive CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the SmartDrive HTTP API
//	-k string   directory holding the saved access token
//	-t int      request timeout (seconds)
//
// # JSON schema
//
//	{
//	  "server_url": "http://127.0.0.1:5000",
//	  "token_dir": ".smartdrive",
//	  "request_timeout": "10s"
//	}
package config
