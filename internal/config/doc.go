// Package config loads pasta's client configuration.
//
// # Configuration Discovery
//
// Load resolves settings in this order, later steps winning:
//
//  1. Built-in defaults
//  2. The TOML file at the given path, or ~/.config/pasta/config.toml
//  3. Environment variables PASTA_BACKEND_URL, PASTA_PROFILE and
//     PASTA_LOG_LEVEL
//
// A missing config file is not an error. LoadDotEnv can populate the
// environment from .env files first; variables already set are kept.
// Command line flags are applied by the caller on top of the result.
//
// # TOML Format
//
//	backend_url = "https://paste.example.com"
//	share_url = "https://paste.example.com"
//	data_dir = "~/.local/share/pasta"
//	profile = "default"
//	log_level = "info"
//	log_file = "~/.local/share/pasta/pasta.log"
//	request_timeout = "10s"
//	requests_per_second = 5
//	recent_limit = 20
//
// Every field is optional. String values are trimmed, empty values keep the
// default, and paths get tilde expansion.
//
// # Profiles
//
// Each profile keeps its own draft text, editor options and ownership
// secret under <data_dir>/<profile>, so separate identities never share
// overwrite rights.
package config
