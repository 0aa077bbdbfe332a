// Package config handles configuration loading for beacon-gateway.
//
// # Overview
//
// Configuration is loaded from YAML files with environment variable expansion.
// The package provides validation and sensible defaults.
//
// # Environment Variable Expansion
//
// Configuration values can reference environment variables:
//
//	auth:
//	  jwt_secret: "${BEACON_JWT_SECRET}"
//
// Syntax: ${VAR_NAME}
//
// # Configuration Sections
//
// Server and dispatch:
//
//	server:
//	  http_addr: "0.0.0.0:8080"
//	dispatch:
//	  default_provider: "anthropic"
//	  timeout: "30s"
//
// Providers (each section optional):
//
//	providers:
//	  openai:
//	    enabled: true
//	    api_key: "${OPENAI_API_KEY}"
//	    models: ["gpt-4o", "gpt-4o-mini"]
//	  anthropic:
//	    enabled: true
//	    api_key: "${ANTHROPIC_API_KEY}"
//	    models: ["claude-sonnet-4-5"]
//
// Database, logging, metrics:
//
//	database:
//	  path: "/var/lib/beacon/gateway.db"
//	logging:
//	  level: "info"   # debug, info, warn, error
//	  format: "text"  # text, json
//	metrics:
//	  enabled: true
//	  path: "/metrics"
//
// # Validation
//
// Load() validates that the HTTP address and database path are set, that the
// default provider (when named) is an enabled provider, that enabled
// providers list at least one model, and that a JWT secret is present when
// auth is required.
package config
