// Package tools provides the gateway's in-process tool capabilities.
//
// Three tool families are included:
//
//	web_fetch       - fetch a URL, extract title and readable text (web)
//	code_complexity - structural metrics for Go source (code-analysis)
//	code_patterns   - regex pattern counts over source text (code-analysis)
//	generate_code   - provider-backed generation with "auto" selection (workflow)
//
// Each tool is exposed as a capability.Source so the startup load table can
// register it; a source whose prerequisites are missing (e.g. generate_code
// without any providers) is skipped rather than failing startup.
package tools
