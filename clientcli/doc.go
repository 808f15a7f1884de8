// Package clientcli implements the client side of the PNAES API for the
// pnaes-cli binary.
//
// It provides a thin HTTP client over the read-only JSON endpoints, output
// formatters (human-readable tables and raw JSON), and a multi-profile
// YAML configuration file stored at ~/.pnaes/config.yaml.
//
// # Configuration Precedence
//
// The effective endpoint is resolved from (highest to lowest): CLI flags,
// environment variables (PNAES_ENDPOINT, PNAES_PROFILE, PNAES_CONFIG), the
// selected profile in the config file, and the built-in default.
package clientcli
