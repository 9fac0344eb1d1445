// Package config provides configuration loading, merging, and validation
// facilities for the application.
//
// Configuration is assembled from multiple sources in the following priority
// order (earlier sources win for non-zero fields):
//  1. Environment variables (a local .env file is loaded first, if present)
//  2. Command-line flags
//  3. JSON config file
//
// The encryption salt is the one exception: it is accepted only from the
// POLLIVU_SALT environment variable and has neither a flag nor a JSON key.
//
// The main entry points are [GetStructuredConfig] for server/runtime
// configuration and [GetClientConfig] for pollctl configuration.
package config
