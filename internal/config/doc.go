// Package config loads process configuration from environment
// variables. Both adapters and all provider clients are configured
// from the single Config struct produced here.
package config
