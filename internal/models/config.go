// Package models contains the data structures used throughout gowol-homelab.
package models

// Config holds the complete configuration for gowol-homelab.
type Config struct {
	Wake   WakeConfig
	Hosts  map[string]string // host name -> MAC address string
	Server ServerConfig
	Log    LogConfig
}

// ServerConfig holds HTTP front-end configuration.
type ServerConfig struct {
	Listen string // e.g. ":8081"
}

// LogConfig holds optional log file settings.
type LogConfig struct {
	File       string // empty disables file output
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}
