// Package config provides configuration file parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/fgeck/gowol-homelab/internal/models"
	"github.com/fgeck/gowol-homelab/internal/services/hosts"
	"github.com/fgeck/gowol-homelab/internal/wol"
	"github.com/spf13/viper"
)

// DefaultBroadcast is the broadcast list used when wake.broadcast is not configured.
var DefaultBroadcast = []string{"192.168.1.255", "192.168.0.255"}

// Parser handles configuration file parsing.
type Parser struct {
	v *viper.Viper
}

// NewParser creates a new configuration parser.
func NewParser() *Parser {
	v := viper.New()
	v.SetConfigType("yaml")
	return &Parser{v: v}
}

// LoadFile loads configuration from a file path.
func (p *Parser) LoadFile(path string) (*models.Config, error) {
	p.v.SetConfigFile(path)

	if err := p.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	return p.parse()
}

// LoadReader loads configuration from a reader (useful for testing).
func (p *Parser) LoadReader(content string) (*models.Config, error) {
	if err := p.v.ReadConfig(strings.NewReader(content)); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	return p.parse()
}

// Default returns the built-in configuration used when no file is given.
func Default() (*models.Config, error) {
	return NewParser().parse()
}

func (p *Parser) parse() (*models.Config, error) {
	cfg := &models.Config{}

	// Parse wake settings.
	cfg.Wake.Port = p.v.GetInt("wake.port")
	if cfg.Wake.Port == 0 {
		cfg.Wake.Port = wol.DefaultPort
	}
	if err := wol.ValidatePort(cfg.Wake.Port); err != nil {
		return nil, fmt.Errorf("wake.port: %w", err)
	}

	raw := DefaultBroadcast
	if p.v.IsSet("wake.broadcast") {
		raw = p.v.GetStringSlice("wake.broadcast")
	}
	broadcast := make([]string, len(raw))
	for i, s := range raw {
		broadcast[i] = p.expandEnv(s)
	}

	targets, err := wol.ParseTargets(broadcast, cfg.Wake.Port)
	if err != nil {
		return nil, fmt.Errorf("wake.broadcast: %w", err)
	}
	cfg.Wake.Targets = targets

	// Parse host directory; viper lower-cases the names.
	cfg.Hosts = make(map[string]string)
	if p.v.IsSet("hosts") {
		for name, mac := range p.v.GetStringMapString("hosts") {
			cfg.Hosts[name] = p.expandEnv(mac)
		}
	} else {
		for name, mac := range hosts.DefaultHosts {
			cfg.Hosts[name] = mac
		}
	}

	// Parse HTTP server settings.
	cfg.Server = models.ServerConfig{
		Listen: p.expandEnv(p.v.GetString("server.listen")),
	}

	// Parse optional log file settings.
	cfg.Log = models.LogConfig{
		File:       p.expandEnv(p.v.GetString("log.file")),
		MaxSizeMB:  p.v.GetInt("log.max_size_mb"),
		MaxBackups: p.v.GetInt("log.max_backups"),
		MaxAgeDays: p.v.GetInt("log.max_age_days"),
		Compress:   p.v.GetBool("log.compress"),
	}

	// Set defaults.
	if cfg.Log.MaxSizeMB == 0 {
		cfg.Log.MaxSizeMB = 10
	}
	if cfg.Log.MaxBackups == 0 {
		cfg.Log.MaxBackups = 3
	}
	if cfg.Log.MaxAgeDays == 0 {
		cfg.Log.MaxAgeDays = 28
	}

	return cfg, nil
}

// expandEnv expands environment variables in the format ${VAR} or $VAR.
func (p *Parser) expandEnv(s string) string {
	return os.ExpandEnv(s)
}

// Validate performs validation on the loaded configuration.
func Validate(cfg *models.Config) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil")
	}

	if len(cfg.Wake.Targets) == 0 {
		return fmt.Errorf("wake.broadcast: %w", wol.ErrNoTargets)
	}

	if err := wol.ValidatePort(cfg.Wake.Port); err != nil {
		return fmt.Errorf("wake.port: %w", err)
	}

	for _, t := range cfg.Wake.Targets {
		if t.Host == "" {
			return fmt.Errorf("wake.broadcast: %w: missing host", wol.ErrInvalidTarget)
		}
		if err := wol.ValidatePort(t.Port); err != nil {
			return fmt.Errorf("wake.broadcast: %s: %w", t, err)
		}
	}

	var errs []error
	names := make([]string, 0, len(cfg.Hosts))
	for name := range cfg.Hosts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, err := wol.ParseMAC(cfg.Hosts[name]); err != nil {
			errs = append(errs, fmt.Errorf("hosts.%s: %w", name, err))
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	if cfg.Log.MaxSizeMB < 0 || cfg.Log.MaxBackups < 0 || cfg.Log.MaxAgeDays < 0 {
		return fmt.Errorf("log rotation settings must not be negative")
	}

	return nil
}
