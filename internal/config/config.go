package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// NodeConfig configures one beamd receive node.
type NodeConfig struct {
	NodeName    string   `toml:"node_name"`
	ListenAddr  string   `toml:"listen_addr"`
	HTTPAddr    string   `toml:"http_addr"`
	CorsOrigins []string `toml:"cors_origins"`
	LogLevel    string   `toml:"log_level"`
}

func DefaultNodeConfig() NodeConfig {
	return NodeConfig{
		NodeName:   "beamd",
		ListenAddr: ":7373",
		HTTPAddr:   ":9090",
		LogLevel:   "info",
	}
}

func LoadNodeConfig(path string) (NodeConfig, error) {
	cfg := DefaultNodeConfig()
	if err := loadToml(path, &cfg); err != nil {
		return NodeConfig{}, err
	}
	if cfg.NodeName == "" {
		cfg.NodeName = "beamd"
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":7373"
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":9090"
	}
	if err := ValidateNodeConfig(cfg); err != nil {
		return NodeConfig{}, err
	}
	return cfg, nil
}

func ValidateNodeConfig(cfg NodeConfig) error {
	if strings.ContainsAny(cfg.NodeName, " \t") {
		return fmt.Errorf("node_name must not contain whitespace: %q", cfg.NodeName)
	}
	if !strings.Contains(cfg.ListenAddr, ":") {
		return fmt.Errorf("listen_addr must be host:port: %q", cfg.ListenAddr)
	}
	if !strings.Contains(cfg.HTTPAddr, ":") {
		return fmt.Errorf("http_addr must be host:port: %q", cfg.HTTPAddr)
	}
	if cfg.ListenAddr == cfg.HTTPAddr {
		return fmt.Errorf("listen_addr and http_addr must differ: %q", cfg.ListenAddr)
	}
	return nil
}

func loadToml(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return nil
}
