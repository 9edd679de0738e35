// Package config loads optional TOML overrides for the assembler and
// emulator CLIs: default output format, default start address, and
// whether the timing report is printed. Every field has a working
// default, so a missing or absent config file is never an error.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config holds the overridable defaults for both argus400asm and
// argus400emu. Emulator.DefaultMachine and Listing.PrintHeader are
// loaded and saved but neither CLI reads them.
type Config struct {
	Assembler struct {
		OutputFormat string `toml:"output_format"` // "hex" or "bin"
		StartAddress uint32 `toml:"start_address"`
		ImageSize    uint32 `toml:"image_size"`
	} `toml:"assembler"`

	Emulator struct {
		DefaultMachine string `toml:"default_machine"` // "100", "400", or "500"
		ShowListing    bool   `toml:"show_listing"`
		ShowTiming     bool   `toml:"show_timing"`
	} `toml:"emulator"`

	Listing struct {
		PrintHeader bool `toml:"print_header"`
	} `toml:"listing"`
}

// DefaultConfig returns the configuration the CLIs use when no config
// file is present.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Assembler.OutputFormat = "hex"
	cfg.Assembler.StartAddress = 0
	cfg.Assembler.ImageSize = 0 // 0 means "16384 - start address"

	cfg.Emulator.DefaultMachine = "500"
	cfg.Emulator.ShowListing = true
	cfg.Emulator.ShowTiming = true

	cfg.Listing.PrintHeader = true

	return cfg
}

// GetConfigPath returns the platform-specific config file path.
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "argus400")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "argus400")

	default:
		return "config.toml"
	}

	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "config.toml"
	}

	return filepath.Join(configDir, "config.toml")
}

// Load loads configuration from the default config file, falling back
// to DefaultConfig if it does not exist.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads configuration from the specified file.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// SaveTo writes c to path as TOML, creating parent directories as
// needed.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path) // #nosec G304 -- user config file path
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}
