package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Assembler.OutputFormat != "hex" {
		t.Errorf("Expected OutputFormat=hex, got %s", cfg.Assembler.OutputFormat)
	}
	if cfg.Assembler.StartAddress != 0 {
		t.Errorf("Expected StartAddress=0, got %#x", cfg.Assembler.StartAddress)
	}
	if cfg.Assembler.ImageSize != 0 {
		t.Errorf("Expected ImageSize=0 (meaning 16384-start), got %d", cfg.Assembler.ImageSize)
	}

	if cfg.Emulator.DefaultMachine != "500" {
		t.Errorf("Expected DefaultMachine=500, got %s", cfg.Emulator.DefaultMachine)
	}
	if !cfg.Emulator.ShowTiming {
		t.Error("Expected ShowTiming=true")
	}

	if !cfg.Listing.PrintHeader {
		t.Error("Expected PrintHeader=true")
	}
}

func TestGetConfigPath(t *testing.T) {
	path := GetConfigPath()

	if path == "" {
		t.Error("GetConfigPath returned empty string")
	}
	if filepath.Base(path) != "config.toml" {
		t.Errorf("Expected path to end with config.toml, got %s", path)
	}

	switch runtime.GOOS {
	case "darwin", "linux":
		dir := filepath.Dir(path)
		if filepath.Base(dir) != "argus400" && path != "config.toml" {
			t.Errorf("Expected path in argus400 directory or fallback, got %s", path)
		}
	}
}

func TestSaveAndLoad(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "test_config.toml")

	cfg := DefaultConfig()
	cfg.Assembler.OutputFormat = "bin"
	cfg.Assembler.StartAddress = 0x2000
	cfg.Emulator.DefaultMachine = "400"
	cfg.Emulator.ShowTiming = false

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Fatal("Config file was not created")
	}

	loaded, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if loaded.Assembler.OutputFormat != "bin" {
		t.Errorf("Expected OutputFormat=bin, got %s", loaded.Assembler.OutputFormat)
	}
	if loaded.Assembler.StartAddress != 0x2000 {
		t.Errorf("Expected StartAddress=0x2000, got %#x", loaded.Assembler.StartAddress)
	}
	if loaded.Emulator.DefaultMachine != "400" {
		t.Errorf("Expected DefaultMachine=400, got %s", loaded.Emulator.DefaultMachine)
	}
	if loaded.Emulator.ShowTiming {
		t.Error("Expected ShowTiming=false")
	}
}

func TestLoadNonExistent(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "nonexistent.toml")

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("LoadFrom should not error on non-existent file: %v", err)
	}

	if cfg.Assembler.OutputFormat != "hex" {
		t.Error("Expected default config when file doesn't exist")
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "invalid.toml")

	invalidTOML := `
[assembler]
start_address = "not a number"
`
	if err := os.WriteFile(configPath, []byte(invalidTOML), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	_, err := LoadFrom(configPath)
	if err == nil {
		t.Error("Expected error when loading invalid TOML")
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "subdir1", "subdir2", "config.toml")

	cfg := DefaultConfig()
	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("Config file was not created")
	}

	dir := filepath.Dir(configPath)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		t.Error("Parent directories were not created")
	}
}
