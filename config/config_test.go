package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Output.File != "out.s" {
		t.Errorf("Expected output file out.s, got %s", cfg.Output.File)
	}
	if !cfg.Output.Comments {
		t.Error("Expected Comments=true")
	}

	if cfg.Toolchain.Assembler != "as" {
		t.Errorf("Expected assembler as, got %s", cfg.Toolchain.Assembler)
	}
	if len(cfg.Toolchain.AssemblerArgs) != 2 || cfg.Toolchain.AssemblerArgs[1] != "arm64" {
		t.Errorf("Unexpected assembler args: %v", cfg.Toolchain.AssemblerArgs)
	}
	if cfg.Toolchain.Binary != "out" {
		t.Errorf("Expected binary out, got %s", cfg.Toolchain.Binary)
	}

	if cfg.Explorer.ASTIndent != 2 {
		t.Errorf("Expected ASTIndent=2, got %d", cfg.Explorer.ASTIndent)
	}
}

func TestGetConfigPath(t *testing.T) {
	path := GetConfigPath()
	if path == "" {
		t.Fatal("GetConfigPath returned empty string")
	}
	if filepath.Base(path) != "config.toml" {
		t.Errorf("Expected path ending in config.toml, got %s", path)
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	// Missing file falls back to defaults
	if cfg.Output.File != "out.s" {
		t.Errorf("Expected defaults, got output file %s", cfg.Output.File)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := DefaultConfig()
	cfg.Output.File = "program.s"
	cfg.Output.Comments = false
	cfg.Toolchain.Binary = "program"

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if loaded.Output.File != "program.s" {
		t.Errorf("Expected program.s, got %s", loaded.Output.File)
	}
	if loaded.Output.Comments {
		t.Error("Expected Comments=false after round trip")
	}
	if loaded.Toolchain.Binary != "program" {
		t.Errorf("Expected binary program, got %s", loaded.Toolchain.Binary)
	}
}

func TestLoadFromPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[output]\nfile = \"custom.s\"\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.Output.File != "custom.s" {
		t.Errorf("Expected custom.s, got %s", cfg.Output.File)
	}
	// Unset sections keep their defaults
	if cfg.Toolchain.Assembler != "as" {
		t.Errorf("Expected default assembler, got %s", cfg.Toolchain.Assembler)
	}
}

func TestLoadFromInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("not [valid toml"), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Error("Expected parse error for invalid TOML")
	}
}
