package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config represents the compiler configuration
type Config struct {
	// Output settings
	Output struct {
		File     string `toml:"file"`     // assembly output file name
		Comments bool   `toml:"comments"` // interleave ; commentary in the assembly
	} `toml:"output"`

	// Toolchain settings for -assemble and -run
	Toolchain struct {
		Assembler     string   `toml:"assembler"`
		AssemblerArgs []string `toml:"assembler_args"`
		Linker        string   `toml:"linker"`
		LinkerArgs    []string `toml:"linker_args"`
		SDKCommand    string   `toml:"sdk_command"` // prints the syslibroot path
		Binary        string   `toml:"binary"`      // linked output name
	} `toml:"toolchain"`

	// Explorer TUI settings
	Explorer struct {
		ColorOutput bool `toml:"color_output"`
		ASTIndent   int  `toml:"ast_indent"`
	} `toml:"explorer"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	// Output defaults
	cfg.Output.File = "out.s"
	cfg.Output.Comments = true

	// Toolchain defaults target the Darwin/arm64 host pipeline
	cfg.Toolchain.Assembler = "as"
	cfg.Toolchain.AssemblerArgs = []string{"-arch", "arm64"}
	cfg.Toolchain.Linker = "ld"
	cfg.Toolchain.LinkerArgs = []string{"-lSystem", "-e", "_start", "-arch", "arm64"}
	cfg.Toolchain.SDKCommand = "xcrun -sdk macosx --show-sdk-path"
	cfg.Toolchain.Binary = "out"

	// Explorer defaults
	cfg.Explorer.ColorOutput = true
	cfg.Explorer.ASTIndent = 2

	return cfg
}

// GetConfigPath returns the platform-specific config file path
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		// Windows: %APPDATA%\hydrogen\config.toml
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "hydrogen")

	case "darwin", "linux":
		// macOS/Linux: ~/.config/hydrogen/config.toml
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "hydrogen")

	default:
		return "config.toml"
	}

	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "config.toml"
	}

	return filepath.Join(configDir, "config.toml")
}

// Load loads configuration from the default config file
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads configuration from the specified file. A missing file
// yields the defaults.
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

// Save saves configuration to the default config file
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo saves configuration to the specified file
func (c *Config) SaveTo(path string) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path) // #nosec G304 -- user config file path
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close config file: %w", closeErr)
		}
	}()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}
