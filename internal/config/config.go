// Package config loads tool configuration for the keygen CLI: keystore
// location, mnemonic defaults and legacy-path warnings. File values are
// merged over defaults, environment variables win over both.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Keystore KeystoreConfig `yaml:"keystore"`
	Mnemonic MnemonicConfig `yaml:"mnemonic"`
	Legacy   LegacyConfig   `yaml:"legacy"`
}

type KeystoreConfig struct {
	Dir string `yaml:"dir"`
}

type MnemonicConfig struct {
	Language    string `yaml:"language"`
	EntropyBits int    `yaml:"entropyBits"`
}

type LegacyConfig struct {
	Warnings *bool `yaml:"warnings"`
}

// Resolved is the effective configuration after merging.
type Resolved struct {
	KeystoreDir      string
	MnemonicLanguage string
	EntropyBits      int
	LegacyWarnings   bool
}

func Default() Resolved {
	dir := ".aster/keys"
	if home, err := os.UserHomeDir(); err == nil {
		dir = filepath.Join(home, ".aster", "keys")
	}
	return Resolved{
		KeystoreDir:      dir,
		MnemonicLanguage: "english",
		EntropyBits:      256,
		LegacyWarnings:   true,
	}
}

// LoadFromPath reads the first readable config file among the explicit path
// and the conventional locations, merges it over defaults and applies
// environment overrides.
func LoadFromPath(configPath string) Resolved {
	cfg := Default()

	candidates := make([]string, 0, 2)
	if configPath != "" {
		candidates = append(candidates, configPath)
	} else {
		candidates = append(candidates,
			"configs/config.yaml",
			filepath.Join(cfg.KeystoreDir, "..", "config.yaml"),
		)
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var parsed Config
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			continue
		}
		Merge(&cfg, parsed)
		break
	}

	ApplyEnvOverrides(&cfg)
	return cfg
}

func Merge(dst *Resolved, src Config) {
	if src.Keystore.Dir != "" {
		dst.KeystoreDir = src.Keystore.Dir
	}
	if src.Mnemonic.Language != "" {
		dst.MnemonicLanguage = src.Mnemonic.Language
	}
	if src.Mnemonic.EntropyBits != 0 {
		dst.EntropyBits = src.Mnemonic.EntropyBits
	}
	if src.Legacy.Warnings != nil {
		dst.LegacyWarnings = *src.Legacy.Warnings
	}
}

func ApplyEnvOverrides(cfg *Resolved) {
	if dir := strings.TrimSpace(os.Getenv("ASTER_KEYSTORE_DIR")); dir != "" {
		cfg.KeystoreDir = dir
	}
	if lang := strings.TrimSpace(os.Getenv("ASTER_MNEMONIC_LANGUAGE")); lang != "" {
		cfg.MnemonicLanguage = lang
	}
	if raw := strings.TrimSpace(os.Getenv("ASTER_LEGACY_WARNINGS")); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			cfg.LegacyWarnings = v
		}
	}
}
