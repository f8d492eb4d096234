package note

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"
)

// Stage directory names under the vault root. The capture directory is the
// staging area newly created notes land in; the engine relocates eligible
// notes into the refined and published directories. Archive is written only
// by explicit user commands.
const (
	CaptureDirName   = "capture"
	RefinedDirName   = "refined"
	PublishedDirName = "published"
	ArchiveDirName   = "archive"
)

// Default score thresholds for the promotion rules.
const (
	DefaultFleetingScore  = 0.6
	DefaultPermanentScore = 0.7
)

// Config holds all configuration options.
type Config struct {
	// From config files (serialized)
	VaultDir       string  `json:"vault_dir"`
	FleetingScore  float64 `json:"fleeting_score,omitempty"`
	PermanentScore float64 `json:"permanent_score,omitempty"`

	// Resolved paths (computed, not serialized)
	EffectiveCwd string `json:"-"` // Absolute working directory (from -C flag or os.Getwd)
	VaultDirAbs  string `json:"-"` // Absolute path to the vault root

	// Sources tracks which config files were loaded (for diagnostics)
	Sources ConfigSources `json:"-"`
}

// ConfigSources tracks which config files were loaded.
type ConfigSources struct {
	Global  string // Path to global config if loaded, empty otherwise
	Project string // Path to project config if loaded, empty otherwise
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		VaultDir:       ".zet",
		FleetingScore:  DefaultFleetingScore,
		PermanentScore: DefaultPermanentScore,
	}
}

// ConfigFileName is the default project config file name.
const ConfigFileName = ".zet.json"

// CaptureDir returns the absolute capture (staging) directory.
func (c Config) CaptureDir() string { return filepath.Join(c.VaultDirAbs, CaptureDirName) }

// RefinedDir returns the absolute refined-notes directory.
func (c Config) RefinedDir() string { return filepath.Join(c.VaultDirAbs, RefinedDirName) }

// PublishedDir returns the absolute published-notes directory.
func (c Config) PublishedDir() string { return filepath.Join(c.VaultDirAbs, PublishedDirName) }

// ArchiveDir returns the absolute archive directory.
func (c Config) ArchiveDir() string { return filepath.Join(c.VaultDirAbs, ArchiveDirName) }

// getGlobalConfigPath returns the path to the global config file.
// Uses $XDG_CONFIG_HOME/zet/config.json if set, otherwise ~/.config/zet/config.json.
// Returns empty string if home directory cannot be determined.
func getGlobalConfigPath(env map[string]string) string {
	if xdgConfig := env["XDG_CONFIG_HOME"]; xdgConfig != "" {
		return filepath.Join(xdgConfig, "zet", "config.json")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "zet", "config.json")
	}

	return ""
}

// LoadConfigInput holds the inputs for LoadConfig.
type LoadConfigInput struct {
	WorkDirOverride  string            // -C/--cwd flag value; if empty, os.Getwd() is used
	ConfigPath       string            // -c/--config flag value
	VaultDirOverride string            // --vault-dir flag value; empty means no override
	Env              map[string]string // environment variables
}

// LoadConfig loads configuration with the following precedence (highest wins):
// 1. Defaults
// 2. Global user config (~/.config/zet/config.json or $XDG_CONFIG_HOME/zet/config.json)
// 3. Project config file at default location (.zet.json, if exists)
// 4. Explicit config file via ConfigPath (if non-empty)
// 5. CLI overrides.
//
// All paths in the returned Config are resolved to absolute paths.
func LoadConfig(input LoadConfigInput) (Config, error) {
	workDir := input.WorkDirOverride
	if workDir == "" {
		var err error

		workDir, err = os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("cannot get working directory: %w", err)
		}
	}

	cfg := DefaultConfig()

	globalCfg, globalPath, err := loadGlobalConfig(input.Env)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Global = globalPath
	cfg = mergeConfig(cfg, globalCfg)

	projectCfg, projectPath, err := loadProjectConfig(workDir, input.ConfigPath)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Project = projectPath
	cfg = mergeConfig(cfg, projectCfg)

	if input.VaultDirOverride != "" {
		cfg.VaultDir = input.VaultDirOverride
	}

	validateErr := validateConfig(cfg)
	if validateErr != nil {
		return Config{}, validateErr
	}

	cfg.EffectiveCwd = workDir

	if filepath.IsAbs(cfg.VaultDir) {
		cfg.VaultDirAbs = cfg.VaultDir
	} else {
		cfg.VaultDirAbs = filepath.Join(workDir, cfg.VaultDir)
	}

	return cfg, nil
}

// loadGlobalConfig loads the global user config file if it exists.
// Returns the config, the path if loaded, and any error.
func loadGlobalConfig(env map[string]string) (Config, string, error) {
	globalCfgPath := getGlobalConfigPath(env)
	if globalCfgPath == "" {
		return Config{}, "", nil
	}

	globalCfg, explicitEmpty, loaded, err := loadConfigFile(globalCfgPath, false)
	if err != nil {
		return Config{}, "", err
	}

	if !loaded {
		return Config{}, "", nil
	}

	if explicitEmpty["vault_dir"] {
		return Config{}, "", fmt.Errorf("%w %s: %w", ErrConfigInvalid, globalCfgPath, ErrVaultDirEmpty)
	}

	return globalCfg, globalCfgPath, nil
}

// loadProjectConfig loads the project config file (.zet.json) or an explicit config file.
// Returns the config, the path if loaded, and any error.
func loadProjectConfig(workDir, configPath string) (Config, string, error) {
	var cfgFile string

	var mustExist bool

	if configPath != "" {
		// Explicit config file - must exist
		cfgFile = configPath
		if !filepath.IsAbs(cfgFile) {
			cfgFile = filepath.Join(workDir, cfgFile)
		}

		mustExist = true

		// Check existence first to provide a clear "not found" error
		_, statErr := os.Stat(cfgFile)
		if statErr != nil {
			return Config{}, "", fmt.Errorf("%w: %s", ErrConfigFileNotFound, configPath)
		}
	} else {
		// Default project config file - optional
		cfgFile = filepath.Join(workDir, ConfigFileName)
		mustExist = false
	}

	fileCfg, explicitEmpty, loaded, err := loadConfigFile(cfgFile, mustExist)
	if err != nil {
		return Config{}, "", err
	}

	if !loaded {
		return Config{}, "", nil
	}

	if explicitEmpty["vault_dir"] {
		return Config{}, "", fmt.Errorf("%w %s: %w", ErrConfigInvalid, cfgFile, ErrVaultDirEmpty)
	}

	return fileCfg, cfgFile, nil
}

// loadConfigFile loads a config file. If mustExist is false, missing files return zero config.
// Returns the config, a map of explicitly empty fields, whether file was loaded, and any error.
func loadConfigFile(path string, mustExist bool) (Config, map[string]bool, bool, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config paths come from flags and env
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return Config{}, nil, false, nil
		}

		if mustExist {
			return Config{}, nil, false, fmt.Errorf("%w: %s", ErrConfigFileRead, path)
		}

		return Config{}, nil, false, nil
	}

	cfg, explicitEmpty, parseErr := parseConfig(data)
	if parseErr != nil {
		return Config{}, nil, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, parseErr)
	}

	return cfg, explicitEmpty, true, nil
}

func parseConfig(data []byte) (Config, map[string]bool, error) {
	// Standardize JSONC to JSON
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, nil, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg Config

	unmarshalErr := json.Unmarshal(standardized, &cfg)
	if unmarshalErr != nil {
		return Config{}, nil, fmt.Errorf("invalid JSON: %w", unmarshalErr)
	}

	// Check which fields were explicitly set to empty
	var raw map[string]any

	_ = json.Unmarshal(standardized, &raw)

	explicitEmpty := make(map[string]bool)

	if val, exists := raw["vault_dir"]; exists {
		if str, ok := val.(string); ok && str == "" {
			explicitEmpty["vault_dir"] = true
		}
	}

	return cfg, explicitEmpty, nil
}

// mergeConfig overlays non-zero fields of overlay onto base. A threshold of
// zero is treated as "unset"; the defaults are the way to express permissive
// scoring.
func mergeConfig(base, overlay Config) Config {
	if overlay.VaultDir != "" {
		base.VaultDir = overlay.VaultDir
	}

	if overlay.FleetingScore != 0 {
		base.FleetingScore = overlay.FleetingScore
	}

	if overlay.PermanentScore != 0 {
		base.PermanentScore = overlay.PermanentScore
	}

	return base
}

// FormatConfig renders the resolved configuration as indented JSON.
func FormatConfig(cfg Config) (string, error) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", fmt.Errorf("formatting config: %w", err)
	}

	return string(data), nil
}

func validateConfig(cfg Config) error {
	if cfg.VaultDir == "" {
		return ErrVaultDirEmpty
	}

	if cfg.FleetingScore < 0 || cfg.FleetingScore > 1 {
		return fmt.Errorf("%w: fleeting_score %v", ErrScoreOutOfRange, cfg.FleetingScore)
	}

	if cfg.PermanentScore < 0 || cfg.PermanentScore > 1 {
		return fmt.Errorf("%w: permanent_score %v", ErrScoreOutOfRange, cfg.PermanentScore)
	}

	return nil
}
