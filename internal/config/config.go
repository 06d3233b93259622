package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"mainport/internal/service/calculator"
)

// AppConfig application configuration
type AppConfig struct {
	Server ServerConfig `toml:"server"`
	Data   DataConfig   `toml:"data"`
	Model  ModelConfig  `toml:"model"`
	Limits LimitsConfig `toml:"limits"`
	Log    LogConfig    `toml:"log"`
}

// ServerConfig HTTP server
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig reference data files, relative to DataDir unless absolute
type DataConfig struct {
	DataDir           string   `toml:"data_dir"`
	ScenariosFile     string   `toml:"scenarios_file"`
	HaulFile          string   `toml:"haul_file"`
	EconomicsFile     string   `toml:"economics_file"`
	GovernanceFile    string   `toml:"governance_file"`
	ZonesFile         string   `toml:"zones_file"`
	SessionTTL        Duration `toml:"session_ttl"`
	SessionPurgeEvery Duration `toml:"session_purge_every"`
}

// ModelConfig deployment constants of the calculation model
type ModelConfig struct {
	BaseSlots int                 `toml:"base_slots"`
	Runways   []calculator.Runway `toml:"runways"`
}

// LimitsConfig per-client request limits
type LimitsConfig struct {
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

// LogConfig logging
type LogConfig struct {
	Level string `toml:"level"`
}

// Duration time.Duration that reads "2h" style strings from TOML
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// LoadConfigInfo metadata about how the configuration was loaded
type LoadConfigInfo struct {
	Path          string
	FileFound     bool
	PortSpecified bool
}

// DefaultRunways Schiphol runways and their reference volumes
func DefaultRunways() []calculator.Runway {
	return []calculator.Runway{
		{Name: "Polderbaan", ReferenceVolume: 763},
		{Name: "Zwanenburgbaan", ReferenceVolume: 2058},
		{Name: "Buitenveldertbaan", ReferenceVolume: 1944},
		{Name: "Oostbaan", ReferenceVolume: 467},
		{Name: "Aalsmeerbaan", ReferenceVolume: 1322},
		{Name: "Kaagbaan", ReferenceVolume: 3110},
	}
}

// DefaultConfig default configuration
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    8501,
			DevMode: false,
		},
		Data: DataConfig{
			DataDir:           "data",
			ScenariosFile:     "scenarios.xlsx",
			HaulFile:          "haul_distributions.xlsx",
			EconomicsFile:     "economische_factoren.xlsx",
			GovernanceFile:    "wgi_governance_scores_2023_with_iso3.xlsx",
			ZonesFile:         "geluid_banen.geojson",
			SessionTTL:        Duration{2 * time.Hour},
			SessionPurgeEvery: Duration{5 * time.Minute},
		},
		Model: ModelConfig{
			BaseSlots: 478000,
			Runways:   DefaultRunways(),
		},
		Limits: LimitsConfig{
			RequestsPerSecond: 20,
			Burst:             40,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Params model constants for the calculation engine
func (c *AppConfig) Params() calculator.Params {
	return calculator.Params{
		BaseSlots: c.Model.BaseSlots,
		Runways:   append([]calculator.Runway(nil), c.Model.Runways...),
	}
}

// Validate checks the model section.
func (c *AppConfig) Validate() error {
	if c.Model.BaseSlots <= 0 {
		return fmt.Errorf("model.base_slots must be positive, got %d", c.Model.BaseSlots)
	}
	if len(c.Model.Runways) == 0 {
		return errors.New("model.runways must list at least one runway")
	}
	seen := make(map[string]bool, len(c.Model.Runways))
	for i, r := range c.Model.Runways {
		if strings.TrimSpace(r.Name) == "" {
			return fmt.Errorf("model.runways[%d]: name is empty", i)
		}
		if seen[r.Name] {
			return fmt.Errorf("model.runways[%d]: duplicate runway %s", i, r.Name)
		}
		seen[r.Name] = true
		if r.ReferenceVolume <= 0 {
			return fmt.Errorf("model.runways[%d]: reference_volume must be positive", i)
		}
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	return nil
}

// DataPath resolves a reference data file name against the data directory.
func (c *AppConfig) DataPath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.Data.DataDir, name)
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir directory of the running executable
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// DefaultConfigPath config.toml next to the executable
func DefaultConfigPath() string {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	return filepath.Join(exeDir, "config.toml")
}

// LoadConfigWithInfo loads path (config.toml next to the executable when empty),
// then applies .env and MAINPORT_* environment overrides.
func LoadConfigWithInfo(path string) (*AppConfig, LoadConfigInfo, error) {
	if path == "" {
		path = DefaultConfigPath()
	}
	info := LoadConfigInfo{Path: path}
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		info.FileFound = true
		info.PortSpecified = isPortSpecifiedInToml(data)
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, info, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// no file: defaults
	default:
		return nil, info, err
	}

	// .env is optional
	_ = godotenv.Load()

	if err := applyEnv(config, &info); err != nil {
		return nil, info, err
	}
	if err := config.Validate(); err != nil {
		return nil, info, err
	}
	return config, info, nil
}

// LoadConfig LoadConfigWithInfo without metadata.
func LoadConfig(path string) (*AppConfig, error) {
	config, _, err := LoadConfigWithInfo(path)
	return config, err
}

func applyEnv(config *AppConfig, info *LoadConfigInfo) error {
	if v := os.Getenv("MAINPORT_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("MAINPORT_PORT: %w", err)
		}
		config.Server.Port = port
		info.PortSpecified = true
	}
	if v := os.Getenv("MAINPORT_DATA_DIR"); v != "" {
		config.Data.DataDir = v
	}
	if v := os.Getenv("MAINPORT_DEV"); v != "" {
		dev, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("MAINPORT_DEV: %w", err)
		}
		config.Server.DevMode = dev
	}
	if v := os.Getenv("MAINPORT_LOG_LEVEL"); v != "" {
		config.Log.Level = v
	}
	return nil
}

// SaveConfig writes config to path.
func SaveConfig(config *AppConfig, path string) error {
	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
