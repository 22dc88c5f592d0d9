package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bob-yamaguchi/tex-shooter/logger"
)

const (
	defaultListenAddr = "127.0.0.1:8420"
	defaultAssetsDir  = "assets"

	defaultPreviewMaxWidth  = 1024
	defaultPreviewMaxHeight = 1024
)

var (
	// defaultRawExtensions are the raw files imported into a process.
	defaultRawExtensions = []string{"cr2", "cr3", "arw", "raw"}

	defaultJPGExtensions = []string{"jpg", "jpeg"}

	// defaultSidecarExtensions are edit sidecar files (e.g. Lightroom's XMP)
	// pruned when their raw file is gone.
	defaultSidecarExtensions = []string{"xmp"}
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Project ProjectConfig `yaml:"project"`
	Preview PreviewConfig `yaml:"preview"`
	Import  ImportConfig  `yaml:"import"`
	Logging LoggingConfig `yaml:"logging"`
}

type ServerConfig struct {
	ListenAddr string `yaml:"listen_addr"`
	AssetsDir  string `yaml:"assets_dir"`
}

type ProjectConfig struct {
	// SettingsPath defaults to ~/texshooter.json when empty.
	SettingsPath string `yaml:"settings_path"`
}

type PreviewConfig struct {
	MaxWidth  int `yaml:"max_width"`
	MaxHeight int `yaml:"max_height"`
}

type ImportConfig struct {
	RawExtensions     []string `yaml:"raw_extensions"`
	JPGExtensions     []string `yaml:"jpg_extensions"`
	SidecarExtensions []string `yaml:"sidecar_extensions"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			ListenAddr: defaultListenAddr,
			AssetsDir:  defaultAssetsDir,
		},
		Preview: PreviewConfig{
			MaxWidth:  defaultPreviewMaxWidth,
			MaxHeight: defaultPreviewMaxHeight,
		},
		Import: ImportConfig{
			RawExtensions:     defaultRawExtensions,
			JPGExtensions:     defaultJPGExtensions,
			SidecarExtensions: defaultSidecarExtensions,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfigFile reads a YAML config over DefaultConfig. Unknown keys and
// trailing documents are rejected.
func LoadConfigFile(path string) (Config, error) {
	if path == "" {
		return Config{}, errors.New("config path is empty")
	}
	b, err := os.ReadFile(ExpandPath(path))
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	cfg := DefaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)

	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config yaml: %w", err)
	}
	if err := dec.Decode(&struct{}{}); err == nil {
		return Config{}, errors.New("decode config yaml: unexpected trailing document")
	}

	return cfg, nil
}

// FlagOverrides holds command line values; nil fields leave the config as is.
type FlagOverrides struct {
	ListenAddr   *string
	AssetsDir    *string
	SettingsPath *string
	LogLevel     *string
}

func (o FlagOverrides) Apply(cfg *Config) {
	if cfg == nil {
		return
	}
	if o.ListenAddr != nil {
		cfg.Server.ListenAddr = *o.ListenAddr
	}
	if o.AssetsDir != nil {
		cfg.Server.AssetsDir = *o.AssetsDir
	}
	if o.SettingsPath != nil {
		cfg.Project.SettingsPath = *o.SettingsPath
	}
	if o.LogLevel != nil {
		cfg.Logging.Level = *o.LogLevel
	}
}

// Validate checks the config and normalizes extension lists to lower case
// without a leading dot.
func (c *Config) Validate() error {
	if c.Server.ListenAddr == "" {
		return errors.New("server.listen_addr must not be empty")
	}
	if c.Preview.MaxWidth < 0 || c.Preview.MaxHeight < 0 {
		return errors.New("preview.max_width and preview.max_height must be >= 0")
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}

	var err error
	if c.Import.RawExtensions, err = normalizeExtensions("import.raw_extensions", c.Import.RawExtensions); err != nil {
		return err
	}
	if len(c.Import.RawExtensions) == 0 {
		return errors.New("import.raw_extensions must not be empty")
	}
	if c.Import.JPGExtensions, err = normalizeExtensions("import.jpg_extensions", c.Import.JPGExtensions); err != nil {
		return err
	}
	if c.Import.SidecarExtensions, err = normalizeExtensions("import.sidecar_extensions", c.Import.SidecarExtensions); err != nil {
		return err
	}

	c.Server.AssetsDir = ExpandPath(c.Server.AssetsDir)
	c.Project.SettingsPath = ExpandPath(c.Project.SettingsPath)
	return nil
}

func normalizeExtensions(field string, exts []string) ([]string, error) {
	out := make([]string, 0, len(exts))
	for i, ext := range exts {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext == "" {
			return nil, fmt.Errorf("%s[%d] is empty", field, i)
		}
		out = append(out, ext)
	}
	return out, nil
}

// ExpandPath replaces a leading ~ with the home directory.
func ExpandPath(p string) string {
	if p == "" || p[0] != '~' {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	if p == "~" {
		return home
	}
	if len(p) >= 2 && (p[1] == '/' || p[1] == '\\') {
		return filepath.Join(home, p[2:])
	}
	return p
}
