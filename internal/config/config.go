package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Window     WindowConfig     `mapstructure:"window" yaml:"window"`
	Capture    CaptureConfig    `mapstructure:"capture" yaml:"capture"`
	Effects    EffectsConfig    `mapstructure:"effects" yaml:"effects"`
	Screenshot ScreenshotConfig `mapstructure:"screenshot" yaml:"screenshot"`
	Log        LogConfig        `mapstructure:"log" yaml:"log"`
}

type WindowConfig struct {
	Width       int    `mapstructure:"width" yaml:"width"`
	Height      int    `mapstructure:"height" yaml:"height"`
	Title       string `mapstructure:"title" yaml:"title"`
	Borderless  bool   `mapstructure:"borderless" yaml:"borderless"`
	AlwaysOnTop bool   `mapstructure:"always_on_top" yaml:"always_on_top"`
}

type CaptureConfig struct {
	// DisplayIndex is the output ordinal on the render adapter (0 = primary).
	DisplayIndex int `mapstructure:"display_index" yaml:"display_index"`
}

type EffectsConfig struct {
	// Start is the effect active at startup, by name or 1-based ordinal.
	Start string `mapstructure:"start" yaml:"start"`
}

type ScreenshotConfig struct {
	Dir    string `mapstructure:"dir" yaml:"dir"`
	Prefix string `mapstructure:"prefix" yaml:"prefix"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:      1280,
			Height:     720,
			Title:      "scrimshady",
			Borderless: true,
		},
		Capture: CaptureConfig{DisplayIndex: 0},
		Effects: EffectsConfig{Start: "wobbly"},
		Screenshot: ScreenshotConfig{
			Dir:    ".",
			Prefix: "scrimshady",
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

func Load(cfgFile string) (*Config, error) {
	cfg := Default()

	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("scrimshady")
		v.SetConfigType("yaml")
		v.AddConfigPath(configDir())
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("SCRIMSHADY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	// Env values arrive as strings; decode them into the typed fields.
	weak := func(dc *mapstructure.DecoderConfig) { dc.WeaklyTypedInput = true }
	if err := v.Unmarshal(cfg, weak); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the config as YAML to path, or to the default location
// when path is empty.
func Save(cfg *Config, path string) (string, error) {
	if path == "" {
		dir := configDir()
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", err
		}
		path = filepath.Join(dir, "scrimshady.yaml")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func configDir() string {
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "scrimshady")
		}
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "scrimshady")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "scrimshady")
}
