// Package config loads the application settings through viper. Every key has
// a default, so a config file is optional.
package config

import (
	"errors"
	"fmt"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/iburimskiy/wave-line/internal/overlay"
	"github.com/iburimskiy/wave-line/internal/wave"
)

// Config is the root of the settings tree.
type Config struct {
	Logger  LoggerConfig  `mapstructure:"logger" yaml:"logger"`
	Window  WindowConfig  `mapstructure:"window" yaml:"window"`
	Wave    WaveConfig    `mapstructure:"wave" yaml:"wave"`
	Render  RenderConfig  `mapstructure:"render" yaml:"render"`
	Input   InputConfig   `mapstructure:"input" yaml:"input"`
	Overlay OverlayConfig `mapstructure:"overlay" yaml:"overlay"`
	Demo    DemoConfig    `mapstructure:"demo" yaml:"demo"`
}

// LoggerConfig controls the zap logger.
type LoggerConfig struct {
	Level  string        `mapstructure:"level" yaml:"level"`
	Format string        `mapstructure:"format" yaml:"format"` // console or json
	Color  bool          `mapstructure:"color" yaml:"color"`
	Caller bool          `mapstructure:"caller" yaml:"caller"`
	File   LogFileConfig `mapstructure:"file" yaml:"file"`
}

// LogFileConfig is the optional rotated JSON log. Empty Path disables it.
type LogFileConfig struct {
	Path       string `mapstructure:"path" yaml:"path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days" yaml:"max_age_days"`
	Compress   bool   `mapstructure:"compress" yaml:"compress"`
}

// WindowConfig is the initial window and tick rate.
type WindowConfig struct {
	Width     int    `mapstructure:"width" yaml:"width"`
	Height    int    `mapstructure:"height" yaml:"height"`
	Title     string `mapstructure:"title" yaml:"title"`
	Resizable bool   `mapstructure:"resizable" yaml:"resizable"`
	TPS       int    `mapstructure:"tps" yaml:"tps"`
}

// WaveConfig mirrors wave.Params; rates are per millisecond.
type WaveConfig struct {
	Amplitude       float64 `mapstructure:"amplitude" yaml:"amplitude"`
	Frequency       float64 `mapstructure:"frequency" yaml:"frequency"`
	Speed           float64 `mapstructure:"speed" yaml:"speed"`
	BreathSpeed     float64 `mapstructure:"breath_speed" yaml:"breath_speed"`
	BreathAmplitude float64 `mapstructure:"breath_amplitude" yaml:"breath_amplitude"`

	RippleDuration  time.Duration `mapstructure:"ripple_duration" yaml:"ripple_duration"`
	RippleSpeed     float64       `mapstructure:"ripple_speed" yaml:"ripple_speed"`
	RippleStrength  float64       `mapstructure:"ripple_strength" yaml:"ripple_strength"`
	RippleFrequency float64       `mapstructure:"ripple_frequency" yaml:"ripple_frequency"`
	RippleDamping   float64       `mapstructure:"ripple_damping" yaml:"ripple_damping"`
	RippleSpread    float64       `mapstructure:"ripple_spread" yaml:"ripple_spread"`

	DragFalloffRate      float64 `mapstructure:"drag_falloff_rate" yaml:"drag_falloff_rate"`
	DragStrength         float64 `mapstructure:"drag_strength" yaml:"drag_strength"`
	DragRippleMultiplier float64 `mapstructure:"drag_ripple_multiplier" yaml:"drag_ripple_multiplier"`

	SpringFrequency float64 `mapstructure:"spring_frequency" yaml:"spring_frequency"`
	SpringDamping   float64 `mapstructure:"spring_damping" yaml:"spring_damping"`
}

// RenderConfig is the stroke style and debug switches.
type RenderConfig struct {
	Color      string  `mapstructure:"color" yaml:"color"`
	Alpha      float64 `mapstructure:"alpha" yaml:"alpha"`
	Background string  `mapstructure:"background" yaml:"background"`
	LineWidth  float64 `mapstructure:"line_width" yaml:"line_width"`
	Step       float64 `mapstructure:"step" yaml:"step"`
	Debug      bool    `mapstructure:"debug" yaml:"debug"`
}

// InputConfig tunes gesture handling.
type InputConfig struct {
	// TapSlop is the drag distance, in pixels, up to which a release is a click.
	TapSlop float64 `mapstructure:"tap_slop" yaml:"tap_slop"`
}

// OverlayConfig is the navigation row.
type OverlayConfig struct {
	ShowNav bool               `mapstructure:"show_nav" yaml:"show_nav"`
	Links   []overlay.LinkSpec `mapstructure:"links" yaml:"links"`
}

// DemoConfig drives unattended ripples.
type DemoConfig struct {
	AutoRippleInterval time.Duration `mapstructure:"auto_ripple_interval" yaml:"auto_ripple_interval"`
}

// Params converts the section into engine physics.
func (w WaveConfig) Params() wave.Params {
	return wave.Params{
		WaveAmplitude:        w.Amplitude,
		WaveFrequency:        w.Frequency,
		WaveSpeed:            w.Speed,
		BreathSpeed:          w.BreathSpeed,
		BreathAmplitude:      w.BreathAmplitude,
		RippleDuration:       w.RippleDuration,
		RippleSpeed:          w.RippleSpeed,
		RippleStrength:       w.RippleStrength,
		RippleFrequency:      w.RippleFrequency,
		RippleDamping:        w.RippleDamping,
		RippleSpread:         w.RippleSpread,
		DragFalloffRate:      w.DragFalloffRate,
		DragStrength:         w.DragStrength,
		DragRippleMultiplier: w.DragRippleMultiplier,
		SpringFrequency:      w.SpringFrequency,
		SpringDamping:        w.SpringDamping,
	}
}

// NewDefaultConfig returns the configuration with every default applied.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// SetDefaults registers a default for every key.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.color", true)
	v.SetDefault("logger.caller", false)
	v.SetDefault("logger.file.path", "")
	v.SetDefault("logger.file.max_size_mb", 10)
	v.SetDefault("logger.file.max_backups", 3)
	v.SetDefault("logger.file.max_age_days", 7)
	v.SetDefault("logger.file.compress", false)

	// -- Window --
	v.SetDefault("window.width", 1024)
	v.SetDefault("window.height", 600)
	v.SetDefault("window.title", "wave-line")
	v.SetDefault("window.resizable", true)
	v.SetDefault("window.tps", 60)

	// -- Wave physics --
	p := wave.DefaultParams()
	v.SetDefault("wave.amplitude", p.WaveAmplitude)
	v.SetDefault("wave.frequency", p.WaveFrequency)
	v.SetDefault("wave.speed", p.WaveSpeed)
	v.SetDefault("wave.breath_speed", p.BreathSpeed)
	v.SetDefault("wave.breath_amplitude", p.BreathAmplitude)
	v.SetDefault("wave.ripple_duration", p.RippleDuration)
	v.SetDefault("wave.ripple_speed", p.RippleSpeed)
	v.SetDefault("wave.ripple_strength", p.RippleStrength)
	v.SetDefault("wave.ripple_frequency", p.RippleFrequency)
	v.SetDefault("wave.ripple_damping", p.RippleDamping)
	v.SetDefault("wave.ripple_spread", p.RippleSpread)
	v.SetDefault("wave.drag_falloff_rate", p.DragFalloffRate)
	v.SetDefault("wave.drag_strength", p.DragStrength)
	v.SetDefault("wave.drag_ripple_multiplier", p.DragRippleMultiplier)
	v.SetDefault("wave.spring_frequency", p.SpringFrequency)
	v.SetDefault("wave.spring_damping", p.SpringDamping)

	// -- Render --
	v.SetDefault("render.color", "#000000")
	v.SetDefault("render.alpha", 0.08)
	v.SetDefault("render.background", "#f7f5f0")
	v.SetDefault("render.line_width", 1.5)
	v.SetDefault("render.step", 3.0)
	v.SetDefault("render.debug", false)

	// -- Input --
	v.SetDefault("input.tap_slop", 0.0)

	// -- Overlay --
	v.SetDefault("overlay.show_nav", true)
	v.SetDefault("overlay.links", []map[string]interface{}{
		{"label": "writing", "href": "/writing"},
		{"label": "projects", "href": "/projects"},
		{"label": "about", "href": "/about"},
	})

	// -- Demo --
	v.SetDefault("demo.auto_ripple_interval", time.Duration(0))
}

// NewConfigFromViper unmarshals and validates v.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for sane values.
func (c *Config) Validate() error {
	var errs []error
	if _, err := zapcore.ParseLevel(c.Logger.Level); err != nil {
		errs = append(errs, fmt.Errorf("logger.level: %w", err))
	}
	if c.Logger.Format != "console" && c.Logger.Format != "json" {
		errs = append(errs, fmt.Errorf("logger.format must be console or json, got %q", c.Logger.Format))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Window.TPS <= 0 {
		errs = append(errs, fmt.Errorf("window.tps must be positive, got %d", c.Window.TPS))
	}
	if err := c.Wave.Params().Validate(); err != nil {
		errs = append(errs, err)
	}
	if _, err := colorful.Hex(c.Render.Color); err != nil {
		errs = append(errs, fmt.Errorf("render.color %q: %w", c.Render.Color, err))
	}
	if _, err := colorful.Hex(c.Render.Background); err != nil {
		errs = append(errs, fmt.Errorf("render.background %q: %w", c.Render.Background, err))
	}
	if c.Render.Alpha < 0 || c.Render.Alpha > 1 {
		errs = append(errs, fmt.Errorf("render.alpha must be within [0, 1], got %v", c.Render.Alpha))
	}
	if c.Render.LineWidth <= 0 {
		errs = append(errs, fmt.Errorf("render.line_width must be positive, got %v", c.Render.LineWidth))
	}
	if c.Render.Step <= 0 {
		errs = append(errs, fmt.Errorf("render.step must be positive, got %v", c.Render.Step))
	}
	if c.Input.TapSlop < 0 {
		errs = append(errs, fmt.Errorf("input.tap_slop must not be negative, got %v", c.Input.TapSlop))
	}
	if c.Demo.AutoRippleInterval < 0 {
		errs = append(errs, fmt.Errorf("demo.auto_ripple_interval must not be negative, got %s", c.Demo.AutoRippleInterval))
	}
	return errors.Join(errs...)
}
