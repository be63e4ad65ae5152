package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ign-packo/ShadowT/internal/raster"
	"github.com/ign-packo/ShadowT/internal/shadow"
	"github.com/ign-packo/ShadowT/internal/stretch"
)

// EnvPrefix is prepended to every environment variable key.
const EnvPrefix = "SHADOWT"

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the settings of one batch run.
type Config struct {
	Input          string `mapstructure:"input"`
	ThresholdInput string `mapstructure:"threshold_input"`
	Output         string `mapstructure:"output"`

	ExtRGB string `mapstructure:"ext_rgb"`
	ExtNIR string `mapstructure:"ext_nir"`
	Prefix string `mapstructure:"prefix"`

	Bits   int    `mapstructure:"bits"`
	Jump   int    `mapstructure:"jump"`
	Sub    int    `mapstructure:"sub"`
	HistEq bool   `mapstructure:"hsteq"`
	Method string `mapstructure:"method"`
	NIR    bool   `mapstructure:"nir"`

	Overlay      bool    `mapstructure:"overlay"`
	OverlayColor string  `mapstructure:"overlay_color"`
	StretchLow   float64 `mapstructure:"stretch_low"`
	StretchHigh  float64 `mapstructure:"stretch_high"`
}

// keys lists every setting, in the order flags are registered.
var keys = []string{
	"input", "threshold_input", "output",
	"ext_rgb", "ext_nir", "prefix",
	"bits", "jump", "sub", "hsteq", "method", "nir",
	"overlay", "overlay_color", "stretch_low", "stretch_high",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("input", "")
	v.SetDefault("threshold_input", "")
	v.SetDefault("output", "")

	v.SetDefault("ext_rgb", ".tif")
	v.SetDefault("ext_nir", ".tif")
	v.SetDefault("prefix", "")

	v.SetDefault("bits", 8)
	v.SetDefault("jump", 1)
	v.SetDefault("sub", 10)
	v.SetDefault("hsteq", false)
	v.SetDefault("method", "")
	v.SetDefault("nir", false)

	v.SetDefault("overlay", true)
	v.SetDefault("overlay_color", "#ff0000")
	v.SetDefault("stretch_low", stretch.DefaultWindow.Low)
	v.SetDefault("stretch_high", stretch.DefaultWindow.High)
}

// RegisterFlags adds one flag per setting to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("input", "", "directory of images to mask")
	fs.String("threshold-input", "", "directory of images used for the global threshold (default: input)")
	fs.String("output", "", "directory receiving mask_<name>.tif files")
	fs.String("ext-rgb", ".tif", "extension of the colour images")
	fs.String("ext-nir", ".tif", "extension of the near-infrared images")
	fs.String("prefix", "", "file name prefix of the colour images to mask")
	fs.Int("bits", 8, "sample depth of the images (8 or 16)")
	fs.Int("jump", 1, "use every jump-th image for the global threshold")
	fs.Int("sub", 10, "use every sub-th pixel along each axis for the global threshold")
	fs.Bool("hsteq", false, "equalize intensity before the hue/intensity ratio")
	fs.String("method", "", "ratio (tsai) or weighted (nagao); default ratio, or weighted with --nir")
	fs.Bool("nir", false, "read RVB/ and PIR/ sub-directories and exclude water and vegetation")
	fs.Bool("overlay", true, "also write masked_<name>.jpg with shadow painted over the image (--overlay=false to skip)")
	fs.String("overlay-color", "#ff0000", "overlay colour as #rrggbb")
	fs.Float64("stretch-low", stretch.DefaultWindow.Low, "lower cumulative bound of the 16-bit overlay stretch")
	fs.Float64("stretch-high", stretch.DefaultWindow.High, "upper cumulative bound of the 16-bit overlay stretch")
}

// Load reads the configuration. path may be empty, and so may flags.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if flags != nil {
		for _, key := range keys {
			if f := flags.Lookup(strings.ReplaceAll(key, "_", "-")); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", f.Name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() {
	// A dedicated threshold corpus is used whole.
	if c.ThresholdInput != "" {
		c.Jump = 1
	}
	if c.Method == "" {
		if c.NIR {
			c.Method = "weighted"
		} else {
			c.Method = "ratio"
		}
	}
}

// Validate checks every setting once.
func (c *Config) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("%w: input directory is required", ErrInvalidConfig)
	}
	if _, err := c.Depth(); err != nil {
		return err
	}
	if c.Jump < 1 {
		return fmt.Errorf("%w: jump must be >= 1, got %d", ErrInvalidConfig, c.Jump)
	}
	if c.Sub < 1 {
		return fmt.Errorf("%w: sub must be >= 1, got %d", ErrInvalidConfig, c.Sub)
	}
	engine, err := c.Engine()
	if err != nil {
		return err
	}
	if engine.Strategy == shadow.WeightedIntensity && !c.NIR {
		return fmt.Errorf("%w: method %s needs a near-infrared band (set nir)", ErrInvalidConfig, engine.Strategy)
	}
	if err := c.Window().Validate(); err != nil {
		return err
	}
	return nil
}

// ThresholdDir returns the directory of the threshold corpus.
func (c *Config) ThresholdDir() string {
	if c.ThresholdInput != "" {
		return c.ThresholdInput
	}
	return c.Input
}

// Depth returns the colour depth named by Bits.
func (c *Config) Depth() (raster.ColorDepth, error) {
	return raster.NewColorDepth(c.Bits)
}

// Engine returns the shadow engine configuration.
func (c *Config) Engine() (shadow.Config, error) {
	strategy, err := shadow.ParseStrategy(c.Method)
	if err != nil {
		return shadow.Config{}, err
	}
	return shadow.Config{
		Strategy:               strategy,
		Equalize:               c.HistEq,
		ExcludeWaterVegetation: c.NIR,
		SampleStep:             c.Sub,
	}, nil
}

// Window returns the overlay stretch window.
func (c *Config) Window() stretch.Window {
	return stretch.Window{Low: c.StretchLow, High: c.StretchHigh}
}
