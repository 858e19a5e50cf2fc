package gostim

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// InternalColorDepth selects the per-channel depth of the intermediate
// texture that scenes render into before compositing.
type InternalColorDepth string

const (
	// DepthUNorm8 is 8-bit unsigned normalized per channel.
	DepthUNorm8 InternalColorDepth = "unorm8"
	// DepthF16 is 16-bit floating point per channel. This is the default:
	// it preserves linear-light precision through blending.
	DepthF16 InternalColorDepth = "f16"
)

// DisplayColorFormat selects the per-channel depth of the swapchain surface.
type DisplayColorFormat string

const (
	// DisplayRGB8 is 8-bit unsigned normalized red, green, blue.
	DisplayRGB8 DisplayColorFormat = "rgb8"
	// DisplayRGB10 is 10-bit unsigned normalized red, green, blue.
	DisplayRGB10 DisplayColorFormat = "rgb10"
)

// ExperimentConfig holds settings that apply to a whole experiment session.
//
// The zero value is not useful; start from DefaultConfig.
type ExperimentConfig struct {
	// Pedantic controls how duration-based frame repeats that do not land on
	// an integer number of refresh intervals are handled. When true (the
	// default), such durations are rejected with a ParameterError. When
	// false, they are rounded to the nearest whole frame.
	Pedantic bool `toml:"pedantic"`

	// Debug enables extra runtime validation and debug-level log output.
	Debug bool `toml:"debug"`

	// InternalColorDepth selects the intermediate texture depth.
	InternalColorDepth InternalColorDepth `toml:"internal_color_depth"`

	// DisplayColorFormat selects the swapchain surface depth.
	DisplayColorFormat DisplayColorFormat `toml:"display_color_format"`

	// DefaultBackground is the background color new windows start with,
	// in any form ParseColor accepts. Empty keeps mid gray.
	DefaultBackground string `toml:"default_background"`

	// ScreenWidthMM and ViewingDistanceMM calibrate physical units for
	// windows that do not provide their own calibration. Zero leaves
	// physical sizes unusable until set on the window.
	ScreenWidthMM     float64 `toml:"screen_width_mm"`
	ViewingDistanceMM float64 `toml:"viewing_distance_mm"`
}

// DefaultConfig returns the configuration used when no settings file is
// present: pedantic timing, F16 linear intermediates, an 8-bit display.
func DefaultConfig() ExperimentConfig {
	return ExperimentConfig{
		Pedantic:           true,
		Debug:              false,
		InternalColorDepth: DepthF16,
		DisplayColorFormat: DisplayRGB8,
	}
}

// LoadConfig reads a TOML settings file and returns the resulting
// configuration. Fields absent from the file keep their DefaultConfig
// values.
func LoadConfig(path string) (ExperimentConfig, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, &ResourceError{Resource: "config file", Err: err}
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, &DecodeError{What: "config file", Err: err}
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks that all enum-valued fields hold known values.
func (c ExperimentConfig) Validate() error {
	switch c.InternalColorDepth {
	case DepthUNorm8, DepthF16:
	default:
		return &ParameterError{Op: "config", Msg: fmt.Sprintf("unknown internal color depth %q", c.InternalColorDepth)}
	}
	switch c.DisplayColorFormat {
	case DisplayRGB8, DisplayRGB10:
	default:
		return &ParameterError{Op: "config", Msg: fmt.Sprintf("unknown display color format %q", c.DisplayColorFormat)}
	}
	if c.DefaultBackground != "" {
		if _, err := ParseColor(c.DefaultBackground); err != nil {
			return err
		}
	}
	return nil
}
