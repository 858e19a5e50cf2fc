package gostim

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if !cfg.Pedantic {
		t.Error("default config is not pedantic")
	}
	if cfg.InternalColorDepth != DepthF16 {
		t.Errorf("default internal depth = %q, want %q", cfg.InternalColorDepth, DepthF16)
	}
	if cfg.DisplayColorFormat != DisplayRGB8 {
		t.Errorf("default display format = %q, want %q", cfg.DisplayColorFormat, DisplayRGB8)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	t.Run("partial file keeps defaults", func(t *testing.T) {
		path := write("partial.toml", "pedantic = false\n")
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Pedantic {
			t.Error("pedantic = true, want false")
		}
		if cfg.InternalColorDepth != DepthF16 {
			t.Errorf("internal depth = %q, want default %q", cfg.InternalColorDepth, DepthF16)
		}
	})

	t.Run("full file", func(t *testing.T) {
		path := write("full.toml", `
pedantic = false
debug = true
internal_color_depth = "unorm8"
display_color_format = "rgb10"
`)
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatal(err)
		}
		want := ExperimentConfig{
			Pedantic:           false,
			Debug:              true,
			InternalColorDepth: DepthUNorm8,
			DisplayColorFormat: DisplayRGB10,
		}
		if cfg != want {
			t.Errorf("LoadConfig = %+v, want %+v", cfg, want)
		}
	})

	t.Run("calibration and background", func(t *testing.T) {
		path := write("cal.toml", `
default_background = "#808080"
screen_width_mm = 531.0
viewing_distance_mm = 570.0
`)
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatal(err)
		}
		if cfg.DefaultBackground != "#808080" {
			t.Errorf("default background = %q, want %q", cfg.DefaultBackground, "#808080")
		}
		if cfg.ScreenWidthMM != 531.0 || cfg.ViewingDistanceMM != 570.0 {
			t.Errorf("calibration = %g/%g, want 531/570", cfg.ScreenWidthMM, cfg.ViewingDistanceMM)
		}
	})

	t.Run("bad background color", func(t *testing.T) {
		path := write("badbg.toml", `default_background = "not-a-color"`)
		_, err := LoadConfig(path)
		var perr *ParameterError
		if !errors.As(err, &perr) {
			t.Errorf("error = %v, want *ParameterError", err)
		}
	})

	t.Run("unknown enum value", func(t *testing.T) {
		path := write("bad.toml", `internal_color_depth = "f64"`)
		_, err := LoadConfig(path)
		var perr *ParameterError
		if !errors.As(err, &perr) {
			t.Errorf("error = %v, want *ParameterError", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(dir, "nope.toml"))
		var rerr *ResourceError
		if !errors.As(err, &rerr) {
			t.Errorf("error = %v, want *ResourceError", err)
		}
	})

	t.Run("malformed toml", func(t *testing.T) {
		path := write("broken.toml", "pedantic = [")
		_, err := LoadConfig(path)
		var derr *DecodeError
		if !errors.As(err, &derr) {
			t.Errorf("error = %v, want *DecodeError", err)
		}
	})
}
