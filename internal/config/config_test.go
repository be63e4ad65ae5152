package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"

	"github.com/ign-packo/ShadowT/internal/raster"
	"github.com/ign-packo/ShadowT/internal/shadow"
	"github.com/ign-packo/ShadowT/internal/stretch"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shadowt.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", newFlags(t, "--input", "/data"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Input != "/data" || cfg.ThresholdDir() != "/data" {
		t.Errorf("input: got %q, threshold dir %q", cfg.Input, cfg.ThresholdDir())
	}
	if cfg.Bits != 8 || cfg.Jump != 1 || cfg.Sub != 10 {
		t.Errorf("bits/jump/sub: got %d/%d/%d, want 8/1/10", cfg.Bits, cfg.Jump, cfg.Sub)
	}
	if cfg.Method != "ratio" {
		t.Errorf("method: got %q, want ratio", cfg.Method)
	}
	if cfg.Window() != stretch.DefaultWindow {
		t.Errorf("window: got %+v", cfg.Window())
	}
	if !cfg.Overlay || cfg.OverlayColor != "#ff0000" {
		t.Errorf("overlay: got %v %q, want true #ff0000", cfg.Overlay, cfg.OverlayColor)
	}

	engine, err := cfg.Engine()
	if err != nil {
		t.Fatalf("Engine failed: %v", err)
	}
	want := shadow.Config{Strategy: shadow.Ratio, SampleStep: 10}
	if engine != want {
		t.Errorf("engine: got %+v, want %+v", engine, want)
	}

	depth, err := cfg.Depth()
	if err != nil || depth.Max != raster.Max8 {
		t.Errorf("depth: got %+v, %v", depth, err)
	}
}

func TestLoad_NIRDefaultsToWeighted(t *testing.T) {
	cfg, err := Load("", newFlags(t, "--input", "/data", "--nir"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	engine, _ := cfg.Engine()
	if engine.Strategy != shadow.WeightedIntensity || !engine.ExcludeWaterVegetation {
		t.Errorf("engine: got %+v", engine)
	}
}

func TestLoad_File(t *testing.T) {
	path := writeConfigFile(t, `
input: /images
threshold_input: /corpus
bits: 16
jump: 5
sub: 4
method: tsai
hsteq: true
`)

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ThresholdDir() != "/corpus" {
		t.Errorf("threshold dir: got %q", cfg.ThresholdDir())
	}
	if cfg.Jump != 1 {
		t.Errorf("jump should be forced to 1 with threshold_input, got %d", cfg.Jump)
	}
	if cfg.Bits != 16 || cfg.Sub != 4 || !cfg.HistEq {
		t.Errorf("unexpected values: %+v", cfg)
	}
}

func TestLoad_Precedence(t *testing.T) {
	path := writeConfigFile(t, "input: /from-file\nsub: 4\njump: 3\n")
	t.Setenv("SHADOWT_SUB", "6")
	t.Setenv("SHADOWT_JUMP", "7")

	cfg, err := Load(path, newFlags(t, "--jump", "2"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Input != "/from-file" {
		t.Errorf("input: got %q, want value from file", cfg.Input)
	}
	if cfg.Sub != 6 {
		t.Errorf("sub: got %d, environment should override the file", cfg.Sub)
	}
	if cfg.Jump != 2 {
		t.Errorf("jump: got %d, flag should override the environment", cfg.Jump)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		target error
	}{
		{"missing input", nil, ErrInvalidConfig},
		{"bad bits", []string{"--input", "x", "--bits", "12"}, raster.ErrInvalidColorDepth},
		{"bad jump", []string{"--input", "x", "--jump", "0"}, ErrInvalidConfig},
		{"bad sub", []string{"--input", "x", "--sub", "0"}, ErrInvalidConfig},
		{"unknown method", []string{"--input", "x", "--method", "sobel"}, shadow.ErrUnknownStrategy},
		{"weighted without nir", []string{"--input", "x", "--method", "nagao"}, ErrInvalidConfig},
		{"bad window", []string{"--input", "x", "--stretch-low", "0.9", "--stretch-high", "0.1"}, stretch.ErrInvalidWindow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load("", newFlags(t, tt.args...))
			if !errors.Is(err, tt.target) {
				t.Errorf("got %v, want %v", err, tt.target)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), nil); err == nil {
		t.Error("expected an error for a missing config file")
	}
}

func TestLoad_OverlayOptOut(t *testing.T) {
	cfg, err := Load("", newFlags(t, "--input", "/data", "--overlay=false"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Overlay {
		t.Error("--overlay=false should disable the overlay")
	}
}
