package config

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	apperrors "github.com/agbru/seqcalc/internal/errors"
	"github.com/agbru/seqcalc/internal/sequence"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seqcalc.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, `
n: 12
kind: fac
timeout: 30s
program:
  limit: 10
  break_at: -1
output:
  calculate: true
logging:
  level: debug
`)
	fc, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if fc.N == nil || *fc.N != 12 || fc.timeout != 30*time.Second {
		t.Errorf("unexpected file config: %+v", fc)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	t.Parallel()
	tests := map[string]string{
		"unknown key":     "colour: blue\n",
		"invalid timeout": "timeout: soon\n",
		"malformed yaml":  "n: [1,\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := LoadFile(writeConfig(t, content))
			var configErr apperrors.ConfigError
			if !errors.As(err, &configErr) {
				t.Errorf("expected ConfigError, got %v", err)
			}
		})
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file should fail")
	}
}

func TestLoadFile_Empty(t *testing.T) {
	t.Parallel()
	fc, err := LoadFile(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("empty file should be accepted: %v", err)
	}
	if fc.N != nil {
		t.Error("empty file should leave settings unset")
	}
}

func TestParseConfig_FilePriority(t *testing.T) {
	path := writeConfig(t, "n: 12\nkind: fac\nprogram:\n  limit: 9\n")
	t.Setenv("SEQCALC_LIMIT", "11")

	cfg, err := ParseConfig("seqcalc", []string{"--config", path, "-n", "3"}, io.Discard, testAlgos)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.N != 3 {
		t.Errorf("flag should beat file: N=%d", cfg.N)
	}
	if cfg.Kind != sequence.KindFactorial || cfg.Algo != "fac-iter" {
		t.Errorf("file should beat defaults: kind=%s algo=%s", cfg.Kind, cfg.Algo)
	}
	if cfg.Limit != 11 {
		t.Errorf("environment should beat file: limit=%d", cfg.Limit)
	}
}

func TestParseConfig_ConfigFromEnv(t *testing.T) {
	t.Setenv("SEQCALC_CONFIG", writeConfig(t, "n: 21\n"))
	cfg, err := ParseConfig("seqcalc", nil, io.Discard, testAlgos)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.N != 21 {
		t.Errorf("N = %d, want 21 from SEQCALC_CONFIG", cfg.N)
	}
}

func TestParseConfig_CalibrationSettings(t *testing.T) {
	path := writeConfig(t, "calibration:\n  auto: true\n  split_threshold: 4096\n  profile: /tmp/file-profile.json\n")
	t.Setenv("SEQCALC_CALIBRATION_PROFILE", "/tmp/env-profile.json")

	cfg, err := ParseConfig("seqcalc", []string{"--config", path, "--calibrate"}, io.Discard, testAlgos)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if !cfg.Calibrate || !cfg.AutoCalibrate {
		t.Errorf("calibration switches not applied: calibrate=%v auto=%v", cfg.Calibrate, cfg.AutoCalibrate)
	}
	if cfg.SplitThreshold != 4096 {
		t.Errorf("SplitThreshold = %d, want 4096 from file", cfg.SplitThreshold)
	}
	if cfg.CalibrationProfile != "/tmp/env-profile.json" {
		t.Errorf("CalibrationProfile = %q, environment should beat file", cfg.CalibrationProfile)
	}
}
